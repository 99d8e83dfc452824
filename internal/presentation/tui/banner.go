package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"                       _           _ ", "#818cf8"},
	{"  _ __ _____      __  (_)_ __   __| |", "#a78bfa"},
	{" | '__/ _ \\ \\ /\\ / /  | | '_ \\ / _` |", "#c084fc"},
	{" | | |  __/\\ V  V /   | | | | | (_| |", "#e879f9"},
	{" |_|  \\___| \\_/\\_/    |_|_| |_|\\__,_|", "#f472b6"},
}

// PrintBanner outputs the ASCII art banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
