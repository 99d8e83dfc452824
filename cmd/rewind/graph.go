package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/cli"
	"github.com/aretw0/rewind/internal/presentation/graph"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [graph]",
	Short: "Export the transition graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the transition graph.
With --replay the events are sent in order and the resulting history is
drawn on top of the diagram.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replay, _ := cmd.Flags().GetStringSlice("replay")

		machine, err := cli.LoadMachine(cmd.Context(), graphPath(cmd, args), nil)
		if err != nil {
			return err
		}

		out, err := renderGraph(machine, replay)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("replay", nil, "Events to send before drawing the history overlay (comma separated)")
}

func renderGraph(machine *rewind.Machine, replay []string) (string, error) {
	if len(replay) == 0 {
		return graph.GenerateMermaid(machine.Graph(), nil), nil
	}

	interp := rewind.Interpret(machine)
	defer interp.Stop()
	for _, name := range replay {
		name = strings.TrimSpace(name)
		if !interp.Send(domain.Named(name)) {
			return "", fmt.Errorf("replay: event %q rejected in state %q", name, interp.Value())
		}
	}
	return graph.GenerateMermaid(machine.Graph(), graph.OverlayFor(interp.Current(), interp.Paused())), nil
}
