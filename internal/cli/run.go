package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/adapters/file"
	"github.com/aretw0/rewind/internal/presentation/tui"
	"github.com/aretw0/rewind/pkg/observability"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	GraphPath string
	LogLevel  string
	Context   string // Raw JSON object merged into the graph context
	Plain     bool   // No banner, prompt or markdown styling even on a terminal
}

// LoadMachine reads the graph at path, merges initialContext over its
// context and validates it.
func LoadMachine(ctx context.Context, path string, initialContext map[string]any) (*rewind.Machine, error) {
	loader := file.NewLoader(path)
	graph, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(initialContext) > 0 {
		if graph.Context == nil {
			graph.Context = make(map[string]any, len(initialContext))
		}
		maps.Copy(graph.Context, initialContext)
	}
	return rewind.CreateMachine(graph)
}

// Execute handles the 'run' command: it loads the machine and drives an
// interpreter from in until quit, EOF or a signal.
func Execute(ctx context.Context, opts RunOptions, in io.Reader, out io.Writer) error {
	logger, err := CreateLogger(opts.LogLevel)
	if err != nil {
		return err
	}

	var initialContext map[string]any
	if opts.Context != "" {
		if err := json.Unmarshal([]byte(opts.Context), &initialContext); err != nil {
			return fmt.Errorf("error parsing --context JSON: %w", err)
		}
	}

	machine, err := LoadMachine(ctx, opts.GraphPath, initialContext)
	if err != nil {
		return fmt.Errorf("error loading machine: %w", err)
	}
	for _, w := range machine.Warnings() {
		logger.Warn("graph warning", "warning", w)
	}

	interp := rewind.Interpret(machine,
		rewind.WithLogger(logger),
		rewind.WithLifecycleHooks(observability.LogHooks(logger)),
	)
	defer interp.Stop()

	interactive := !opts.Plain && isTerminal(in)
	replOpts := []REPLOption{WithPrompt(interactive), WithREPLLogger(logger)}
	if interactive {
		tui.PrintBanner(out, rewind.Version)
		printSystemMessage(out, "Machine '%s' loaded. Type 'help' for commands.", machine.ID())
		replOpts = append(replOpts, WithRenderer(tui.NewRenderer()))
	}

	err = NewREPL(interp, out, replOpts...).Run(ctx, in)
	if errors.Is(err, context.Canceled) {
		// Interrupted by the user: not a failure.
		if interactive {
			fmt.Fprintln(out)
			printSystemMessage(out, "Interrupted at '%s' state.", interp.Value())
		}
		return nil
	}
	return err
}
