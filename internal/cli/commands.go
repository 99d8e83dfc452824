package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/aretw0/rewind/internal/presentation/graph"
	"github.com/aretw0/rewind/internal/presentation/tui"
	"github.com/aretw0/rewind/pkg/domain"
)

type command struct {
	names []string
	usage string
	help  string
	quit  bool
	run   func(r *REPL, args string) error
}

var commands []command

func init() {
	commands = []command{
		{names: []string{"send", "s"}, usage: "send EVENT [json]", help: "send an event; a JSON object is attached as payload and merged into the context", run: cmdSend},
		{names: []string{"set"}, usage: "set STATE [json]", help: "force a state (override), optionally replacing the context", run: cmdSet},
		{names: []string{"undo", "u"}, usage: "undo", help: "step back one node", run: mover("undo", func(r *REPL) bool { return r.interp.Undo() })},
		{names: []string{"redo", "r"}, usage: "redo", help: "step forward one node", run: mover("redo", func(r *REPL) bool { return r.interp.Redo() })},
		{names: []string{"root", "back"}, usage: "root", help: "rewind to the root (backward leaf)", run: mover("root", func(r *REPL) bool { return r.facade.Backward(domain.Event{}) })},
		{names: []string{"pause", "p"}, usage: "pause", help: "remember the current node", run: mover("pause", func(r *REPL) bool { return r.facade.Pause(domain.Event{}) })},
		{names: []string{"resume"}, usage: "resume", help: "jump back to the paused node", run: mover("resume", func(r *REPL) bool { return r.interp.Resume() })},
		{names: []string{"clear"}, usage: "clear", help: "forget the paused node", run: mover("clear", func(r *REPL) bool { return r.interp.ClearPaused() })},
		{names: []string{"branches", "b"}, usage: "branches", help: "show forward/pause/backward per event", run: cmdBranches},
		{names: []string{"history", "h"}, usage: "history", help: "show the path from the root", run: cmdHistory},
		{names: []string{"snapshot"}, usage: "snapshot", help: "print the current snapshot as JSON", run: cmdSnapshot},
		{names: []string{"diff"}, usage: "diff", help: "diff the current node against its parent", run: cmdDiff},
		{names: []string{"graph"}, usage: "graph", help: "print a Mermaid diagram with the history overlay", run: cmdGraph},
		{names: []string{"help", "?"}, usage: "help", help: "list commands", run: cmdHelp},
		{names: []string{"quit", "exit", "q"}, usage: "quit", help: "leave", quit: true},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		for _, n := range c.names {
			if n == name {
				return c, true
			}
		}
	}
	return command{}, false
}

func mover(op string, fn func(r *REPL) bool) func(*REPL, string) error {
	return func(r *REPL, _ string) error {
		r.report(op, fn(r))
		return nil
	}
}

// splitArg separates the first word from a trailing JSON document.
func splitArg(args string) (string, map[string]any, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return name, nil, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(rest), &obj); err != nil {
		return "", nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	return name, obj, nil
}

func cmdSend(r *REPL, args string) error {
	name, payload, err := splitArg(args)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("usage: send EVENT [json]")
	}

	if payload == nil {
		r.report("send "+name, r.facade.Forward(domain.Named(name)))
		return nil
	}

	merge := func(ctx domain.Context, ev domain.Event) domain.Context {
		maps.Copy(ctx, ev.Payload())
		return ctx
	}
	r.report("send "+name, r.facade.ForwardWith(domain.WithPayload(name, payload), merge))
	return nil
}

func cmdSet(r *REPL, args string) error {
	target, ctx, err := splitArg(args)
	if err != nil {
		return err
	}
	if target == "" {
		return fmt.Errorf("usage: set STATE [json]")
	}
	if ctx == nil {
		r.report("set "+target, r.facade.ForwardOverride(target))
		return nil
	}
	r.report("set "+target, r.facade.ForwardOverride(target, domain.Context(ctx)))
	return nil
}

func cmdBranches(r *REPL, _ string) error {
	return r.markdown(tui.BranchTable(r.facade.VisualData()))
}

func cmdHistory(r *REPL, _ string) error {
	return r.markdown(tui.HistoryList(r.interp.Current()))
}

func cmdSnapshot(r *REPL, _ string) error {
	return printJSON(r, r.interp.Snapshot())
}

func cmdDiff(r *REPL, _ string) error {
	cur := r.interp.Current()
	var before *domain.Snapshot
	if cur.Parent != nil {
		s := domain.SnapshotOf(cur.Parent)
		before = &s
	}
	after := domain.SnapshotOf(cur)

	diff := domain.Diff(before, &after)
	if diff == nil {
		fmt.Fprintln(r.out, r.styles.Muted("no changes"))
		return nil
	}
	return printJSON(r, diff)
}

func cmdGraph(r *REPL, _ string) error {
	fmt.Fprint(r.out, graph.GenerateMermaid(r.interp.Graph(), graph.OverlayFor(r.interp.Current(), r.interp.Paused())))
	return nil
}

func cmdHelp(r *REPL, _ string) error {
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %-20s %s\n", c.usage, r.styles.Muted(c.help))
	}
	return nil
}

func printJSON(r *REPL, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, string(data))
	return nil
}
