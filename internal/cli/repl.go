package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/internal/presentation/tui"
	"github.com/aretw0/rewind/pkg/trileaf"
)

// REPL drives one interpreter from line-oriented commands.
type REPL struct {
	interp *rewind.Interpreter
	facade *trileaf.Facade

	out    io.Writer
	styles *tui.Styles
	render func(string) (string, error)
	prompt bool
	logger *slog.Logger
}

// REPLOption configures a REPL.
type REPLOption func(*REPL)

// WithRenderer sets the markdown renderer used by branches and history.
func WithRenderer(render func(string) (string, error)) REPLOption {
	return func(r *REPL) {
		if render != nil {
			r.render = render
		}
	}
}

// WithPrompt toggles the input prompt. It is off for piped input.
func WithPrompt(enabled bool) REPLOption {
	return func(r *REPL) {
		r.prompt = enabled
	}
}

// WithREPLLogger sets the logger for command failures.
func WithREPLLogger(logger *slog.Logger) REPLOption {
	return func(r *REPL) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewREPL creates a REPL writing to out.
func NewREPL(interp *rewind.Interpreter, out io.Writer, opts ...REPLOption) *REPL {
	r := &REPL{
		interp: interp,
		facade: trileaf.New(interp),
		out:    out,
		styles: tui.NewStyles(out),
		render: tui.PlainRenderer,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads commands from in until quit, EOF or ctx is cancelled.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
	}()

	r.status()
	for {
		if r.prompt {
			fmt.Fprint(r.out, r.styles.Prompt("> "))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errs:
					return err
				default:
					return nil
				}
			}
			quit, err := r.Exec(line)
			if err != nil {
				r.logger.Debug("command failed", "line", line, "err", err)
				fmt.Fprintln(r.out, r.styles.Error("error: "+err.Error()))
			}
			if quit {
				return nil
			}
		}
	}
}

// Exec runs a single command line. It reports whether the REPL should stop.
func (r *REPL) Exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	name := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	cmd, ok := lookup(name)
	if !ok {
		return false, fmt.Errorf("unknown command %q (try 'help')", name)
	}
	if cmd.quit {
		return true, nil
	}
	return false, cmd.run(r, rest)
}

// report prints the outcome of a mutator followed by the new status line.
func (r *REPL) report(op string, ok bool) {
	if !ok {
		fmt.Fprintln(r.out, r.styles.Error(op+": nothing to do"))
		return
	}
	r.status()
}

// status prints the current state and what the history allows.
func (r *REPL) status() {
	past, future := r.interp.History()
	line := fmt.Sprintf("%s %s", r.styles.State(r.interp.Value()),
		r.styles.Muted(fmt.Sprintf("[undo:%d redo:%d]", past, future)))
	if r.interp.IsPaused() {
		line += " " + r.styles.Muted("(paused at "+r.interp.Paused().Value+")")
	}
	if r.interp.Done() {
		line += " " + r.styles.Muted("(final)")
	}
	fmt.Fprintln(r.out, line)
}

func (r *REPL) markdown(md string) error {
	out, err := r.render(md)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fmt.Fprint(r.out, out)
	return nil
}
