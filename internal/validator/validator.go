package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/rewind/pkg/domain"
)

// Report collects the findings of a graph crawl.
// Errors make a graph unusable; warnings (e.g. unreachable states) do not.
type Report struct {
	Errors   []string
	Warnings []string

	causes []error
}

// Err returns nil when the report has no errors. The returned error matches
// domain.ErrInvalidGraph and the sentinel of every rule that failed.
func (r *Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &invalidGraphError{
		msg:    fmt.Sprintf("%v: found %d errors:\n- %s", domain.ErrInvalidGraph, len(r.Errors), strings.Join(r.Errors, "\n- ")),
		causes: r.causes,
	}
}

type invalidGraphError struct {
	msg    string
	causes []error
}

func (e *invalidGraphError) Error() string { return e.msg }

func (e *invalidGraphError) Unwrap() []error {
	return append([]error{domain.ErrInvalidGraph}, e.causes...)
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// fail records an error caused by a known sentinel.
func (r *Report) fail(cause error, format string, args ...any) {
	r.errorf(format, args...)
	if !slices.Contains(r.causes, cause) {
		r.causes = append(r.causes, cause)
	}
}

// ValidateGraph checks the declared structure and crawls the graph from its
// initial state, reporting dead links and unreachable states.
func ValidateGraph(g *domain.Graph) *Report {
	r := &Report{}

	if g.Initial == "" {
		r.errorf("initial state is required")
	} else if !g.HasState(g.Initial) {
		r.fail(domain.ErrUnknownState, "initial state '%s' is not declared", g.Initial)
	}
	if len(g.States) == 0 {
		r.errorf("at least one state is required")
	}

	checkEvents := func(scope string, on map[string]domain.StateID) {
		for _, key := range sortedKeys(on) {
			target := on[key]
			switch {
			case key == "":
				r.errorf("%s: empty event key", scope)
			case key == domain.OverrideKey:
				r.fail(domain.ErrReservedEvent, "%s: event '%s' is reserved for manual transitions", scope, key)
			}
			if !g.HasState(target) {
				r.fail(domain.ErrUnknownState, "%s: event '%s' targets missing state '%s'", scope, key, target)
			}
		}
	}

	for _, id := range g.StateIDs() {
		if id == "" {
			r.errorf("state with empty id")
			continue
		}
		checkEvents(fmt.Sprintf("state '%s'", id), g.States[id].On)
	}
	checkEvents("root", g.On)

	if g.HasState(g.Initial) {
		visited := crawl(g)
		for _, id := range g.StateIDs() {
			if !visited[id] {
				r.Warnings = append(r.Warnings, fmt.Sprintf("state '%s' is unreachable from '%s'", id, g.Initial))
			}
		}
	}

	return r
}

// crawl walks every transition breadth-first from the initial state.
func crawl(g *domain.Graph) map[string]bool {
	visited := make(map[string]bool)
	queue := []string{g.Initial}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, key := range g.EnabledEvents(current) {
			target, ok := g.Resolve(current, domain.Named(key))
			if ok && g.HasState(target) && !visited[target] {
				queue = append(queue, target)
			}
		}
	}
	return visited
}

func sortedKeys(m map[string]domain.StateID) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
