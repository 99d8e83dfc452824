package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/trileaf"
)

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "·"
}

// BranchTable renders the tri-leaf view as a markdown document.
func BranchTable(vd trileaf.VisualData) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s\n\n", vd.CurrentValue))

	var notes []string
	if vd.AtRoot {
		notes = append(notes, "at root")
	} else {
		notes = append(notes, "root: "+vd.RootValue)
	}
	if vd.Paused {
		notes = append(notes, "paused")
	}
	sb.WriteString("_" + strings.Join(notes, ", ") + "_\n\n")

	sb.WriteString("| Event | Forward | Pause | Backward |\n")
	sb.WriteString("|---|:-:|:-:|:-:|\n")
	for _, b := range vd.Branches {
		event := b.Event
		if b.Override {
			event = "`" + event + "`"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", event, mark(b.Forward), mark(b.Pause), mark(b.Backward)))
	}
	return sb.String()
}

// HistoryList renders the path from the root to node as a numbered list.
func HistoryList(node *domain.Node) string {
	var sb strings.Builder
	for i, n := range node.Lineage() {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, n.Value))
		if !n.IsRoot() {
			sb.WriteString(" ← " + n.Event.Key())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
