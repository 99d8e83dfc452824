package graph

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/rewind/pkg/domain"
)

// rootID is the pseudo-node root-level transitions are drawn from.
const rootID = "__root__"

// GraphOverlay contains dynamic history data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
	PausedNode   string
}

// OverlayFor builds an overlay from an interpreter's current and paused nodes.
// Visited states are the lineage of the current node (root first).
func OverlayFor(current, paused *domain.Node) *GraphOverlay {
	overlay := &GraphOverlay{}
	if current != nil {
		for _, n := range current.Lineage() {
			overlay.VisitedNodes = append(overlay.VisitedNodes, n.Value)
		}
		overlay.CurrentNode = current.Value
	}
	if paused != nil {
		overlay.PausedNode = paused.Value
	}
	return overlay
}

// GenerateMermaid produces a Mermaid flowchart from a transition graph.
// It applies semantic styling:
// - Initial: ((Circle))
// - Terminal (accepts no events): ([Stadium])
// - Default: [Rectangle]
// Root-level transitions are drawn as dotted edges from a shared pseudo-node.
// Overlay styles (Visited/Current/Paused) are applied if provided.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	ids := newMermaidIDs(g)

	for _, id := range g.StateIDs() {
		safeID := ids.get(id)

		opener, closer := "[", "]"
		switch {
		case id == g.Initial:
			opener, closer = "((", "))"
		case g.IsTerminal(id):
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, id, closer))

		on := g.States[id].On
		for _, event := range sortedEvents(on) {
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, escapeLabel(event), ids.get(on[event])))
		}
	}

	if len(g.On) > 0 {
		sb.WriteString(fmt.Sprintf("    %s{{\"*\"}}\n", rootID))
		for _, event := range sortedEvents(g.On) {
			sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", rootID, escapeLabel(event), ids.get(g.On[event])))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef paused fill:#f3e5f5,stroke:#6a1b9a,stroke-width:2px,stroke-dasharray:5 5,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			// Overrides can reach states the graph does not declare.
			if !g.HasState(id) {
				continue
			}
			safeID := ids.get(id)
			if !visitedSet[safeID] {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.PausedNode != "" && g.HasState(overlay.PausedNode) {
			sb.WriteString(fmt.Sprintf("    class %s paused;\n", ids.get(overlay.PausedNode)))
		}
		if overlay.CurrentNode != "" && g.HasState(overlay.CurrentNode) {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", ids.get(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func sortedEvents(on map[string]domain.StateID) []string {
	return slices.Sorted(maps.Keys(on))
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

// mermaidIDs maps state identifiers to distinct Mermaid node IDs.
// States that are already valid IDs keep them; the rest are sanitized and
// get a numeric suffix when the result is taken.
type mermaidIDs struct {
	ids  map[domain.StateID]string
	used map[string]bool
}

func newMermaidIDs(g *domain.Graph) *mermaidIDs {
	m := &mermaidIDs{
		ids:  make(map[domain.StateID]string, len(g.States)),
		used: map[string]bool{rootID: true},
	}
	states := g.StateIDs()
	for _, id := range states {
		if sanitizeMermaidID(id) == id && !m.used[id] {
			m.ids[id] = id
			m.used[id] = true
		}
	}
	for _, id := range states {
		m.get(id)
	}
	return m
}

func (m *mermaidIDs) get(id domain.StateID) string {
	if safe, ok := m.ids[id]; ok {
		return safe
	}
	base := sanitizeMermaidID(id)
	safe := base
	for n := 2; m.used[safe]; n++ {
		safe = fmt.Sprintf("%s_%d", base, n)
	}
	m.ids[id] = safe
	m.used[safe] = true
	return safe
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
