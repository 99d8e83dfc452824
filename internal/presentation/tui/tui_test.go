package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/rewind/internal/presentation/tui"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/trileaf"
	"github.com/stretchr/testify/assert"
)

func TestBranchTable(t *testing.T) {
	vd := trileaf.VisualData{
		RootValue:    "idle",
		CurrentValue: "cooking",
		Paused:       true,
		Branches: []trileaf.Branch{
			{Event: "DONE", Forward: true, Pause: true, Backward: true},
			{Event: domain.OverrideKey, Override: true, Forward: true, Pause: true, Backward: true},
		},
	}

	want := "## cooking\n\n" +
		"_root: idle, paused_\n\n" +
		"| Event | Forward | Pause | Backward |\n" +
		"|---|:-:|:-:|:-:|\n" +
		"| DONE | ✓ | ✓ | ✓ |\n" +
		"| `$override` | ✓ | ✓ | ✓ |\n"
	assert.Equal(t, want, tui.BranchTable(vd))

	vd = trileaf.VisualData{RootValue: "idle", CurrentValue: "idle", AtRoot: true,
		Branches: []trileaf.Branch{{Event: "START", Forward: true, Pause: true}}}
	assert.Contains(t, tui.BranchTable(vd), "_at root_")
	assert.Contains(t, tui.BranchTable(vd), "| START | ✓ | ✓ | · |")
}

func TestHistoryList(t *testing.T) {
	root := &domain.Node{Value: "idle"}
	start := &domain.Node{Value: "cooking", Event: domain.Named("START"), Parent: root}
	forced := &domain.Node{Value: "completed", Event: domain.Override(), Parent: start}

	assert.Equal(t, "1. idle\n2. cooking ← START\n3. completed ← $override\n", tui.HistoryList(forced))
	assert.Equal(t, "1. idle\n", tui.HistoryList(root))
}

func TestStyles_PlainOnNonTerminal(t *testing.T) {
	s := tui.NewStyles(&bytes.Buffer{})
	assert.Equal(t, "> ", s.Prompt("> "))
	assert.Equal(t, "idle", s.State("idle"))
	assert.Equal(t, "note", s.Muted("note"))
	assert.Equal(t, "oops", s.Error("oops"))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.Contains(t, buf.String(), "|_|")
}

func TestPlainRenderer(t *testing.T) {
	out, err := tui.PlainRenderer("# title")
	assert.NoError(t, err)
	assert.Equal(t, "# title", out)
}
