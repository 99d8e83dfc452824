package domain_test

import (
	"testing"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestNode_Lineage(t *testing.T) {
	root := &domain.Node{Value: "idle"}
	mid := &domain.Node{Value: "cooking", Event: domain.Named("START"), Parent: root}
	leaf := &domain.Node{Value: "manual", Event: domain.Override(), Parent: mid}

	assert.True(t, root.IsRoot())
	assert.False(t, leaf.IsRoot())
	assert.True(t, leaf.IsOverride())
	assert.Equal(t, 2, leaf.Depth())
	assert.Equal(t, []*domain.Node{root, mid, leaf}, leaf.Lineage())
	assert.Equal(t, []*domain.Node{root}, root.Lineage())
}

func TestSnapshotOf_ClonesContext(t *testing.T) {
	n := &domain.Node{Value: "idle", Context: domain.Context{"counter": 1}}
	snap := domain.SnapshotOf(n)
	snap.Context["counter"] = 2

	assert.Equal(t, 1, n.Context["counter"])
	assert.False(t, snap.Done)
	assert.Equal(t, domain.Snapshot{}, domain.SnapshotOf(nil))
}
