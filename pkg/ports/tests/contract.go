package tests

import (
	"context"
	"testing"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphLoader.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, want *domain.Graph) {
	t.Helper()

	// 1. Load returns the expected structure
	t.Run("Load_Success", func(t *testing.T) {
		got, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading %s: %v", loader.Source(), err)
		}
		if got.Initial != want.Initial {
			t.Errorf("initial mismatch. got %q, want %q", got.Initial, want.Initial)
		}
		gotIDs, wantIDs := got.StateIDs(), want.StateIDs()
		if len(gotIDs) != len(wantIDs) {
			t.Fatalf("expected %d states, got %d", len(wantIDs), len(gotIDs))
		}
		for _, id := range wantIDs {
			for _, event := range want.EnabledEvents(id) {
				wantTarget, _ := want.Resolve(id, domain.Named(event))
				gotTarget, ok := got.Resolve(id, domain.Named(event))
				if !ok || gotTarget != wantTarget {
					t.Errorf("state %s event %s: got %q, want %q", id, event, gotTarget, wantTarget)
				}
			}
		}
	})

	// 2. Each Load is independent of the previous one
	t.Run("Load_ReturnsCopy", func(t *testing.T) {
		first, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first.Initial = "mutated"
		delete(first.States, want.Initial)

		second, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.Initial != want.Initial || !second.HasState(want.Initial) {
			t.Error("mutating a loaded graph leaked into the next Load")
		}
	})

	// 3. Cancelled contexts are honoured
	t.Run("Load_Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := loader.Load(ctx); err == nil {
			t.Error("expected error for cancelled context, got nil")
		}
	})

	t.Run("Source", func(t *testing.T) {
		if loader.Source() == "" {
			t.Error("expected a non-empty source label")
		}
	})
}
