package observability

import (
	"log/slog"

	"github.com/aretw0/rewind/pkg/domain"
)

// LogHooks logs every history change at Info and rejected events at Warn.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	move := func(e *domain.HistoryEvent) {
		logger.Info(string(e.Type),
			"machine", e.MachineID,
			"from", e.From.Value,
			"to", e.To.Value,
		)
	}
	return domain.LifecycleHooks{
		OnCommit: func(e *domain.HistoryEvent) {
			logger.Info("commit",
				"machine", e.MachineID,
				"from", e.From.Value,
				"to", e.To.Value,
				"event", e.To.Event.Key(),
				"override", e.To.IsOverride(),
			)
		},
		OnUndo:   move,
		OnRedo:   move,
		OnPause:  move,
		OnResume: move,
		OnStop:   move,
		OnRejected: func(e *domain.RejectedEvent) {
			logger.Warn("event rejected",
				"machine", e.MachineID,
				"state", e.State,
				"event", e.Event.Key(),
			)
		},
	}
}
