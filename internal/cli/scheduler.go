package cli

import (
	"context"
	"log/slog"

	"github.com/rkeller/cadence/internal/remind"
)

// logScheduler is the CLI's stand-in for a platform notifier. It
// accepts every registration, minting an opaque id, and logs what a
// real collaborator would deliver. Swapping in an actual notification
// backend means replacing this one value.
type logScheduler struct{}

func (logScheduler) Schedule(_ context.Context, occ remind.Occurrence) (string, error) {
	id := idGen.NewID()
	slog.Info("reminder registered", "id", id, "title", occ.Title, "fire_at", occ.FireAt)
	return id, nil
}

func (logScheduler) Cancel(_ context.Context, id string) error {
	slog.Info("reminder canceled", "id", id)
	return nil
}

// notifier is the scheduler used by directive commands; tests replace
// it with a recording fake.
var notifier remind.Scheduler = logScheduler{}
