package repository

import (
	"context"

	"github.com/safinirasol/WellMind-IBM/internal/telemetry/domain"
)

// Repository defines persistence for submission events.
type Repository interface {
	// Save stores the event. Saving an event id twice is a no-op.
	Save(ctx context.Context, e *domain.Event) error
}
