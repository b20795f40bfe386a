// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// ReportCache defines a read-through cache for assembled report payloads.
// Lookups are best-effort: a miss or a cache failure must never block
// report generation, so implementations return (nil, false) instead of
// surfacing transport errors to the report layer.
type ReportCache interface {
	// Get returns the cached payload for key, if present.
	Get(ctx context.Context, userID uuid.UUID, key string) ([]byte, bool)

	// Set stores payload under key for the configured TTL.
	Set(ctx context.Context, userID uuid.UUID, key string, payload []byte)

	// InvalidateUser drops every cached report for the user. Called on any
	// expense write so reports never serve stale aggregates.
	InvalidateUser(ctx context.Context, userID uuid.UUID)
}
