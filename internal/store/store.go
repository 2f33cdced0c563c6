// Package store provides persistence for the trade journal.
package store

import (
	"context"
	"time"

	"tradelog/internal/models"
)

// TradeStore defines the persistence interface consumed by the CLI and the
// import/export plumbing. Implementations own the write-path contract:
// every create or update is validated, has its derived fields recomputed,
// and is timestamped before it is persisted, so stored records never carry
// stale derived values.
type TradeStore interface {
	// Add validates the trade, assigns an ID and timestamps, recomputes
	// derived fields, and persists it.
	Add(ctx context.Context, t *models.Trade) error
	// AddBatch persists a set of new trades atomically: either every
	// trade is accepted or none are.
	AddBatch(ctx context.Context, trades []*models.Trade) error
	// Update re-validates and re-derives an existing trade, then
	// persists it. Returns ErrTradeNotFound for unknown IDs.
	Update(ctx context.Context, t *models.Trade) error
	// Delete removes a trade. Returns ErrTradeNotFound for unknown IDs.
	Delete(ctx context.Context, id string) error
	// Get fetches one trade by ID.
	Get(ctx context.Context, id string) (*models.Trade, error)
	// List fetches trades matching the filter, newest entry first.
	List(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	// Load returns the full collection for aggregation.
	Load(ctx context.Context) ([]models.Trade, error)

	Close() error
}

// TradeFilter narrows a List query. Zero-valued fields are ignored.
type TradeFilter struct {
	Symbol    string
	Status    models.Status
	AssetType models.AssetType
	Strategy  string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
