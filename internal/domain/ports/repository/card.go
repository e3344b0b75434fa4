package repository

import (
	"context"

	"hotspot-admin/internal/domain/model"
)

// CardRepository is the port for managing prepaid cards.
type CardRepository interface {
	// Save creates a card or updates an existing one (redemption state).
	Save(ctx context.Context, tx Tx, card *model.Card) error
	// FindByCode finds a card by exact code match, regardless of status.
	FindByCode(ctx context.Context, tx Tx, code string) (*model.Card, error)
	// AcquireCodeLock serializes concurrent work on one code. The lock is
	// held until the surrounding transaction ends; outside one it is a no-op.
	AcquireCodeLock(ctx context.Context, tx Tx, code string) error
	// List returns cards newest-first.
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.Card, error)
	ListByBatch(ctx context.Context, tx Tx, batchID string) ([]*model.Card, error)
	Count(ctx context.Context, tx Tx) (int, error)
	CountByStatus(ctx context.Context, tx Tx, status model.CardStatus) (int, error)
	// RevenueByPeriod sums package prices over cards redeemed since the start of
	// the given period ("week", "month", or "year").
	RevenueByPeriod(ctx context.Context, tx Tx, period string) (float64, error)
}
