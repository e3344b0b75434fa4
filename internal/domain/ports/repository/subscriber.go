package repository

import (
	"context"

	"hotspot-admin/internal/domain/model"
)

// SubscriberRepository is the port for managing hotspot subscriber accounts.
type SubscriberRepository interface {
	// Save creates or updates a subscriber.
	Save(ctx context.Context, tx Tx, sub *model.Subscriber) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Subscriber, error)
	FindByUsername(ctx context.Context, tx Tx, username string) (*model.Subscriber, error)
	// List returns subscribers newest-first.
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.Subscriber, error)
	Delete(ctx context.Context, tx Tx, id string) error
	Count(ctx context.Context, tx Tx) (int, error)
	// CountActive counts subscribers whose effective status at `now` is active.
	CountActive(ctx context.Context, tx Tx, now int64) (int, error)
	// CountByPackage returns subscriber counts keyed by package id.
	CountByPackage(ctx context.Context, tx Tx) (map[string]int, error)
	// MarkExpired flips the stored status to expired where the window has
	// passed, returning the number of rows reconciled.
	MarkExpired(ctx context.Context, tx Tx, now int64) (int, error)
}
