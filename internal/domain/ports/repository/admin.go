package repository

import (
	"context"

	"hotspot-admin/internal/domain/model"
)

// AdminRepository is the port for dashboard operator accounts.
type AdminRepository interface {
	Save(ctx context.Context, tx Tx, admin *model.Admin) error
	FindByUsername(ctx context.Context, tx Tx, username string) (*model.Admin, error)
	Count(ctx context.Context, tx Tx) (int, error)
}
