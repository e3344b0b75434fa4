package repository

import (
	"context"

	"hotspot-admin/internal/domain/model"
)

// PackageRepository is the port for managing hotspot packages.
type PackageRepository interface {
	// Save creates or updates a package.
	Save(ctx context.Context, tx Tx, pkg *model.Package) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Package, error)
	// ListActive returns packages whose is_active flag is still set.
	ListActive(ctx context.Context, tx Tx) ([]*model.Package, error)
	// Deactivate clears the is_active flag. Packages are never physically deleted.
	Deactivate(ctx context.Context, tx Tx, id string) error
	CountActive(ctx context.Context, tx Tx) (int, error)
}
