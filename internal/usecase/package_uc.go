package usecase

import (
	"context"

	"github.com/google/uuid"

	"hotspot-admin/internal/domain"
	"hotspot-admin/internal/domain/model"
	"hotspot-admin/internal/domain/ports/repository"
)

// PackageUseCase manages hotspot packages.
type PackageUseCase struct {
	repo repository.PackageRepository
	subs repository.SubscriberRepository
}

// NewPackageUseCase constructs a PackageUseCase.
func NewPackageUseCase(repo repository.PackageRepository, subs repository.SubscriberRepository) *PackageUseCase {
	return &PackageUseCase{repo: repo, subs: subs}
}

// Create validates and persists a new package.
func (uc *PackageUseCase) Create(ctx context.Context, name string, price float64, durationDays int, speedLimit, downloadLimit string) (*model.Package, error) {
	pkg, err := model.NewPackage(uuid.NewString(), name, price, durationDays, speedLimit, downloadLimit)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, repository.NoTX, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Update replaces the editable fields of an existing package.
func (uc *PackageUseCase) Update(ctx context.Context, id, name string, price float64, durationDays int, speedLimit, downloadLimit string) (*model.Package, error) {
	if name == "" || durationDays <= 0 || price < 0 {
		return nil, domain.ErrInvalidArgument
	}
	pkg, err := uc.repo.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	pkg.Name = name
	pkg.Price = price
	pkg.DurationDays = durationDays
	pkg.SpeedLimit = speedLimit
	pkg.DownloadLimit = downloadLimit
	if err := uc.repo.Save(ctx, repository.NoTX, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Deactivate soft-deletes a package by clearing its active flag. Cards and
// subscribers keep referencing the row; it just stops being offered.
func (uc *PackageUseCase) Deactivate(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidArgument
	}
	return uc.repo.Deactivate(ctx, repository.NoTX, id)
}

// Get retrieves a package by ID.
func (uc *PackageUseCase) Get(ctx context.Context, id string) (*model.Package, error) {
	return uc.repo.FindByID(ctx, repository.NoTX, id)
}

// List returns all active packages.
func (uc *PackageUseCase) List(ctx context.Context) ([]*model.Package, error) {
	return uc.repo.ListActive(ctx, repository.NoTX)
}

// SubscriberCounts returns subscriber counts keyed by package id.
func (uc *PackageUseCase) SubscriberCounts(ctx context.Context) (map[string]int, error) {
	return uc.subs.CountByPackage(ctx, repository.NoTX)
}
