package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hotspot-admin/internal/domain"
	"hotspot-admin/internal/domain/model"
	"hotspot-admin/internal/domain/ports/repository"
)

// SubscriberUseCase covers the admin-side subscriber operations. Accounts are
// normally created through card redemption; this path lets an operator create
// one directly, bypassing cards.
type SubscriberUseCase struct {
	subs     repository.SubscriberRepository
	packages repository.PackageRepository
	log      *zerolog.Logger
}

func NewSubscriberUseCase(subs repository.SubscriberRepository, packages repository.PackageRepository, logger *zerolog.Logger) *SubscriberUseCase {
	l := logger.With().Str("component", "SubscriberUseCase").Logger()
	return &SubscriberUseCase{subs: subs, packages: packages, log: &l}
}

// Create inserts a subscriber with operator-chosen credentials. A duplicate
// username surfaces as ErrAlreadyExists from the unique constraint; the
// generator is never re-invoked automatically.
func (uc *SubscriberUseCase) Create(ctx context.Context, fullName, username, password, phone, packageID string) (*model.Subscriber, error) {
	username = SanitizeUsername(username)
	if username == "" || password == "" || packageID == "" {
		return nil, domain.ErrInvalidArgument
	}

	pkg, err := uc.packages.FindByID(ctx, repository.NoTX, packageID)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	sub, err := model.NewSubscriber(uuid.NewString(), username, password, pkg, now)
	if err != nil {
		return nil, err
	}
	sub.FullName = fullName
	sub.Phone = phone

	if err := uc.subs.Save(ctx, repository.NoTX, sub); err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", username).Str("package_id", pkg.ID).Msg("subscriber created")
	return sub, nil
}

// List returns subscribers newest-first together with the total count.
func (uc *SubscriberUseCase) List(ctx context.Context, offset, limit int) ([]*model.Subscriber, int, error) {
	subs, err := uc.subs.List(ctx, repository.NoTX, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.subs.Count(ctx, repository.NoTX)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// Get retrieves one subscriber by id.
func (uc *SubscriberUseCase) Get(ctx context.Context, id string) (*model.Subscriber, error) {
	return uc.subs.FindByID(ctx, repository.NoTX, id)
}

// Delete removes a subscriber permanently.
func (uc *SubscriberUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidArgument
	}
	return uc.subs.Delete(ctx, repository.NoTX, id)
}

// SuggestCredentials produces a username/password pair for the add-subscriber
// form. Uniqueness is only enforced at insert time.
func (uc *SubscriberUseCase) SuggestCredentials() (username, password string, err error) {
	username, err = GenerateUsername()
	if err != nil {
		return "", "", err
	}
	password, err = GeneratePassword()
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}
