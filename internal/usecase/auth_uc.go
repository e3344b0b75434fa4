package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hotspot-admin/internal/domain"
	"hotspot-admin/internal/domain/model"
	"hotspot-admin/internal/domain/ports/repository"
)

// AuthUseCase authenticates dashboard operators.
type AuthUseCase struct {
	admins repository.AdminRepository
}

// signInDummyHash is compared against when the username has no account, so
// a sign-in attempt costs one bcrypt verification either way and response
// timing does not reveal which usernames exist.
var signInDummyHash, _ = bcrypt.GenerateFromPassword([]byte("unknown-admin-placeholder"), bcrypt.DefaultCost)

func NewAuthUseCase(admins repository.AdminRepository) *AuthUseCase {
	return &AuthUseCase{admins: admins}
}

// SignIn checks the credentials against the stored bcrypt hash. Unknown
// username and wrong password both map to ErrUnauthorized.
func (uc *AuthUseCase) SignIn(ctx context.Context, username, password string) (*model.Admin, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidArgument
	}
	admin, err := uc.admins.FindByUsername(ctx, repository.NoTX, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(signInDummyHash, []byte(password))
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return admin, nil
}

// CreateAdmin hashes the password and persists a new operator account.
func (uc *AuthUseCase) CreateAdmin(ctx context.Context, username, password string) (*model.Admin, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidArgument
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin, err := model.NewAdmin(uuid.NewString(), username, string(hash))
	if err != nil {
		return nil, err
	}
	if err := uc.admins.Save(ctx, repository.NoTX, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// CountAdmins reports how many operator accounts exist (seed idempotence).
func (uc *AuthUseCase) CountAdmins(ctx context.Context) (int, error) {
	return uc.admins.Count(ctx, repository.NoTX)
}
