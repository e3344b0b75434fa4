package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"hotspot-admin/internal/domain"
	"hotspot-admin/internal/domain/model"
	"hotspot-admin/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.AdminRepository = (*adminRepo)(nil)

type adminRepo struct {
	pool *pgxpool.Pool
}

func NewAdminRepo(pool *pgxpool.Pool) repository.AdminRepository {
	return &adminRepo{pool: pool}
}

func (r *adminRepo) Save(ctx context.Context, tx repository.Tx, admin *model.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	const q = `
INSERT INTO admins (id, username, password_hash, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
  password_hash = EXCLUDED.password_hash;
`
	_, err := execSQL(ctx, r.pool, tx, q, admin.ID, admin.Username, admin.PasswordHash, admin.CreatedAt)
	return translateError(err)
}

func (r *adminRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.Admin, error) {
	const q = `SELECT id, username, password_hash, created_at FROM admins WHERE username = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, username)
	if err != nil {
		return nil, err
	}
	var a model.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &a, nil
}

func (r *adminRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	const q = `SELECT COUNT(1) FROM admins;`
	row, err := pickRow(ctx, r.pool, tx, q)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}
