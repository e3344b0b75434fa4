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
var _ repository.PackageRepository = (*packageRepo)(nil)

type packageRepo struct {
	pool *pgxpool.Pool
}

func NewPackageRepo(pool *pgxpool.Pool) repository.PackageRepository {
	return &packageRepo{pool: pool}
}

func (r *packageRepo) Save(ctx context.Context, tx repository.Tx, pkg *model.Package) error {
	if pkg.ID == "" {
		pkg.ID = uuid.NewString()
	}
	const q = `
INSERT INTO packages (id, name, price, duration_days, speed_limit, download_limit, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
  name           = EXCLUDED.name,
  price          = EXCLUDED.price,
  duration_days  = EXCLUDED.duration_days,
  speed_limit    = EXCLUDED.speed_limit,
  download_limit = EXCLUDED.download_limit,
  is_active      = EXCLUDED.is_active;
`
	_, err := execSQL(ctx, r.pool, tx, q,
		pkg.ID, pkg.Name, pkg.Price, pkg.DurationDays, pkg.SpeedLimit, pkg.DownloadLimit, pkg.IsActive, pkg.CreatedAt,
	)
	return translateError(err)
}

func (r *packageRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Package, error) {
	const q = `
SELECT id, name, price, duration_days, speed_limit, download_limit, is_active, created_at
  FROM packages
 WHERE id = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}

	var p model.Package
	err = row.Scan(&p.ID, &p.Name, &p.Price, &p.DurationDays, &p.SpeedLimit, &p.DownloadLimit, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &p, nil
}

func (r *packageRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Package, error) {
	const q = `
SELECT id, name, price, duration_days, speed_limit, download_limit, is_active, created_at
  FROM packages
 WHERE is_active = TRUE
 ORDER BY created_at;
`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Package
	for rows.Next() {
		var p model.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.DurationDays, &p.SpeedLimit, &p.DownloadLimit, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *packageRepo) Deactivate(ctx context.Context, tx repository.Tx, id string) error {
	const q = `UPDATE packages SET is_active = FALSE WHERE id = $1;`
	ct, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *packageRepo) CountActive(ctx context.Context, tx repository.Tx) (int, error) {
	const q = `SELECT COUNT(1) FROM packages WHERE is_active = TRUE;`
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
