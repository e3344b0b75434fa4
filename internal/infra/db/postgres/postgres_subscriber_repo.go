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
var _ repository.SubscriberRepository = (*subscriberRepo)(nil)

type subscriberRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriberRepo(pool *pgxpool.Pool) repository.SubscriberRepository {
	return &subscriberRepo{pool: pool}
}

const subscriberColumns = `id, username, password, full_name, phone, package_id, status, started_at, expires_at, total_download, total_upload, created_at`

func (r *subscriberRepo) Save(ctx context.Context, tx repository.Tx, sub *model.Subscriber) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	const q = `
INSERT INTO subscribers (id, username, password, full_name, phone, package_id, status, started_at, expires_at, total_download, total_upload, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
  full_name      = EXCLUDED.full_name,
  phone          = EXCLUDED.phone,
  package_id     = EXCLUDED.package_id,
  status         = EXCLUDED.status,
  expires_at     = EXCLUDED.expires_at,
  total_download = EXCLUDED.total_download,
  total_upload   = EXCLUDED.total_upload;
`
	_, err := execSQL(ctx, r.pool, tx, q,
		sub.ID, sub.Username, sub.Password, sub.FullName, sub.Phone, sub.PackageID,
		string(sub.Status), sub.StartedAt, sub.ExpiresAt, sub.TotalDownload, sub.TotalUpload, sub.CreatedAt,
	)
	return translateError(err)
}

func (r *subscriberRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscriber, error) {
	const q = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanSubscriber(row)
}

func (r *subscriberRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.Subscriber, error) {
	const q = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE username = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, username)
	if err != nil {
		return nil, err
	}
	return scanSubscriber(row)
}

func (r *subscriberRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Subscriber, error) {
	const q = `SELECT ` + subscriberColumns + ` FROM subscribers ORDER BY created_at DESC OFFSET $1 LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Subscriber
	for rows.Next() {
		var s model.Subscriber
		var status string
		if err := rows.Scan(&s.ID, &s.Username, &s.Password, &s.FullName, &s.Phone, &s.PackageID,
			&status, &s.StartedAt, &s.ExpiresAt, &s.TotalDownload, &s.TotalUpload, &s.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		s.Status = model.SubscriberStatus(status)
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *subscriberRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM subscribers WHERE id = $1;`
	ct, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subscriberRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	const q = `SELECT COUNT(1) FROM subscribers;`
	return r.countOne(ctx, tx, q)
}

func (r *subscriberRepo) CountActive(ctx context.Context, tx repository.Tx, now int64) (int, error) {
	// effective status: stored active AND window still open
	const q = `SELECT COUNT(1) FROM subscribers WHERE status = 'active' AND expires_at > $1;`
	return r.countOne(ctx, tx, q, now)
}

func (r *subscriberRepo) CountByPackage(ctx context.Context, tx repository.Tx) (map[string]int, error) {
	const q = `SELECT package_id, COUNT(1) FROM subscribers GROUP BY package_id;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var pkgID string
		var n int
		if err := rows.Scan(&pkgID, &n); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out[pkgID] = n
	}
	return out, rows.Err()
}

func (r *subscriberRepo) MarkExpired(ctx context.Context, tx repository.Tx, now int64) (int, error) {
	const q = `UPDATE subscribers SET status = 'expired' WHERE status = 'active' AND expires_at <= $1;`
	ct, err := execSQL(ctx, r.pool, tx, q, now)
	if err != nil {
		return 0, err
	}
	return int(ct.RowsAffected()), nil
}

func (r *subscriberRepo) countOne(ctx context.Context, tx repository.Tx, q string, args ...interface{}) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, q, args...)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func scanSubscriber(row pgx.Row) (*model.Subscriber, error) {
	var s model.Subscriber
	var status string
	err := row.Scan(&s.ID, &s.Username, &s.Password, &s.FullName, &s.Phone, &s.PackageID,
		&status, &s.StartedAt, &s.ExpiresAt, &s.TotalDownload, &s.TotalUpload, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	s.Status = model.SubscriberStatus(status)
	return &s, nil
}
