package postgres

import (
	"context"
	"errors"
	"hash/fnv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"hotspot-admin/internal/domain"
	"hotspot-admin/internal/domain/model"
	"hotspot-admin/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.CardRepository = (*cardRepo)(nil)

type cardRepo struct {
	pool *pgxpool.Pool
}

func NewCardRepo(pool *pgxpool.Pool) repository.CardRepository {
	return &cardRepo{pool: pool}
}

// Save creates a card or updates its redemption state. ON CONFLICT keys on the
// row id, so both the initial insert and the mark-used update go through here.
func (r *cardRepo) Save(ctx context.Context, tx repository.Tx, card *model.Card) error {
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	const q = `
INSERT INTO cards (id, code, package_id, status, used_by, used_at, batch_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
  status  = EXCLUDED.status,
  used_by = EXCLUDED.used_by,
  used_at = EXCLUDED.used_at;
`
	_, err := execSQL(ctx, r.pool, tx, q,
		card.ID, card.Code, card.PackageID, string(card.Status), card.UsedBy, card.UsedAt, card.BatchID, card.CreatedAt,
	)
	return translateError(err)
}

// AcquireCodeLock takes a transaction-scoped advisory lock keyed on the code.
// Two redeemers of the same code serialize here; the lock releases when the
// surrounding transaction commits or rolls back.
func (r *cardRepo) AcquireCodeLock(ctx context.Context, tx repository.Tx, code string) error {
	_, err := execSQL(ctx, r.pool, tx, "SELECT pg_advisory_xact_lock($1);", hashToInt64(code))
	return err
}

func hashToInt64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64() & ((1 << 63) - 1))
}

func (r *cardRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.Card, error) {
	const q = `
SELECT id, code, package_id, status, used_by, used_at, batch_id, created_at
  FROM cards
 WHERE code = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, code)
	if err != nil {
		return nil, err
	}
	return scanCard(row)
}

func (r *cardRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Card, error) {
	const q = `
SELECT id, code, package_id, status, used_by, used_at, batch_id, created_at
  FROM cards
 ORDER BY created_at DESC
 OFFSET $1 LIMIT $2;
`
	rows, err := queryRows(ctx, r.pool, tx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCards(rows)
}

func (r *cardRepo) ListByBatch(ctx context.Context, tx repository.Tx, batchID string) ([]*model.Card, error) {
	const q = `
SELECT id, code, package_id, status, used_by, used_at, batch_id, created_at
  FROM cards
 WHERE batch_id = $1
 ORDER BY created_at;
`
	rows, err := queryRows(ctx, r.pool, tx, q, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCards(rows)
}

func (r *cardRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	const q = `SELECT COUNT(1) FROM cards;`
	return r.countOne(ctx, tx, q)
}

func (r *cardRepo) CountByStatus(ctx context.Context, tx repository.Tx, status model.CardStatus) (int, error) {
	const q = `SELECT COUNT(1) FROM cards WHERE status = $1;`
	return r.countOne(ctx, tx, q, string(status))
}

// RevenueByPeriod sums package prices over cards redeemed since the start of
// the current week/month/year. used_at is stored as epoch seconds.
func (r *cardRepo) RevenueByPeriod(ctx context.Context, tx repository.Tx, period string) (float64, error) {
	const q = `
SELECT COALESCE(SUM(p.price), 0)
  FROM cards c
  JOIN packages p ON p.id = c.package_id
 WHERE c.status = 'used'
   AND TO_TIMESTAMP(c.used_at) >= DATE_TRUNC($1, NOW());
`
	row, err := pickRow(ctx, r.pool, tx, q, period)
	if err != nil {
		return 0, err
	}
	var sum float64
	if err := row.Scan(&sum); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return sum, nil
}

func (r *cardRepo) countOne(ctx context.Context, tx repository.Tx, q string, args ...interface{}) (int, error) {
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

func scanCard(row pgx.Row) (*model.Card, error) {
	var c model.Card
	var status string
	err := row.Scan(&c.ID, &c.Code, &c.PackageID, &status, &c.UsedBy, &c.UsedAt, &c.BatchID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	c.Status = model.CardStatus(status)
	return &c, nil
}

func scanCards(rows pgx.Rows) ([]*model.Card, error) {
	var out []*model.Card
	for rows.Next() {
		var c model.Card
		var status string
		if err := rows.Scan(&c.ID, &c.Code, &c.PackageID, &status, &c.UsedBy, &c.UsedAt, &c.BatchID, &c.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		c.Status = model.CardStatus(status)
		out = append(out, &c)
	}
	return out, rows.Err()
}
