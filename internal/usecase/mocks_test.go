//go:build !integration

package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v4"

	"hotspot-admin/internal/domain"
	"hotspot-admin/internal/domain/model"
	"hotspot-admin/internal/domain/ports/repository"
)

//
// ---------------- in-memory infra mocks (repos) ----------------
//

type memPackageRepo struct {
	mu   sync.Mutex
	byID map[string]*model.Package

	// optional error hooks
	errFind error
	errSave error
}

func newMemPackageRepo() *memPackageRepo {
	return &memPackageRepo{byID: map[string]*model.Package{}}
}

func (m *memPackageRepo) Save(ctx context.Context, tx repository.Tx, pkg *model.Package) error {
	if m.errSave != nil {
		return m.errSave
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *pkg
	m.byID[pkg.ID] = &cp
	return nil
}

func (m *memPackageRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Package, error) {
	if m.errFind != nil {
		return nil, m.errFind
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPackageRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Package
	for _, p := range m.byID {
		if p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memPackageRepo) Deactivate(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (m *memPackageRepo) CountActive(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.byID {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

type memCardRepo struct {
	mu     sync.Mutex
	byCode map[string]*model.Card

	errSave    error
	errFind    error
	failEveryN int // every Nth Save fails with ErrAlreadyExists (collision sim)
	saves      int
	locks      int
}

func newMemCardRepo() *memCardRepo {
	return &memCardRepo{byCode: map[string]*model.Card{}}
}

func (m *memCardRepo) Save(ctx context.Context, tx repository.Tx, card *model.Card) error {
	if m.errSave != nil {
		return m.errSave
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.failEveryN > 0 && m.saves%m.failEveryN == 0 {
		return domain.ErrAlreadyExists
	}
	if existing, ok := m.byCode[card.Code]; ok && existing.ID != card.ID {
		return domain.ErrAlreadyExists
	}
	cp := *card
	m.byCode[card.Code] = &cp
	return nil
}

func (m *memCardRepo) AcquireCodeLock(ctx context.Context, tx repository.Tx, code string) error {
	m.mu.Lock()
	m.locks++
	m.mu.Unlock()
	return nil
}

func (m *memCardRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.Card, error) {
	if m.errFind != nil {
		return nil, m.errFind
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCardRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Card
	for _, c := range m.byCode {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if offset >= len(out) {
		return []*model.Card{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (m *memCardRepo) ListByBatch(ctx context.Context, tx repository.Tx, batchID string) ([]*model.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Card
	for _, c := range m.byCode {
		if c.BatchID == batchID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memCardRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byCode), nil
}

func (m *memCardRepo) CountByStatus(ctx context.Context, tx repository.Tx, status model.CardStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.byCode {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memCardRepo) RevenueByPeriod(ctx context.Context, tx repository.Tx, period string) (float64, error) {
	// The window arithmetic lives in SQL; the mock just needs deterministic
	// values for the stats tests.
	switch period {
	case "week":
		return 100, nil
	case "month":
		return 1000, nil
	case "year":
		return 10000, nil
	}
	return 0, nil
}

type memSubscriberRepo struct {
	mu         sync.Mutex
	byUsername map[string]*model.Subscriber

	errSave error
	errFind error
}

func newMemSubscriberRepo() *memSubscriberRepo {
	return &memSubscriberRepo{byUsername: map[string]*model.Subscriber{}}
}

func (m *memSubscriberRepo) Save(ctx context.Context, tx repository.Tx, sub *model.Subscriber) error {
	if m.errSave != nil {
		return m.errSave
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byUsername[sub.Username]; ok && existing.ID != sub.ID {
		return domain.ErrAlreadyExists
	}
	cp := *sub
	m.byUsername[sub.Username] = &cp
	return nil
}

func (m *memSubscriberRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byUsername {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memSubscriberRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.Subscriber, error) {
	if m.errFind != nil {
		return nil, m.errFind
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSubscriberRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Subscriber
	for _, s := range m.byUsername {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Username, out[j].Username) < 0
	})
	if offset >= len(out) {
		return []*model.Subscriber{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (m *memSubscriberRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for u, s := range m.byUsername {
		if s.ID == id {
			delete(m.byUsername, u)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memSubscriberRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byUsername), nil
}

func (m *memSubscriberRepo) CountActive(ctx context.Context, tx repository.Tx, now int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.byUsername {
		if s.IsActive(now) {
			n++
		}
	}
	return n, nil
}

func (m *memSubscriberRepo) CountByPackage(ctx context.Context, tx repository.Tx) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, s := range m.byUsername {
		out[s.PackageID]++
	}
	return out, nil
}

func (m *memSubscriberRepo) MarkExpired(ctx context.Context, tx repository.Tx, now int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.byUsername {
		if s.Status == model.SubscriberStatusActive && s.ExpiresAt <= now {
			s.Status = model.SubscriberStatusExpired
			n++
		}
	}
	return n, nil
}

type memAdminRepo struct {
	mu         sync.Mutex
	byUsername map[string]*model.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{byUsername: map[string]*model.Admin{}}
}

func (m *memAdminRepo) Save(ctx context.Context, tx repository.Tx, admin *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byUsername[admin.Username]; ok && existing.ID != admin.ID {
		return domain.ErrAlreadyExists
	}
	cp := *admin
	m.byUsername[admin.Username] = &cp
	return nil
}

func (m *memAdminRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAdminRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byUsername), nil
}

type mockTxManager struct {
	mu    sync.Mutex
	calls int

	// WithTxFunc overrides the default pass-through behavior when set.
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

// WithTx runs the callback without a real transaction. Assign WithTxFunc to
// simulate begin/commit failures.
func (m *mockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// interface conformance
var (
	_ repository.PackageRepository    = (*memPackageRepo)(nil)
	_ repository.CardRepository       = (*memCardRepo)(nil)
	_ repository.SubscriberRepository = (*memSubscriberRepo)(nil)
	_ repository.AdminRepository      = (*memAdminRepo)(nil)
	_ repository.TransactionManager   = (*mockTxManager)(nil)
)
