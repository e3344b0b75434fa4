//go:build !integration

package web

import (
	"context"
	"sync"

	"hotspot-admin/internal/domain"
	"hotspot-admin/internal/domain/model"
	"hotspot-admin/internal/domain/ports/repository"
)

// --- Mock Repositories (Ports) ---

type mockPackageRepo struct {
	repository.PackageRepository // Embed interface for forward compatibility
	mu                           sync.Mutex
	pkgs                         []*model.Package
	ListError                    error
}

func (m *mockPackageRepo) Save(ctx context.Context, tx repository.Tx, pkg *model.Package) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.pkgs {
		if p.ID == pkg.ID {
			m.pkgs[i] = pkg
			return nil
		}
	}
	m.pkgs = append(m.pkgs, pkg)
	return nil
}

func (m *mockPackageRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pkgs {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPackageRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Package, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Package
	for _, p := range m.pkgs {
		if p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockPackageRepo) Deactivate(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pkgs {
		if p.ID == id {
			p.IsActive = false
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockPackageRepo) CountActive(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.pkgs {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

type mockCardRepo struct {
	repository.CardRepository
	mu      sync.Mutex
	cards   []*model.Card
	Revenue map[string]float64
}

func (m *mockCardRepo) Save(ctx context.Context, tx repository.Tx, card *model.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.cards {
		if c.ID == card.ID {
			cp := *card
			m.cards[i] = &cp
			return nil
		}
		if c.Code == card.Code {
			return domain.ErrAlreadyExists
		}
	}
	cp := *card
	m.cards = append(m.cards, &cp)
	return nil
}

func (m *mockCardRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cards {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrCardNotFound
}

func (m *mockCardRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	end := offset + limit
	if end > len(m.cards) {
		end = len(m.cards)
	}
	if offset >= len(m.cards) {
		return []*model.Card{}, nil
	}
	out := make([]*model.Card, 0, end-offset)
	for _, c := range m.cards[offset:end] {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockCardRepo) ListByBatch(ctx context.Context, tx repository.Tx, batchID string) ([]*model.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Card
	for _, c := range m.cards {
		if c.BatchID == batchID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockCardRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cards), nil
}

func (m *mockCardRepo) CountByStatus(ctx context.Context, tx repository.Tx, status model.CardStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.cards {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockCardRepo) RevenueByPeriod(ctx context.Context, tx repository.Tx, period string) (float64, error) {
	return m.Revenue[period], nil
}

type mockSubscriberRepo struct {
	repository.SubscriberRepository
	mu   sync.Mutex
	subs []*model.Subscriber
}

func (m *mockSubscriberRepo) Save(ctx context.Context, tx repository.Tx, sub *model.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.subs {
		if s.ID == sub.ID {
			cp := *sub
			m.subs[i] = &cp
			return nil
		}
		if s.Username == sub.Username {
			return domain.ErrAlreadyExists
		}
	}
	cp := *sub
	m.subs = append(m.subs, &cp)
	return nil
}

func (m *mockSubscriberRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSubscriberRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.Username == username {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSubscriberRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	end := offset + limit
	if end > len(m.subs) {
		end = len(m.subs)
	}
	if offset >= len(m.subs) {
		return []*model.Subscriber{}, nil
	}
	out := make([]*model.Subscriber, 0, end-offset)
	for _, s := range m.subs[offset:end] {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockSubscriberRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.subs {
		if s.ID == id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockSubscriberRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs), nil
}

func (m *mockSubscriberRepo) CountActive(ctx context.Context, tx repository.Tx, now int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.subs {
		if s.IsActive(now) {
			n++
		}
	}
	return n, nil
}

func (m *mockSubscriberRepo) CountByPackage(ctx context.Context, tx repository.Tx) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int)
	for _, s := range m.subs {
		out[s.PackageID]++
	}
	return out, nil
}

type mockAdminRepo struct {
	repository.AdminRepository
	mu     sync.Mutex
	admins []*model.Admin
}

func (m *mockAdminRepo) Save(ctx context.Context, tx repository.Tx, admin *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Username == admin.Username {
			return domain.ErrAlreadyExists
		}
	}
	m.admins = append(m.admins, admin)
	return nil
}

func (m *mockAdminRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockAdminRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.admins), nil
}
