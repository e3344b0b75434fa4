package model

import (
	"time"

	"hotspot-admin/internal/domain"
)

type SubscriberStatus string

const (
	SubscriberStatusActive  SubscriberStatus = "active"
	SubscriberStatusExpired SubscriberStatus = "expired"
)

// Subscriber is an end-user hotspot account. The stored Status column lags
// reality by design: the effective state is always derived via IsActive, never
// read back from storage.
type Subscriber struct {
	ID            string
	Username      string
	Password      string // plaintext: hotspot credentials are read back to the user
	FullName      string
	Phone         string
	PackageID     string
	Status        SubscriberStatus
	StartedAt     int64 // epoch seconds
	ExpiresAt     int64 // epoch seconds
	TotalDownload int64
	TotalUpload   int64
	CreatedAt     time.Time
}

// NewSubscriber creates an active subscriber whose window starts at `now`
// and runs for the package duration.
func NewSubscriber(id, username, password string, pkg *Package, now int64) (*Subscriber, error) {
	if id == "" || username == "" || password == "" || pkg.IsZero() {
		return nil, domain.ErrInvalidArgument
	}
	return &Subscriber{
		ID:        id,
		Username:  username,
		Password:  password,
		PackageID: pkg.ID,
		Status:    SubscriberStatusActive,
		StartedAt: now,
		ExpiresAt: now + int64(pkg.DurationDays)*86400,
		CreatedAt: time.Now(),
	}, nil
}

// IsActive reports the effective subscription state at `now`. This predicate is
// the single source of truth; the stored Status field is reconciled lazily by
// the expiry worker for reporting queries only.
func (s *Subscriber) IsActive(now int64) bool {
	return s != nil && s.Status == SubscriberStatusActive && s.ExpiresAt > now
}

// Renew resets the subscription window from `now`. Remaining time on the old
// window is discarded, never stacked.
func (s *Subscriber) Renew(pkg *Package, now int64) error {
	if pkg.IsZero() {
		return domain.ErrInvalidArgument
	}
	s.PackageID = pkg.ID
	s.ExpiresAt = now + int64(pkg.DurationDays)*86400
	s.Status = SubscriberStatusActive
	return nil
}

func (s *Subscriber) IsZero() bool { return s == nil || s.ID == "" }
