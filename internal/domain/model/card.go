package model

import (
	"time"

	"hotspot-admin/internal/domain"
)

type CardStatus string

const (
	CardStatusUnused CardStatus = "unused"
	CardStatusUsed   CardStatus = "used"
)

// Card represents a single-use prepaid code that can be redeemed for a
// subscription to one package. The only legal status transition is
// unused -> used; "used" is terminal.
type Card struct {
	ID        string
	Code      string
	PackageID string
	Status    CardStatus
	UsedBy    *string // Pointer to allow for NULL
	UsedAt    *int64  // epoch seconds, NULL until redeemed
	BatchID   string
	CreatedAt time.Time
}

// NewCard constructs an unused card bound to a package.
func NewCard(id, code, packageID, batchID string) (*Card, error) {
	if id == "" || code == "" || packageID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Card{
		ID:        id,
		Code:      code,
		PackageID: packageID,
		Status:    CardStatusUnused,
		BatchID:   batchID,
		CreatedAt: time.Now(),
	}, nil
}

// MarkUsed transitions the card to its terminal state.
func (c *Card) MarkUsed(username string, at int64) error {
	if c.Status == CardStatusUsed {
		return domain.ErrCardAlreadyUsed
	}
	c.Status = CardStatusUsed
	c.UsedBy = &username
	c.UsedAt = &at
	return nil
}
