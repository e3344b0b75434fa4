package model

import (
	"time"

	"hotspot-admin/internal/domain"
)

// Admin is a dashboard operator account. Unlike subscriber credentials, admin
// passwords are stored as bcrypt hashes.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

func NewAdmin(id, username, passwordHash string) (*Admin, error) {
	if id == "" || username == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Admin{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}
