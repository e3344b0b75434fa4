package model

import (
	"time"

	"hotspot-admin/internal/domain"
)

// Package represents a purchasable hotspot plan with a fixed duration,
// speed limit, and download allowance. Empty limit strings mean unlimited.
type Package struct {
	ID            string
	Name          string
	Price         float64
	DurationDays  int
	SpeedLimit    string
	DownloadLimit string
	IsActive      bool
	CreatedAt     time.Time
}

func (p *Package) IsZero() bool { return p == nil || p.ID == "" }

// NewPackage validates and constructs a package.
func NewPackage(id, name string, price float64, durationDays int, speedLimit, downloadLimit string) (*Package, error) {
	if id == "" || name == "" || durationDays <= 0 || price < 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Package{
		ID:            id,
		Name:          name,
		Price:         price,
		DurationDays:  durationDays,
		SpeedLimit:    speedLimit,
		DownloadLimit: downloadLimit,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}, nil
}
