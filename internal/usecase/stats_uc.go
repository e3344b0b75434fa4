package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"hotspot-admin/internal/domain/model"
	"hotspot-admin/internal/domain/ports/repository"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

// Totals is the dashboard summary block.
type Totals struct {
	Subscribers       int
	ActiveSubscribers int
	CardsTotal        int
	CardsUsed         int
	CardsUnused       int
	ActivePackages    int
}

type StatsUseCase interface {
	Totals(ctx context.Context) (*Totals, error)
	Revenue(ctx context.Context) (week, month, year float64, err error)
}

type statsUC struct {
	subs     repository.SubscriberRepository
	cards    repository.CardRepository
	packages repository.PackageRepository

	log *zerolog.Logger
}

func NewStatsUseCase(subs repository.SubscriberRepository, cards repository.CardRepository, packages repository.PackageRepository, logger *zerolog.Logger) *statsUC {
	return &statsUC{subs: subs, cards: cards, packages: packages, log: logger}
}

func (s *statsUC) Totals(ctx context.Context) (*Totals, error) {
	total, err := s.subs.Count(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	active, err := s.subs.CountActive(ctx, repository.NoTX, time.Now().Unix())
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.Count(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	used, err := s.cards.CountByStatus(ctx, repository.NoTX, model.CardStatusUsed)
	if err != nil {
		return nil, err
	}
	pkgs, err := s.packages.CountActive(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	return &Totals{
		Subscribers:       total,
		ActiveSubscribers: active,
		CardsTotal:        cards,
		CardsUsed:         used,
		CardsUnused:       cards - used,
		ActivePackages:    pkgs,
	}, nil
}

func (s *statsUC) Revenue(ctx context.Context) (float64, float64, float64, error) {
	w, err := s.cards.RevenueByPeriod(ctx, repository.NoTX, "week")
	if err != nil {
		return 0, 0, 0, err
	}
	m, err := s.cards.RevenueByPeriod(ctx, repository.NoTX, "month")
	if err != nil {
		return 0, 0, 0, err
	}
	y, err := s.cards.RevenueByPeriod(ctx, repository.NoTX, "year")
	if err != nil {
		return 0, 0, 0, err
	}
	return w, m, y, nil
}
