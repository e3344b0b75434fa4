package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"hotspot-admin/internal/domain"
	"hotspot-admin/internal/domain/model"
	"hotspot-admin/internal/domain/ports/repository"
	"hotspot-admin/internal/infra/metrics"
)

// VerifyResult carries a redeemable card and its package.
type VerifyResult struct {
	Card    *model.Card
	Package *model.Package
}

// RedeemResult is returned to the end user after a successful activation.
// Password is set only when a new account was created; it is shown exactly once.
type RedeemResult struct {
	Username   string
	Password   string
	NewAccount bool
	ExpiresAt  int64
}

// BatchResult reports the outcome of a bulk generation call. Failed counts
// inserts that did not go through (e.g. a code collision); earlier inserts of
// the same batch are never rolled back.
type BatchResult struct {
	BatchID string
	Cards   []*model.Card
	Failed  int
}

const (
	minCodeLength    = 5
	maxBatchQuantity = 100
)

// CardUseCase implements card verification, redemption, and bulk generation.
type CardUseCase struct {
	cards    repository.CardRepository
	packages repository.PackageRepository
	subs     repository.SubscriberRepository
	tm       repository.TransactionManager
	log      *zerolog.Logger

	nowFn func() int64
}

// NewCardUseCase constructs the use case. tm may be nil (tests / in-memory
// repos); when present, redemption runs in a transaction holding an advisory
// lock keyed on the card code.
func NewCardUseCase(cards repository.CardRepository, packages repository.PackageRepository, subs repository.SubscriberRepository, tm repository.TransactionManager, logger *zerolog.Logger) *CardUseCase {
	l := logger.With().Str("component", "CardUseCase").Logger()
	return &CardUseCase{
		cards:    cards,
		packages: packages,
		subs:     subs,
		tm:       tm,
		log:      &l,
		nowFn:    func() int64 { return time.Now().Unix() },
	}
}

// NormalizeCode uppercases and trims a user-entered card code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// SanitizeUsername lowercases the input and strips everything outside
// [a-z0-9_], mirroring the filter applied on the activation form.
func SanitizeUsername(username string) string {
	username = strings.ToLower(strings.TrimSpace(username))
	var b strings.Builder
	for _, c := range username {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Verify determines whether a card code is redeemable. It is read-only and
// idempotent: no stored state changes during verification.
func (uc *CardUseCase) Verify(ctx context.Context, code string) (*VerifyResult, error) {
	code = NormalizeCode(code)
	if len(code) < minCodeLength {
		return nil, domain.ErrInvalidArgument
	}

	card, err := uc.cards.FindByCode(ctx, repository.NoTX, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	if card.Status == model.CardStatusUsed {
		// expose no package info for consumed cards
		return nil, domain.ErrCardAlreadyUsed
	}

	pkg, err := uc.packages.FindByID(ctx, repository.NoTX, card.PackageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInconsistentState
		}
		return nil, err
	}
	if !pkg.IsActive {
		return nil, domain.ErrInconsistentState
	}

	return &VerifyResult{Card: card, Package: pkg}, nil
}

// Redeem consumes an unused card and activates or renews the subscriber with
// the given username. The card state is re-checked inside the transaction, so
// two concurrent redeemers of the same code serialize on the advisory lock and
// the loser observes ErrCardAlreadyUsed.
func (uc *CardUseCase) Redeem(ctx context.Context, code, username string) (*RedeemResult, error) {
	code = NormalizeCode(code)
	if len(code) < minCodeLength {
		return nil, domain.ErrInvalidArgument
	}
	username = SanitizeUsername(username)
	if username == "" {
		return nil, domain.ErrInvalidArgument
	}

	if uc.tm == nil {
		// In-memory path (tests). Same steps, no lock.
		res, err := uc.redeemTx(ctx, repository.NoTX, code, username)
		uc.observeRedeem(err)
		return res, err
	}

	var res *RedeemResult
	err := uc.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		// serialize concurrent redemption of the same code
		if err := uc.cards.AcquireCodeLock(ctx, tx, code); err != nil {
			return err
		}
		var err error
		res, err = uc.redeemTx(ctx, tx, code, username)
		return err
	})
	uc.observeRedeem(err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// redeemTx performs the verify-then-consume sequence against the given handle.
// The subscriber upsert and the card mutation commit or fail together.
func (uc *CardUseCase) redeemTx(ctx context.Context, tx repository.Tx, code, username string) (*RedeemResult, error) {
	card, err := uc.cards.FindByCode(ctx, tx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	if card.Status == model.CardStatusUsed {
		return nil, domain.ErrCardAlreadyUsed
	}

	pkg, err := uc.packages.FindByID(ctx, tx, card.PackageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInconsistentState
		}
		return nil, err
	}
	if !pkg.IsActive {
		return nil, domain.ErrInconsistentState
	}

	now := uc.nowFn()
	result := &RedeemResult{Username: username}

	sub, err := uc.subs.FindByUsername(ctx, tx, username)
	switch {
	case err == nil:
		// Existing account: reset the window from now. No new password, usage
		// counters are kept.
		if err := sub.Renew(pkg, now); err != nil {
			return nil, err
		}
		if err := uc.subs.Save(ctx, tx, sub); err != nil {
			return nil, err
		}
		result.ExpiresAt = sub.ExpiresAt
	case errors.Is(err, domain.ErrNotFound):
		password, err := GeneratePassword()
		if err != nil {
			return nil, err
		}
		sub, err = model.NewSubscriber(uuid.NewString(), username, password, pkg, now)
		if err != nil {
			return nil, err
		}
		if err := uc.subs.Save(ctx, tx, sub); err != nil {
			return nil, err
		}
		result.Password = password
		result.NewAccount = true
		result.ExpiresAt = sub.ExpiresAt
	default:
		return nil, err
	}

	if err := card.MarkUsed(username, now); err != nil {
		return nil, err
	}
	if err := uc.cards.Save(ctx, tx, card); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("code", card.Code).
		Str("username", username).
		Bool("new_account", result.NewAccount).
		Int64("expires_at", result.ExpiresAt).
		Msg("card redeemed")
	return result, nil
}

func (uc *CardUseCase) observeRedeem(err error) {
	switch {
	case err == nil:
		metrics.IncCardRedeemed()
	case errors.Is(err, domain.ErrCardNotFound):
		metrics.IncRedeemFailure("not_found")
	case errors.Is(err, domain.ErrCardAlreadyUsed):
		metrics.IncRedeemFailure("already_used")
	case errors.Is(err, domain.ErrInconsistentState):
		metrics.IncRedeemFailure("inconsistent_state")
	default:
		metrics.IncRedeemFailure("error")
	}
}

// GenerateBatch creates quantity unused cards for one package, all sharing a
// single timestamp-derived batch id. Individual insert failures (a code
// colliding with the unique constraint) do not roll back earlier inserts.
func (uc *CardUseCase) GenerateBatch(ctx context.Context, packageID string, quantity int) (*BatchResult, error) {
	if quantity < 1 || quantity > maxBatchQuantity {
		return nil, domain.ErrInvalidArgument
	}

	pkg, err := uc.packages.FindByID(ctx, repository.NoTX, packageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, domain.ErrInvalidArgument
	}

	batch := &BatchResult{BatchID: ulid.Make().String()}
	for i := 0; i < quantity; i++ {
		code, err := GenerateCardCode()
		if err != nil {
			return nil, err
		}
		card, err := model.NewCard(uuid.NewString(), code, pkg.ID, batch.BatchID)
		if err != nil {
			return nil, err
		}
		if err := uc.cards.Save(ctx, repository.NoTX, card); err != nil {
			batch.Failed++
			uc.log.Warn().Err(err).Str("code", code).Str("batch_id", batch.BatchID).Msg("card insert failed")
			continue
		}
		batch.Cards = append(batch.Cards, card)
	}

	metrics.AddCardsGenerated(len(batch.Cards))
	uc.log.Info().
		Str("batch_id", batch.BatchID).
		Str("package_id", pkg.ID).
		Int("requested", quantity).
		Int("created", len(batch.Cards)).
		Msg("card batch generated")
	return batch, nil
}

// ListCards returns cards newest-first for the admin cards page.
func (uc *CardUseCase) ListCards(ctx context.Context, offset, limit int) ([]*model.Card, int, error) {
	cards, err := uc.cards.List(ctx, repository.NoTX, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.cards.Count(ctx, repository.NoTX)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// ListBatch returns every card of one batch.
func (uc *CardUseCase) ListBatch(ctx context.Context, batchID string) ([]*model.Card, error) {
	if batchID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return uc.cards.ListByBatch(ctx, repository.NoTX, batchID)
}
