package capital

import (
	"context"
	"errors"
	"math"

	domain "loanbook-backend/internal/domain/capital"
	"loanbook-backend/pkg/money"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Usecase maintains the pooled lending capital: one shared balance,
// decremented when a loan is disbursed and incremented when cash comes in.
// Every operation here is best-effort — capital tracking is advisory and
// must never fail the loan operation that triggered it.
type Usecase struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewUsecase(r domain.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, log: log}
}

// Total returns the current pool balance, zero when never seeded.
func (u *Usecase) Total(ctx context.Context) (float64, error) {
	b, err := u.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return b.Total, nil
}

// OnDisbursement deducts the loan principal from the pool. When the pool
// cannot cover the principal, the shortfall becomes the new balance rather
// than going negative — kept exactly as the business operates it today,
// pending product-owner confirmation.
func (u *Usecase) OnDisbursement(ctx context.Context, principal float64) {
	if principal <= 0 || math.IsNaN(principal) {
		return
	}

	current := u.currentTotal(ctx)
	var newTotal float64
	if current >= principal {
		newTotal = current - principal
	} else {
		newTotal = principal - current
	}
	newTotal = money.Round2(newTotal)

	if err := u.repo.Upsert(ctx, newTotal); err != nil {
		u.log.Warn("capital update failed after disbursement", zap.Error(err))
		return
	}
	u.log.Info("capital updated after disbursement",
		zap.Float64("previous", current), zap.Float64("new", newTotal))
}

// OnPaymentReceived adds the cash received to the pool and returns the
// refreshed total. ok is false when nothing was applied (zero/invalid cash
// or a failed write).
func (u *Usecase) OnPaymentReceived(ctx context.Context, cash float64) (total float64, ok bool) {
	if cash <= 0 || math.IsNaN(cash) {
		return 0, false
	}

	current := u.currentTotal(ctx)
	newTotal := money.Round2(current + cash)

	if err := u.repo.Upsert(ctx, newTotal); err != nil {
		u.log.Warn("capital update failed after payment", zap.Error(err))
		return 0, false
	}
	u.log.Info("capital updated after payment",
		zap.Float64("previous", current), zap.Float64("new", newTotal))
	return newTotal, true
}

func (u *Usecase) currentTotal(ctx context.Context) float64 {
	b, err := u.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			u.log.Warn("capital read failed, assuming zero balance", zap.Error(err))
		}
		return 0
	}
	return b.Total
}
