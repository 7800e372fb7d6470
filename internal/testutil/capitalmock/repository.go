package capitalmock

import (
	"context"

	domain "loanbook-backend/internal/domain/capital"

	"gorm.io/gorm"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// An unfilled Get reports an unseeded pool.
type Repo struct {
	GetFn    func(ctx context.Context) (*domain.Balance, error)
	UpsertFn func(ctx context.Context, total float64) error
}

func (m *Repo) Get(ctx context.Context) (*domain.Balance, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Upsert(ctx context.Context, total float64) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, total)
	}
	return nil
}
