package loanmock

import (
	"context"

	domain "loanbook-backend/internal/domain/loan"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs; unfilled methods are no-ops
// or return context.Canceled so a forgotten stub surfaces quickly.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListFn                 func(ctx context.Context) ([]*domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	UpdateFn               func(ctx context.Context, id uint64, fields map[string]any) error
	DeleteFn               func(ctx context.Context, l *domain.Loan) error
	CreateInstallmentsFn   func(ctx context.Context, insts []*domain.Installment) error
	ListInstallmentsFn     func(ctx context.Context, loanID uint64) ([]*domain.Installment, error)
	UpdateInstallmentFn    func(ctx context.Context, id uint64, fields map[string]any) error
	DeleteInstallmentsFn   func(ctx context.Context, loanID uint64) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]*domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Update(ctx context.Context, id uint64, fields map[string]any) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, fields)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, l *domain.Loan) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, l)
	}
	return nil
}

func (m *Repo) CreateInstallments(ctx context.Context, insts []*domain.Installment) error {
	if m.CreateInstallmentsFn != nil {
		return m.CreateInstallmentsFn(ctx, insts)
	}
	return nil
}

func (m *Repo) ListInstallments(ctx context.Context, loanID uint64) ([]*domain.Installment, error) {
	if m.ListInstallmentsFn != nil {
		return m.ListInstallmentsFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) UpdateInstallment(ctx context.Context, id uint64, fields map[string]any) error {
	if m.UpdateInstallmentFn != nil {
		return m.UpdateInstallmentFn(ctx, id, fields)
	}
	return nil
}

func (m *Repo) DeleteInstallments(ctx context.Context, loanID uint64) error {
	if m.DeleteInstallmentsFn != nil {
		return m.DeleteInstallmentsFn(ctx, loanID)
	}
	return nil
}
