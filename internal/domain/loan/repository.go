package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row until the surrounding
	// transaction ends; payment processing depends on it.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	List(ctx context.Context) ([]*Loan, error)
	Save(ctx context.Context, l *Loan) error
	Update(ctx context.Context, id uint64, fields map[string]any) error
	Delete(ctx context.Context, l *Loan) error

	CreateInstallments(ctx context.Context, batch []*Installment) error
	ListInstallments(ctx context.Context, loanID uint64) ([]*Installment, error)
	UpdateInstallment(ctx context.Context, id uint64, fields map[string]any) error
	DeleteInstallments(ctx context.Context, loanID uint64) error
}
