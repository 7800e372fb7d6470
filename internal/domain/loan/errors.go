package loan

import "errors"

var (
	ErrNotFound              = errors.New("loan not found")
	ErrNoPendingInstallments = errors.New("no pending installments to apply payment")
	ErrInvalidInstallment    = errors.New("installment missing persisted identifier")
	ErrValidation            = errors.New("invalid loan input")
)
