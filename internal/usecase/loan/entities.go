package loan

import (
	"fmt"
	"time"

	domain "loanbook-backend/internal/domain/loan"
)

// Wire dates are plain YYYY-MM-DD strings; time-of-day never crosses this
// boundary.
const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", domain.ErrValidation, s)
	}
	return t, nil
}

func formatDate(t time.Time) string { return t.Format(dateLayout) }

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// InstallmentInput is a pre-computed installment supplied by a trusted
// caller, persisted as-is instead of generating a schedule.
type InstallmentInput struct {
	Number          int     `json:"installment_number"`
	DueDate         string  `json:"due_date"`
	PrincipalAmount float64 `json:"principal_amount"`
	InterestAmount  float64 `json:"interest_amount"`
}

type CreateLoanInput struct {
	ClientID     string             `json:"client_id"`
	ClientName   string             `json:"client_name"`
	Principal    float64            `json:"principal"`
	InterestRate float64            `json:"interest_rate"`
	LoanTerm     int                `json:"loan_term"`
	Frequency    string             `json:"frequency"`
	Style        string             `json:"style"`
	StartDate    string             `json:"start_date"`
	LoanDate     string             `json:"loan_date"`
	LoanNumber   string             `json:"loan_number"`
	AmountToPay  float64            `json:"amount_to_pay"`
	Status       string             `json:"status"`
	Cashier      string             `json:"cashier"`
	Installments []InstallmentInput `json:"installments"`
}

type ProcessPaymentInput struct {
	LoanID        string  `json:"loan_id"`
	PaymentAmount float64 `json:"payment_amount"`
	PaymentDate   string  `json:"payment_date"`
}

// UpdateLoanInput is a partial header patch; nil fields are left untouched.
// It never reaches into installments.
type UpdateLoanInput struct {
	LoanID        string   `json:"loan_id"`
	Status        *string  `json:"status"`
	LateFee       *float64 `json:"late_fee"`
	AmountApplied *float64 `json:"amount_applied"`
	TotalPending  *float64 `json:"total_pending"`
}

type InstallmentDTO struct {
	Number          int     `json:"installment_number"`
	DueDate         string  `json:"due_date"`
	PrincipalAmount float64 `json:"principal_amount"`
	InterestAmount  float64 `json:"interest_amount"`
	PaidAmount      float64 `json:"paid_amount"`
	LateFee         float64 `json:"late_fee"`
	Status          string  `json:"status"`
	PaymentDate     *string `json:"payment_date,omitempty"`
}

type LoanDTO struct {
	LoanID        string           `json:"loan_id"`
	LoanNumber    string           `json:"loan_number"`
	ClientID      string           `json:"client_id"`
	ClientName    string           `json:"client_name"`
	Principal     float64          `json:"principal"`
	InterestRate  float64          `json:"interest_rate"`
	LoanTerm      int              `json:"loan_term"`
	Frequency     string           `json:"frequency"`
	Style         string           `json:"style"`
	LoanDate      string           `json:"loan_date"`
	StartDate     string           `json:"start_date"`
	DueDate       *string          `json:"due_date,omitempty"`
	AmountToPay   float64          `json:"amount_to_pay"`
	AmountApplied float64          `json:"amount_applied"`
	OverdueAmount float64          `json:"overdue_amount"`
	LateFee       float64          `json:"late_fee"`
	TotalPending  float64          `json:"total_pending"`
	Status        string           `json:"status"`
	Cashier       string           `json:"cashier"`
	CreatedAt     time.Time        `json:"created_at"`
	Installments  []InstallmentDTO `json:"installments"`
}

// PaymentResult is what a processed payment returns to the caller. Change is
// the unapplied remainder when the payment exceeded the total outstanding;
// CapitalTotal is only set when the advisory capital update went through.
type PaymentResult struct {
	Loan         *LoanDTO `json:"loan"`
	TotalPending float64  `json:"total_pending"`
	Change       float64  `json:"change"`
	CapitalTotal *float64 `json:"capital_total,omitempty"`
}

// SweepResult reports one overdue sweep run.
type SweepResult struct {
	LoanID             string  `json:"loan_id"`
	InstallmentsSwept  int     `json:"installments_swept"`
	AccruedLateFee     float64 `json:"accrued_late_fee"`
	OverdueAmount      float64 `json:"overdue_amount"`
	TotalPendingAmount float64 `json:"total_pending"`
}
