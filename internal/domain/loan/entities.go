package loan

import (
	"time"

	"loanbook-backend/pkg/schedule"

	"gorm.io/gorm"
)

// Status is the loan lifecycle state. Paid is derived, never set directly:
// it holds exactly when the pending total reaches zero.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// InstallmentStatus tracks a single installment. Overdue is only set by the
// late-fee sweep; payment distribution moves between pending/partial/paid.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPartial InstallmentStatus = "partial"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	LoanNumber string `gorm:"size:64;uniqueIndex:ux_loans_loan_number" json:"loan_number"`
	ClientID   string `gorm:"size:64;index:idx_loans_client" json:"client_id"`
	ClientName string `gorm:"size:191" json:"client_name"`

	// Core terms, immutable after creation.
	Principal    float64            `gorm:"type:decimal(18,2)" json:"principal"`
	InterestRate float64            `gorm:"type:decimal(6,2)" json:"interest_rate"`
	LoanTerm     int                `gorm:"column:loan_term" json:"loan_term"`
	Frequency    schedule.Frequency `gorm:"type:enum('monthly','biweekly','weekly','daily');default:'monthly'" json:"frequency"`
	Style        schedule.Style     `gorm:"type:enum('flat','amortizing');default:'flat'" json:"style"`
	LoanDate     time.Time          `gorm:"type:date" json:"loan_date"`
	StartDate    time.Time          `gorm:"type:date" json:"start_date"`
	DueDate      *time.Time         `gorm:"type:date" json:"due_date,omitempty"`

	// Aggregates are a cache of ComputeAggregates over the installments,
	// rewritten after every installment mutation. Never trusted as an
	// interim source of truth.
	AmountToPay   float64 `gorm:"type:decimal(18,2)" json:"amount_to_pay"`
	AmountApplied float64 `gorm:"type:decimal(18,2)" json:"amount_applied"`
	OverdueAmount float64 `gorm:"type:decimal(18,2)" json:"overdue_amount"`
	LateFee       float64 `gorm:"type:decimal(18,2)" json:"late_fee"`
	TotalPending  float64 `gorm:"type:decimal(18,2)" json:"total_pending"`

	Status  Status `gorm:"type:enum('pending','approved','paid','cancelled');default:'pending'" json:"status"`
	Cashier string `gorm:"size:64" json:"cashier"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

type Installment struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID uint64 `gorm:"not null;index:idx_installments_loan" json:"-"`
	Number int    `gorm:"column:installment_number;not null" json:"installment_number"`

	// Schedule fields, fixed at generation time.
	DueDate         time.Time `gorm:"type:date" json:"due_date"`
	PrincipalAmount float64   `gorm:"type:decimal(18,2)" json:"principal_amount"`
	InterestAmount  float64   `gorm:"type:decimal(18,2)" json:"interest_amount"`

	// Ledger fields. PaidAmount and LateFee only ever grow.
	PaidAmount  float64           `gorm:"type:decimal(18,2)" json:"paid_amount"`
	LateFee     float64           `gorm:"type:decimal(18,2)" json:"late_fee"`
	Status      InstallmentStatus `gorm:"type:enum('pending','partial','paid','overdue');default:'pending'" json:"status"`
	PaymentDate *time.Time        `gorm:"type:date" json:"payment_date,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Installment) TableName() string { return "installments" }

// TotalDue is everything owed on this installment, assessed late fee included.
func (i *Installment) TotalDue() float64 {
	return i.PrincipalAmount + i.InterestAmount + i.LateFee
}
