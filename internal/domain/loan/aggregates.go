package loan

import (
	"time"

	"loanbook-backend/pkg/dates"
	"loanbook-backend/pkg/money"
)

// Aggregates is the loan-level view derived from the installment set.
// This derivation is the single source of truth; the fields stored on the
// Loan row are a cache of it.
type Aggregates struct {
	TotalPending  float64
	OverdueAmount float64
	SumLateFees   float64
	AmountApplied float64
}

// IsPaid reports whether the installment is fully covered. The epsilon
// absorbs float rounding from repeated partial payments.
func IsPaid(i *Installment) bool {
	return i.PaidAmount >= i.TotalDue()-money.Epsilon
}

// IsOverdue reports whether the installment fell due strictly before today
// (date-only granularity) and is not already marked paid. An installment
// due today is not overdue.
func IsOverdue(i *Installment, today time.Time) bool {
	if i.DueDate.IsZero() {
		return false
	}
	return dates.Before(i.DueDate, today) && i.Status != InstallmentPaid
}

// ComputeAggregates folds the installment set into loan-level totals.
// Pure: calling it twice on the same set yields identical results.
func ComputeAggregates(installments []*Installment, today time.Time) Aggregates {
	var agg Aggregates
	for _, inst := range installments {
		pending := inst.TotalDue() - inst.PaidAmount
		if pending < 0 {
			pending = 0
		}

		agg.TotalPending += pending
		agg.SumLateFees += inst.LateFee
		agg.AmountApplied += inst.PaidAmount

		if !IsPaid(inst) && IsOverdue(inst, today) {
			agg.OverdueAmount += pending
		}
	}

	agg.TotalPending = money.Round2(agg.TotalPending)
	agg.OverdueAmount = money.Round2(agg.OverdueAmount)
	agg.SumLateFees = money.Round2(agg.SumLateFees)
	agg.AmountApplied = money.Round2(agg.AmountApplied)
	return agg
}
