package loan

import (
	"sort"

	"loanbook-backend/pkg/money"
)

// Distribution records how much of a payment lands on one installment.
type Distribution struct {
	Number        int
	AmountApplied float64
	NewPaidAmount float64
	NewStatus     InstallmentStatus
}

// DistributePayment allocates a cash payment across outstanding installments
// in pure chronological order (oldest installment number first, no overdue
// special-casing). It only ever applies money to scheduled obligations; any
// remainder beyond the total outstanding is left for the caller to account
// for. An empty result means there was nothing to apply.
func DistributePayment(installments []*Installment, paymentAmount float64) []Distribution {
	sorted := make([]*Installment, len(installments))
	copy(sorted, installments)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Number < sorted[b].Number })

	var out []Distribution
	remaining := paymentAmount

	for _, inst := range sorted {
		if remaining <= 0 {
			break
		}
		if IsPaid(inst) {
			continue
		}

		pending := inst.TotalDue() - inst.PaidAmount
		if pending <= 0 {
			continue
		}

		apply := remaining
		if pending < apply {
			apply = pending
		}
		newPaid := inst.PaidAmount + apply

		status := InstallmentPending
		switch {
		case newPaid >= inst.TotalDue()-money.Epsilon:
			status = InstallmentPaid
		case newPaid > 0:
			status = InstallmentPartial
		}

		out = append(out, Distribution{
			Number:        inst.Number,
			AmountApplied: apply,
			NewPaidAmount: newPaid,
			NewStatus:     status,
		})
		remaining -= apply
	}
	return out
}
