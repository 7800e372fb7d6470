package schedule

import (
	"errors"
	"fmt"
	"math"
	"time"

	"loanbook-backend/pkg/dates"

	"github.com/shopspring/decimal"
)

// Frequency is how often installments fall due.
type Frequency string

const (
	Monthly  Frequency = "monthly"
	Biweekly Frequency = "biweekly"
	Weekly   Frequency = "weekly"
	Daily    Frequency = "daily"
)

// Style selects how interest is computed over the term.
type Style string

const (
	// Flat pre-computes interest on the full principal and splits it evenly.
	Flat Style = "flat"
	// Amortizing produces a level payment with a shifting principal/interest split.
	Amortizing Style = "amortizing"
)

var ErrInvalidTerms = errors.New("invalid schedule terms")

func (f Frequency) Valid() bool {
	switch f {
	case Monthly, Biweekly, Weekly, Daily:
		return true
	}
	return false
}

func (f Frequency) PeriodsPerYear() int {
	switch f {
	case Biweekly:
		return 24
	case Weekly:
		return 52
	case Daily:
		return 365
	default:
		return 12
	}
}

// Advance moves start forward by n periods. Biweekly is a calendar
// approximation of +15 days per period, not exactly 14.
func (f Frequency) Advance(start time.Time, n int) time.Time {
	switch f {
	case Biweekly:
		return dates.AddDays(start, n*15)
	case Weekly:
		return dates.AddWeeks(start, n)
	case Daily:
		return dates.AddDays(start, n)
	default:
		return dates.AddMonths(start, n)
	}
}

func (s Style) Valid() bool { return s == Flat || s == Amortizing }

// Entry is one installment produced by Generate. Amounts are already
// rounded to 2 decimals; the split is fixed once the schedule is persisted.
type Entry struct {
	Number    int
	DueDate   time.Time
	Principal float64
	Interest  float64
}

// Generate builds the installment schedule for a loan. Installment i falls
// due i periods after start; nothing is due on the start date itself.
// Each entry's amounts are rounded to 2 decimals individually so persisting
// and re-reading the schedule is idempotent.
func Generate(principal, annualRatePct float64, term int, freq Frequency, style Style, start time.Time) ([]Entry, error) {
	if principal <= 0 {
		return nil, fmt.Errorf("%w: principal must be positive", ErrInvalidTerms)
	}
	if annualRatePct < 0 || annualRatePct > 100 {
		return nil, fmt.Errorf("%w: annual rate must be between 0 and 100", ErrInvalidTerms)
	}
	if term <= 0 {
		return nil, fmt.Errorf("%w: term must be at least 1", ErrInvalidTerms)
	}
	if !freq.Valid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidTerms, freq)
	}
	if !style.Valid() {
		return nil, fmt.Errorf("%w: unknown style %q", ErrInvalidTerms, style)
	}

	ratePerPeriod := annualRatePct / 100 / float64(freq.PeriodsPerYear())
	if style == Amortizing {
		return generateAmortizing(principal, ratePerPeriod, term, freq, start), nil
	}
	return generateFlat(principal, ratePerPeriod, term, freq, start), nil
}

// generateFlat: total interest = principal * ratePerPeriod * term, with both
// principal and interest split evenly across installments.
func generateFlat(principal, ratePerPeriod float64, term int, freq Frequency, start time.Time) []Entry {
	p := decimal.NewFromFloat(principal)
	n := decimal.NewFromInt(int64(term))
	totalInterest := p.Mul(decimal.NewFromFloat(ratePerPeriod)).Mul(n)

	perPrincipal := p.Div(n).Round(2).InexactFloat64()
	perInterest := totalInterest.Div(n).Round(2).InexactFloat64()

	entries := make([]Entry, 0, term)
	for i := 1; i <= term; i++ {
		entries = append(entries, Entry{
			Number:    i,
			DueDate:   freq.Advance(start, i),
			Principal: perPrincipal,
			Interest:  perInterest,
		})
	}
	return entries
}

// generateAmortizing computes the level annuity payment and walks the balance
// down period by period. The final installment closes the remaining balance
// exactly, absorbing the rounding drift accumulated along the way.
func generateAmortizing(principal, ratePerPeriod float64, term int, freq Frequency, start time.Time) []Entry {
	p := decimal.NewFromFloat(principal)
	entries := make([]Entry, 0, term)

	if ratePerPeriod == 0 {
		// No annuity formula at rate zero: even principal split, last
		// installment takes the remainder so the sum closes exactly.
		per := p.Div(decimal.NewFromInt(int64(term))).Round(2)
		for i := 1; i <= term; i++ {
			amount := per
			if i == term {
				amount = p.Sub(per.Mul(decimal.NewFromInt(int64(term - 1)))).Round(2)
			}
			entries = append(entries, Entry{
				Number:    i,
				DueDate:   freq.Advance(start, i),
				Principal: amount.InexactFloat64(),
			})
		}
		return entries
	}

	pow := math.Pow(1+ratePerPeriod, float64(term))
	payment := decimal.NewFromFloat(principal * ratePerPeriod * pow / (pow - 1))
	rate := decimal.NewFromFloat(ratePerPeriod)

	remaining := p
	for i := 1; i <= term; i++ {
		interest := remaining.Mul(rate).Round(2)
		principalPart := payment.Sub(remaining.Mul(rate)).Round(2)
		if i == term {
			principalPart = remaining.Round(2)
			interest = payment.Sub(principalPart).Round(2)
		}
		remaining = remaining.Sub(principalPart)

		entries = append(entries, Entry{
			Number:    i,
			DueDate:   freq.Advance(start, i),
			Principal: principalPart.InexactFloat64(),
			Interest:  interest.InexactFloat64(),
		})
	}
	return entries
}

// TotalToPay sums principal + interest over the schedule, rounded to 2 decimals.
func TotalToPay(entries []Entry) float64 {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(decimal.NewFromFloat(e.Principal)).Add(decimal.NewFromFloat(e.Interest))
	}
	return total.Round(2).InexactFloat64()
}
