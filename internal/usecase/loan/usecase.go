package loan

import (
	"context"
	"errors"
	"fmt"

	domain "loanbook-backend/internal/domain/loan"
	"loanbook-backend/internal/domain/uow"
	"loanbook-backend/pkg/dates"
	"loanbook-backend/pkg/id"
	"loanbook-backend/pkg/money"
	"loanbook-backend/pkg/schedule"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultLateFeeRate is the late fee charged per overdue month, as a
// fraction of the installment's principal+interest.
const DefaultLateFeeRate = 0.05

// CapitalLedger mirrors loan lifecycle events onto the pooled capital
// balance. Implementations are best-effort and must not fail the caller.
type CapitalLedger interface {
	OnDisbursement(ctx context.Context, principal float64)
	OnPaymentReceived(ctx context.Context, cash float64) (total float64, ok bool)
}

type Usecase struct {
	repo    domain.Repository
	uow     uow.UnitOfWork
	capital CapitalLedger
	log     *zap.Logger
}

// NewUsecase wires the lifecycle service. capital may be nil when the pool
// is not tracked (tests, tooling).
func NewUsecase(r domain.Repository, tx uow.UnitOfWork, capital CapitalLedger, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, uow: tx, capital: capital, log: log}
}

// Create validates the terms, generates the installment schedule (unless a
// trusted caller supplied one), and persists header plus installments in a
// single transaction so no orphaned loan header can be left behind.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.Principal <= 0 {
		return nil, fmt.Errorf("%w: principal must be positive", domain.ErrValidation)
	}
	if in.InterestRate < 0 || in.InterestRate > 100 {
		return nil, fmt.Errorf("%w: interest rate must be between 0 and 100", domain.ErrValidation)
	}
	if in.StartDate == "" {
		return nil, fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}
	start, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}

	freq := schedule.Monthly
	if in.Frequency != "" {
		freq = schedule.Frequency(in.Frequency)
		if !freq.Valid() {
			return nil, fmt.Errorf("%w: unknown frequency %q", domain.ErrValidation, in.Frequency)
		}
	}
	style := schedule.Flat
	if in.Style != "" {
		style = schedule.Style(in.Style)
		if !style.Valid() {
			return nil, fmt.Errorf("%w: unknown style %q", domain.ErrValidation, in.Style)
		}
	}
	status := domain.StatusPending
	if in.Status != "" {
		status = domain.Status(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, in.Status)
		}
	}

	var entries []schedule.Entry
	if len(in.Installments) > 0 {
		// Pre-computed upstream; persist as-is.
		entries = make([]schedule.Entry, 0, len(in.Installments))
		for _, inst := range in.Installments {
			due, err := parseDate(inst.DueDate)
			if err != nil {
				return nil, err
			}
			if inst.Number <= 0 || inst.PrincipalAmount < 0 || inst.InterestAmount < 0 {
				return nil, fmt.Errorf("%w: bad installment #%d", domain.ErrValidation, inst.Number)
			}
			entries = append(entries, schedule.Entry{
				Number:    inst.Number,
				DueDate:   due,
				Principal: inst.PrincipalAmount,
				Interest:  inst.InterestAmount,
			})
		}
	} else {
		if in.LoanTerm <= 0 {
			return nil, fmt.Errorf("%w: loan term or pre-computed installments required", domain.ErrValidation)
		}
		entries, err = schedule.Generate(in.Principal, in.InterestRate, in.LoanTerm, freq, style, start)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}

	amountToPay := in.AmountToPay
	if amountToPay <= 0 {
		amountToPay = schedule.TotalToPay(entries)
	}
	loanNumber := in.LoanNumber
	if loanNumber == "" {
		loanNumber = id.NewLoanNumber()
	}
	loanDate := dates.Today()
	if in.LoanDate != "" {
		if loanDate, err = parseDate(in.LoanDate); err != nil {
			return nil, err
		}
	}
	term := in.LoanTerm
	if term == 0 {
		term = len(entries)
	}
	lastDue := entries[len(entries)-1].DueDate

	l := &domain.Loan{
		LoanID:       id.NewID32(),
		LoanNumber:   loanNumber,
		ClientID:     in.ClientID,
		ClientName:   in.ClientName,
		Principal:    in.Principal,
		InterestRate: in.InterestRate,
		LoanTerm:     term,
		Frequency:    freq,
		Style:        style,
		LoanDate:     loanDate,
		StartDate:    start,
		DueDate:      &lastDue,
		AmountToPay:  amountToPay,
		TotalPending: amountToPay,
		Status:       status,
		Cashier:      in.Cashier,
	}

	insts := make([]*domain.Installment, len(entries))
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		for i, e := range entries {
			insts[i] = &domain.Installment{
				LoanID:          l.ID,
				Number:          e.Number,
				DueDate:         e.DueDate,
				PrincipalAmount: e.Principal,
				InterestAmount:  e.Interest,
				Status:          domain.InstallmentPending,
			}
		}
		return r.Loans.CreateInstallments(ctx, insts)
	})
	if err != nil {
		return nil, err
	}

	if u.capital != nil {
		u.capital.OnDisbursement(ctx, l.Principal)
	}

	u.log.Info("loan created",
		zap.String("loan_id", l.LoanID),
		zap.String("loan_number", l.LoanNumber),
		zap.Float64("principal", l.Principal),
		zap.Int("installments", len(insts)))
	return u.toDTOWithAggregates(l, insts), nil
}

// Get returns one loan with aggregates recomputed from its installments.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	insts, err := u.repo.ListInstallments(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return u.toDTOWithAggregates(l, insts), nil
}

// List returns all loans, each with aggregates recomputed on read.
func (u *Usecase) List(ctx context.Context) ([]*LoanDTO, error) {
	loans, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*LoanDTO, 0, len(loans))
	for _, l := range loans {
		insts, err := u.repo.ListInstallments(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, u.toDTOWithAggregates(l, insts))
	}
	return out, nil
}

// ProcessPayment distributes a cash payment across the loan's outstanding
// installments, oldest first, then refreshes the stored aggregates from the
// updated installment view. The whole operation runs with the loan row
// locked so concurrent payments cannot lose updates.
func (u *Usecase) ProcessPayment(ctx context.Context, in ProcessPaymentInput) (*PaymentResult, error) {
	if in.PaymentAmount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrValidation)
	}
	payDate := dates.Today()
	if in.PaymentDate != "" {
		var err error
		if payDate, err = parseDate(in.PaymentDate); err != nil {
			return nil, err
		}
	}

	var (
		l       *domain.Loan
		insts   []*domain.Installment
		applied float64
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, locked *domain.Loan) error {
		l = locked
		var err error
		insts, err = r.Loans.ListInstallments(ctx, l.ID)
		if err != nil {
			return err
		}

		dists := domain.DistributePayment(insts, in.PaymentAmount)
		if len(dists) == 0 {
			return domain.ErrNoPendingInstallments
		}

		byNumber := make(map[int]*domain.Installment, len(insts))
		for _, inst := range insts {
			byNumber[inst.Number] = inst
		}

		for _, d := range dists {
			inst := byNumber[d.Number]
			if inst == nil || inst.ID == 0 {
				return fmt.Errorf("%w: installment #%d", domain.ErrInvalidInstallment, d.Number)
			}
			fields := map[string]any{
				"paid_amount": d.NewPaidAmount,
				"status":      d.NewStatus,
			}
			if d.NewStatus == domain.InstallmentPaid {
				fields["payment_date"] = payDate
			} else {
				fields["payment_date"] = nil
			}
			if err := r.Loans.UpdateInstallment(ctx, inst.ID, fields); err != nil {
				return err
			}

			inst.PaidAmount = d.NewPaidAmount
			inst.Status = d.NewStatus
			if d.NewStatus == domain.InstallmentPaid {
				pd := payDate
				inst.PaymentDate = &pd
			} else {
				inst.PaymentDate = nil
			}
			applied += d.AmountApplied
		}

		agg := domain.ComputeAggregates(insts, dates.Today())
		status := domain.StatusApproved
		if agg.TotalPending == 0 {
			status = domain.StatusPaid
		}
		if err := r.Loans.Update(ctx, l.ID, map[string]any{
			"amount_applied": agg.AmountApplied,
			"total_pending":  agg.TotalPending,
			"overdue_amount": agg.OverdueAmount,
			"late_fee":       agg.SumLateFees,
			"status":         status,
		}); err != nil {
			return err
		}

		l.AmountApplied = agg.AmountApplied
		l.TotalPending = agg.TotalPending
		l.OverdueAmount = agg.OverdueAmount
		l.LateFee = agg.SumLateFees
		l.Status = status
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	res := &PaymentResult{
		Loan:         u.toDTO(l, insts),
		TotalPending: l.TotalPending,
		Change:       money.Round2(in.PaymentAmount - applied),
	}
	if u.capital != nil {
		if total, ok := u.capital.OnPaymentReceived(ctx, in.PaymentAmount); ok {
			res.CapitalTotal = &total
		}
	}

	u.log.Info("payment processed",
		zap.String("loan_id", in.LoanID),
		zap.Float64("amount", in.PaymentAmount),
		zap.Float64("applied", applied),
		zap.Float64("total_pending", l.TotalPending))
	return res, nil
}

// Update patches header fields directly — an escape hatch for manual
// corrections. Installments are untouched, so the returned aggregates are
// re-read from the header rather than recomputed.
func (u *Usecase) Update(ctx context.Context, in UpdateLoanInput) (*LoanDTO, error) {
	fields := map[string]any{}
	if in.Status != nil {
		s := domain.Status(*in.Status)
		if !s.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *in.Status)
		}
		fields["status"] = s
	}
	if in.LateFee != nil {
		fields["late_fee"] = *in.LateFee
	}
	if in.AmountApplied != nil {
		fields["amount_applied"] = *in.AmountApplied
	}
	if in.TotalPending != nil {
		fields["total_pending"] = *in.TotalPending
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	var (
		l     *domain.Loan
		insts []*domain.Installment
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, locked *domain.Loan) error {
		if err := r.Loans.Update(ctx, locked.ID, fields); err != nil {
			return err
		}
		fresh, err := r.Loans.GetByLoanID(ctx, in.LoanID)
		if err != nil {
			return err
		}
		l = fresh
		insts, err = r.Loans.ListInstallments(ctx, l.ID)
		return err
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.log.Info("loan updated", zap.String("loan_id", in.LoanID))
	return u.toDTO(l, insts), nil
}

// Delete removes the loan's installments first, then the header, all in one
// transaction. Irreversible.
func (u *Usecase) Delete(ctx context.Context, loanID string) error {
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if err := r.Loans.DeleteInstallments(ctx, l.ID); err != nil {
			return err
		}
		return r.Loans.Delete(ctx, l)
	})
	if err != nil {
		return mapNotFound(err)
	}
	u.log.Info("loan deleted", zap.String("loan_id", loanID))
	return nil
}

// SweepOverdue assesses late fees on every overdue unpaid installment:
// fee = (principal + interest) * rate * ceil(daysOverdue/30). A fee is only
// written when it exceeds the one already stored, so re-running the sweep is
// safe and fees never shrink. Paid installments are never touched.
func (u *Usecase) SweepOverdue(ctx context.Context, loanID string, lateFeeRate float64) (*SweepResult, error) {
	if lateFeeRate <= 0 {
		lateFeeRate = DefaultLateFeeRate
	}
	today := dates.Today()
	res := &SweepResult{LoanID: loanID}

	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		insts, err := r.Loans.ListInstallments(ctx, l.ID)
		if err != nil {
			return err
		}

		for _, inst := range insts {
			if domain.IsPaid(inst) || !domain.IsOverdue(inst, today) {
				continue
			}
			daysOverdue := dates.DaysBetween(inst.DueDate, today)
			monthsOverdue := (daysOverdue + 29) / 30
			fee := money.Round2((inst.PrincipalAmount + inst.InterestAmount) * lateFeeRate * float64(monthsOverdue))
			if fee <= inst.LateFee {
				continue
			}
			if inst.ID == 0 {
				return fmt.Errorf("%w: installment #%d", domain.ErrInvalidInstallment, inst.Number)
			}
			if err := r.Loans.UpdateInstallment(ctx, inst.ID, map[string]any{
				"late_fee": fee,
				"status":   domain.InstallmentOverdue,
			}); err != nil {
				return err
			}
			inst.LateFee = fee
			inst.Status = domain.InstallmentOverdue
			res.InstallmentsSwept++
		}

		agg := domain.ComputeAggregates(insts, today)
		res.AccruedLateFee = agg.SumLateFees
		res.OverdueAmount = agg.OverdueAmount
		res.TotalPendingAmount = agg.TotalPending

		if res.InstallmentsSwept == 0 {
			return nil
		}
		return r.Loans.Update(ctx, l.ID, map[string]any{
			"amount_applied": agg.AmountApplied,
			"total_pending":  agg.TotalPending,
			"overdue_amount": agg.OverdueAmount,
			"late_fee":       agg.SumLateFees,
		})
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	if res.InstallmentsSwept > 0 {
		u.log.Info("overdue sweep applied",
			zap.String("loan_id", loanID),
			zap.Int("installments", res.InstallmentsSwept),
			zap.Float64("late_fee", res.AccruedLateFee))
	}
	return res, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// toDTO maps the loan as stored; aggregate fields come straight from the
// header cache.
func (u *Usecase) toDTO(l *domain.Loan, insts []*domain.Installment) *LoanDTO {
	dto := &LoanDTO{
		LoanID:        l.LoanID,
		LoanNumber:    l.LoanNumber,
		ClientID:      l.ClientID,
		ClientName:    l.ClientName,
		Principal:     l.Principal,
		InterestRate:  l.InterestRate,
		LoanTerm:      l.LoanTerm,
		Frequency:     string(l.Frequency),
		Style:         string(l.Style),
		LoanDate:      formatDate(l.LoanDate),
		StartDate:     formatDate(l.StartDate),
		DueDate:       formatDatePtr(l.DueDate),
		AmountToPay:   l.AmountToPay,
		AmountApplied: l.AmountApplied,
		OverdueAmount: l.OverdueAmount,
		LateFee:       l.LateFee,
		TotalPending:  l.TotalPending,
		Status:        string(l.Status),
		Cashier:       l.Cashier,
		CreatedAt:     l.CreatedAt,
		Installments:  make([]InstallmentDTO, 0, len(insts)),
	}
	for _, inst := range insts {
		dto.Installments = append(dto.Installments, InstallmentDTO{
			Number:          inst.Number,
			DueDate:         formatDate(inst.DueDate),
			PrincipalAmount: inst.PrincipalAmount,
			InterestAmount:  inst.InterestAmount,
			PaidAmount:      inst.PaidAmount,
			LateFee:         inst.LateFee,
			Status:          string(inst.Status),
			PaymentDate:     formatDatePtr(inst.PaymentDate),
		})
	}
	return dto
}

// toDTOWithAggregates overrides the cached header aggregates with values
// recomputed from the installment set, the single source of truth.
func (u *Usecase) toDTOWithAggregates(l *domain.Loan, insts []*domain.Installment) *LoanDTO {
	dto := u.toDTO(l, insts)
	agg := domain.ComputeAggregates(insts, dates.Today())
	dto.TotalPending = agg.TotalPending
	dto.OverdueAmount = agg.OverdueAmount
	dto.LateFee = agg.SumLateFees
	dto.AmountApplied = agg.AmountApplied
	return dto
}
