package http

import (
	"errors"
	"net/http"

	domain "loanbook-backend/internal/domain/loan"
	"loanbook-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type installmentReq struct {
	Number          int     `json:"installment_number" validate:"required,gt=0"`
	DueDate         string  `json:"due_date" validate:"required,dateonly"`
	PrincipalAmount float64 `json:"principal_amount" validate:"gte=0,dec2"`
	InterestAmount  float64 `json:"interest_amount" validate:"gte=0,dec2"`
}

type createLoanReq struct {
	ClientID     string           `json:"client_id"`
	ClientName   string           `json:"client_name" validate:"required"`
	Principal    float64          `json:"principal" validate:"required,gt=0,dec2"`
	InterestRate float64          `json:"interest_rate" validate:"gte=0,lte=100"`
	LoanTerm     int              `json:"loan_term" validate:"gte=0"`
	Frequency    string           `json:"frequency" validate:"omitempty,oneof=monthly biweekly weekly daily"`
	Style        string           `json:"style" validate:"omitempty,oneof=flat amortizing"`
	StartDate    string           `json:"start_date" validate:"required,dateonly"`
	LoanDate     string           `json:"loan_date" validate:"omitempty,dateonly"`
	LoanNumber   string           `json:"loan_number"`
	AmountToPay  float64          `json:"amount_to_pay" validate:"omitempty,gte=0,dec2"`
	Status       string           `json:"status" validate:"omitempty,oneof=pending approved paid cancelled"`
	Cashier      string           `json:"cashier"`
	Installments []installmentReq `json:"installments" validate:"omitempty,dive"`
}

type processPaymentReq struct {
	PaymentAmount float64 `json:"payment_amount" validate:"required,gt=0,dec2"`
	PaymentDate   string  `json:"payment_date" validate:"omitempty,dateonly"`
}

type updateLoanReq struct {
	Status        *string  `json:"status" validate:"omitempty,oneof=pending approved paid cancelled"`
	LateFee       *float64 `json:"late_fee" validate:"omitempty,gte=0,dec2"`
	AmountApplied *float64 `json:"amount_applied" validate:"omitempty,gte=0,dec2"`
	TotalPending  *float64 `json:"total_pending" validate:"omitempty,gte=0,dec2"`
}

type sweepOverdueReq struct {
	LateFeeRate float64 `json:"late_fee_rate" validate:"omitempty,gt=0,lt=1"`
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	in := loan.CreateLoanInput{
		ClientID:     req.ClientID,
		ClientName:   req.ClientName,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		LoanTerm:     req.LoanTerm,
		Frequency:    req.Frequency,
		Style:        req.Style,
		StartDate:    req.StartDate,
		LoanDate:     req.LoanDate,
		LoanNumber:   req.LoanNumber,
		AmountToPay:  req.AmountToPay,
		Status:       req.Status,
		Cashier:      req.Cashier,
	}
	for _, inst := range req.Installments {
		in.Installments = append(in.Installments, loan.InstallmentInput(inst))
	}

	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	var req updateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Update(c.Request().Context(), loan.UpdateLoanInput{
		LoanID:        c.Param("loan_id"),
		Status:        req.Status,
		LateFee:       req.LateFee,
		AmountApplied: req.AmountApplied,
		TotalPending:  req.TotalPending,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ProcessPayment(c echo.Context) error {
	var req processPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	res, err := h.uc.ProcessPayment(c.Request().Context(), loan.ProcessPaymentInput{
		LoanID:        c.Param("loan_id"),
		PaymentAmount: req.PaymentAmount,
		PaymentDate:   req.PaymentDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("loan_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) SweepOverdue(c echo.Context) error {
	var req sweepOverdueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	res, err := h.uc.SweepOverdue(c.Request().Context(), c.Param("loan_id"), req.LateFeeRate)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// writeError translates domain errors into HTTP status codes.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNoPendingInstallments):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "no pending installments"})
	case errors.Is(err, domain.ErrInvalidInstallment):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
