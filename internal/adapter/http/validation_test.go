package http

import (
	"errors"
	"strings"
	"testing"
)

var errTest = errors.New("boom")

func containsFieldMsg(details []FieldError, field, msgPart string) bool {
	for _, d := range details {
		if d.Field == field && strings.Contains(d.Message, msgPart) {
			return true
		}
	}
	return false
}

type sampleReq struct {
	LoanID string  `validate:"required,hex32"`
	Amount float64 `validate:"required,gt=0,dec2"`
	Date   string  `validate:"required,dateonly"`
	Rate   float64 `validate:"gte=0,lte=100"`
}

func validSample() sampleReq {
	return sampleReq{
		LoanID: strings.Repeat("a", 32),
		Amount: 150.25,
		Date:   "2024-01-15",
		Rate:   12,
	}
}

func TestValidator_AcceptsValidInput(t *testing.T) {
	cv := NewValidator()
	if err := cv.Validate(validSample()); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestValidator_Hex32(t *testing.T) {
	cv := NewValidator()

	bad := []string{
		"NOT-HEX",
		strings.Repeat("A", 32), // uppercase
		strings.Repeat("a", 31), // too short
		strings.Repeat("z", 32), // non-hex
	}
	for _, id := range bad {
		s := validSample()
		s.LoanID = id
		err := cv.Validate(s)
		if err == nil {
			t.Fatalf("expected error for loan id %q", id)
		}
		if !containsFieldMsg(ToFieldErrors(err), "LoanID", "32-char lowercase hex") {
			t.Fatalf("missing hex32 detail for %q: %+v", id, ToFieldErrors(err))
		}
	}
}

func TestValidator_Dec2(t *testing.T) {
	cv := NewValidator()

	s := validSample()
	s.Amount = 150.255
	err := cv.Validate(s)
	if err == nil {
		t.Fatal("expected dec2 error")
	}
	if !containsFieldMsg(ToFieldErrors(err), "Amount", "at most 2 decimal places") {
		t.Fatalf("missing dec2 detail: %+v", ToFieldErrors(err))
	}

	s.Amount = 150.25
	if err := cv.Validate(s); err != nil {
		t.Fatalf("2 decimals must pass: %v", err)
	}
}

func TestValidator_DateOnly(t *testing.T) {
	cv := NewValidator()

	bad := []string{"15-01-2024", "2024/01/15", "2024-01-15T10:00:00Z", "yesterday"}
	for _, d := range bad {
		s := validSample()
		s.Date = d
		err := cv.Validate(s)
		if err == nil {
			t.Fatalf("expected error for date %q", d)
		}
		if !containsFieldMsg(ToFieldErrors(err), "Date", "YYYY-MM-DD") {
			t.Fatalf("missing dateonly detail for %q: %+v", d, ToFieldErrors(err))
		}
	}
}

func TestValidator_RangeMessages(t *testing.T) {
	cv := NewValidator()

	s := validSample()
	s.Rate = 120
	err := cv.Validate(s)
	if err == nil {
		t.Fatal("expected lte error")
	}
	if !containsFieldMsg(ToFieldErrors(err), "Rate", "less than or equal to 100") {
		t.Fatalf("missing lte detail: %+v", ToFieldErrors(err))
	}
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	got := ToFieldErrors(errTest)
	if len(got) != 1 || got[0].Field != "_" {
		t.Fatalf("unexpected mapping: %+v", got)
	}
}
