package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createLoanForm struct {
	BorrowerName   string   `json:"borrowerName" validate:"required"`
	LoanAmount     *float64 `json:"loanAmount" validate:"required,gt=0"`
	InterestRate   *float64 `json:"interestRate" validate:"required,gte=0,lte=100"`
	LoanTerm       *int     `json:"loanTerm" validate:"required,gte=1"`
	PaymentDueDate string   `json:"paymentDueDate" validate:"required,isodate"`
}

type loginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func TestCheck_AllFailingFieldsInDeclarationOrder(t *testing.T) {
	engine := NewEngine()

	fields := engine.Check(&createLoanForm{})

	require.Len(t, fields, 5)
	assert.Equal(t, "borrowerName", fields[0].Field)
	assert.Equal(t, "Borrower name is required", fields[0].Message)
	assert.Equal(t, "loanAmount", fields[1].Field)
	assert.Equal(t, "Loan amount must be a number", fields[1].Message)
	assert.Equal(t, "interestRate", fields[2].Field)
	assert.Equal(t, "Interest rate must be between 0 and 100", fields[2].Message)
	assert.Equal(t, "loanTerm", fields[3].Field)
	assert.Equal(t, "Loan term must be a positive integer", fields[3].Message)
	assert.Equal(t, "paymentDueDate", fields[4].Field)
	assert.Equal(t, "Payment due date must be a valid date", fields[4].Message)
}

func TestCheck_ValidInputPasses(t *testing.T) {
	engine := NewEngine()

	amount := 10000.0
	rate := 5.0
	term := 12
	fields := engine.Check(&createLoanForm{
		BorrowerName:   "John Doe",
		LoanAmount:     &amount,
		InterestRate:   &rate,
		LoanTerm:       &term,
		PaymentDueDate: "2026-10-01",
	})

	assert.Nil(t, fields)
}

func TestCheck_RangeViolations(t *testing.T) {
	engine := NewEngine()

	amount := 10000.0
	rate := 150.0
	term := 0
	fields := engine.Check(&createLoanForm{
		BorrowerName:   "John Doe",
		LoanAmount:     &amount,
		InterestRate:   &rate,
		LoanTerm:       &term,
		PaymentDueDate: "2026-10-01",
	})

	require.Len(t, fields, 2)
	assert.Equal(t, "interestRate", fields[0].Field)
	assert.Equal(t, "Interest rate must be between 0 and 100", fields[0].Message)
	assert.Equal(t, "loanTerm", fields[1].Field)
	assert.Equal(t, "Loan term must be a positive integer", fields[1].Message)
}

func TestCheck_ZeroInterestRateIsValid(t *testing.T) {
	engine := NewEngine()

	amount := 10000.0
	rate := 0.0
	term := 12
	fields := engine.Check(&createLoanForm{
		BorrowerName:   "John Doe",
		LoanAmount:     &amount,
		InterestRate:   &rate,
		LoanTerm:       &term,
		PaymentDueDate: "2026-10-01",
	})

	// A provided zero is a value, not an absence.
	assert.Nil(t, fields)
}

func TestCheck_DateFormats(t *testing.T) {
	engine := NewEngine()

	amount := 10000.0
	rate := 5.0
	term := 12
	base := createLoanForm{
		BorrowerName: "John Doe",
		LoanAmount:   &amount,
		InterestRate: &rate,
		LoanTerm:     &term,
	}

	for _, valid := range []string{"2026-10-01", "2026-10-01T00:00:00Z", "2026-10-01T12:30:00+07:00"} {
		form := base
		form.PaymentDueDate = valid
		assert.Nil(t, engine.Check(&form), "expected %q to be accepted", valid)
	}

	for _, invalid := range []string{"01/10/2026", "October 1, 2026", "2026-13-40"} {
		form := base
		form.PaymentDueDate = invalid
		fields := engine.Check(&form)
		require.Len(t, fields, 1, "expected %q to be rejected", invalid)
		assert.Equal(t, "Payment due date must be a valid date", fields[0].Message)
	}
}

func TestCheck_RequiredMessagesPerEndpoint(t *testing.T) {
	engine := NewEngine()

	fields := engine.Check(&loginForm{})

	require.Len(t, fields, 2)
	assert.Equal(t, "Username is required", fields[0].Message)
	assert.Equal(t, "Password is required", fields[1].Message)
}

func TestTypeError_MapsJSONTypeMismatch(t *testing.T) {
	var form createLoanForm
	err := json.Unmarshal([]byte(`{"loanAmount": "invalid"}`), &form)
	require.Error(t, err)

	fe, ok := TypeError(err)
	require.True(t, ok)
	assert.Equal(t, "loanAmount", fe.Field)
	assert.Equal(t, "Loan amount must be a number", fe.Message)
}

func TestTypeError_OtherErrorsPassThrough(t *testing.T) {
	var form createLoanForm
	err := json.Unmarshal([]byte(`{`), &form)
	require.Error(t, err)

	_, ok := TypeError(err)
	assert.False(t, ok)
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("a3bb189e-8bf9-3888-9912-ace4e6543002"))
	assert.False(t, IsValidID("123"))
	assert.False(t, IsValidID("not-a-uuid"))
	assert.False(t, IsValidID(""))
}
