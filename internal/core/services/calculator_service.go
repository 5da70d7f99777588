package services

import (
	"math"

	"github.com/shopspring/decimal"
)

// CalculatorService computes amortized payment figures. It is pure: no
// persistence and no ownership beyond the caller being authenticated.
type CalculatorService struct{}

// NewCalculatorService creates a new calculator service
func NewCalculatorService() *CalculatorService {
	return &CalculatorService{}
}

// CalculationResult carries the payment figures as fixed-point strings so
// no float display artifacts reach the client.
type CalculationResult struct {
	MonthlyPayment string `json:"monthlyPayment"`
	TotalRepayment string `json:"totalRepayment"`
}

// Calculate returns the monthly payment and total repayment for a loan of
// amount P at interestRate percent per annum over loanTerm months, both
// rounded to 2 decimal places. The total is the rounded monthly payment
// times the term, so monthlyPayment * loanTerm always equals it exactly.
func (s *CalculatorService) Calculate(loanAmount, interestRate float64, loanTerm int) *CalculationResult {
	monthlyRate := interestRate / 100 / 12
	term := decimal.NewFromInt(int64(loanTerm))

	var monthly decimal.Decimal
	if monthlyRate == 0 {
		// Zero interest degenerates the amortization formula to a
		// division by zero; the payment is just principal over term.
		monthly = decimal.NewFromFloat(loanAmount).Div(term).Round(2)
	} else {
		payment := loanAmount * monthlyRate / (1 - math.Pow(1+monthlyRate, float64(-loanTerm)))
		monthly = decimal.NewFromFloat(payment).Round(2)
	}

	total := monthly.Mul(term)

	return &CalculationResult{
		MonthlyPayment: monthly.StringFixed(2),
		TotalRepayment: total.StringFixed(2),
	}
}
