package handlers

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"loandesk/internal/adapters/http/middleware"
	"loandesk/internal/core/domain"
	"loandesk/internal/core/services"
	"loandesk/internal/pkg/response"
	"loandesk/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
	calculator  *services.CalculatorService
	validate    *validation.Engine
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService, calculator *services.CalculatorService, validate *validation.Engine) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
		calculator:  calculator,
		validate:    validate,
	}
}

// ownerID returns the authenticated user's ID from the request context.
func ownerID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalUserID).(string)
	return id
}

// parseDate accepts ISO-8601 dates, with or without a time component.
// The isodate constraint has already vetted the value.
func parseDate(value string) time.Time {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

// CreateLoanRequest represents loan creation request body
type CreateLoanRequest struct {
	BorrowerName   string   `json:"borrowerName" validate:"required"`
	LoanAmount     *float64 `json:"loanAmount" validate:"required,gt=0"`
	InterestRate   *float64 `json:"interestRate" validate:"required,gte=0,lte=100"`
	LoanTerm       *int     `json:"loanTerm" validate:"required,gte=1"`
	PaymentDueDate string   `json:"paymentDueDate" validate:"required,isodate"`
}

// UpdateLoanRequest carries the partial update. Only the five mutable
// fields exist; the decoder rejects anything else wholesale, so the
// allow-list is enforced before any field is touched.
type UpdateLoanRequest struct {
	BorrowerName   *string  `json:"borrowerName" validate:"omitempty,min=1"`
	LoanAmount     *float64 `json:"loanAmount" validate:"omitempty,gt=0"`
	InterestRate   *float64 `json:"interestRate" validate:"omitempty,gte=0,lte=100"`
	LoanTerm       *int     `json:"loanTerm" validate:"omitempty,gte=1"`
	PaymentDueDate *string  `json:"paymentDueDate" validate:"omitempty,isodate"`
}

// UpdateLoanStatusRequest represents status update request body
type UpdateLoanStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Approved Pending Rejected"`
}

// CalculateLoanRequest represents calculation request body
type CalculateLoanRequest struct {
	LoanAmount   *float64 `json:"loanAmount" validate:"required,gt=0"`
	InterestRate *float64 `json:"interestRate" validate:"required,gte=0,lte=100"`
	LoanTerm     *int     `json:"loanTerm" validate:"required,gte=1"`
}

// Create creates a new loan
// @Summary Create loan
// @Description Create a new loan owned by the authenticated user
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateLoanRequest true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		if fe, ok := validation.TypeError(err); ok {
			return response.ValidationFailed(c, []domain.FieldError{fe})
		}
		return response.BadRequest(c, "Invalid request body")
	}

	if fields := h.validate.Check(&req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	input := &services.CreateLoanInput{
		BorrowerName:   req.BorrowerName,
		LoanAmount:     *req.LoanAmount,
		InterestRate:   *req.InterestRate,
		LoanTerm:       *req.LoanTerm,
		PaymentDueDate: parseDate(req.PaymentDueDate),
	}

	loan, err := h.loanService.Create(c.Context(), ownerID(c), input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Loan created successfully", fiber.Map{
		"loan": loan,
	})
}

// List lists the authenticated user's loans
// @Summary List loans
// @Description List all loans owned by the authenticated user
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	loans, err := h.loanService.List(c.Context(), ownerID(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": loans,
	})
}

// GetByID gets a loan by ID
// @Summary Get loan by ID
// @Description Get a specific loan owned by the authenticated user
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validation.IsValidID(id) {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.Get(c.Context(), ownerID(c), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Loan retrieved successfully", fiber.Map{
		"loan": loan,
	})
}

// Update partially updates a loan
// @Summary Update loan
// @Description Update allow-listed loan fields; any other field rejects the request
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param body body UpdateLoanRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [patch]
func (h *LoanHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validation.IsValidID(id) {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req UpdateLoanRequest
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return response.FromError(c, domain.NewInvalidUpdate())
		}
		if fe, ok := validation.TypeError(err); ok {
			return response.ValidationFailed(c, []domain.FieldError{fe})
		}
		return response.BadRequest(c, "Invalid request body")
	}

	if fields := h.validate.Check(&req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	input := &services.UpdateLoanInput{
		BorrowerName: req.BorrowerName,
		LoanAmount:   req.LoanAmount,
		InterestRate: req.InterestRate,
		LoanTerm:     req.LoanTerm,
	}
	if req.PaymentDueDate != nil {
		due := parseDate(*req.PaymentDueDate)
		input.PaymentDueDate = &due
	}

	loan, err := h.loanService.Update(c.Context(), ownerID(c), id, input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Loan updated successfully", fiber.Map{
		"loan": loan,
	})
}

// UpdateStatus sets the loan status
// @Summary Update loan status
// @Description Set the loan status to Approved, Pending or Rejected
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param body body UpdateLoanStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/status [patch]
func (h *LoanHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validation.IsValidID(id) {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req UpdateLoanStatusRequest
	if err := c.BodyParser(&req); err != nil {
		if fe, ok := validation.TypeError(err); ok {
			return response.ValidationFailed(c, []domain.FieldError{fe})
		}
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.UpdateStatus(c.Context(), ownerID(c), id, req.Status)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Loan status updated successfully", fiber.Map{
		"loan": loan,
	})
}

// Delete deletes a loan
// @Summary Delete loan
// @Description Delete a loan and return its snapshot
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validation.IsValidID(id) {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.Delete(c.Context(), ownerID(c), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Loan has been deleted successfully", fiber.Map{
		"loan": loan,
	})
}

// Calculate computes payment figures without persisting anything
// @Summary Calculate loan repayment
// @Description Calculate monthly payment and total repayment for a loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CalculateLoanRequest true "Calculation input"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /loans/calculate [post]
func (h *LoanHandler) Calculate(c *fiber.Ctx) error {
	var req CalculateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		if fe, ok := validation.TypeError(err); ok {
			return response.ValidationFailed(c, []domain.FieldError{fe})
		}
		return response.BadRequest(c, "Invalid request body")
	}

	if fields := h.validate.Check(&req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	result := h.calculator.Calculate(*req.LoanAmount, *req.InterestRate, *req.LoanTerm)

	return response.Success(c, "Loan calculated successfully", result)
}
