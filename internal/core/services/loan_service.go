package services

import (
	"context"
	"errors"
	"time"

	"loandesk/internal/adapters/persistence/models"
	"loandesk/internal/adapters/persistence/repositories"
	"loandesk/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoanService handles loan business logic. Every operation is scoped to
// the owning user; a loan owned by someone else is indistinguishable from
// a missing one.
type LoanService struct {
	loanRepo repositories.LoanRepository
}

// NewLoanService creates a new loan service
func NewLoanService(loanRepo repositories.LoanRepository) *LoanService {
	return &LoanService{loanRepo: loanRepo}
}

// CreateLoanInput represents loan creation input
type CreateLoanInput struct {
	BorrowerName   string
	LoanAmount     float64
	InterestRate   float64
	LoanTerm       int
	PaymentDueDate time.Time
}

// UpdateLoanInput carries the partial update. Only the five mutable
// fields exist here; the status travels through UpdateStatus instead, so
// the two update paths can never be merged in one request.
type UpdateLoanInput struct {
	BorrowerName   *string
	LoanAmount     *float64
	InterestRate   *float64
	LoanTerm       *int
	PaymentDueDate *time.Time
}

// Create creates a loan owned by ownerID with status Pending.
func (s *LoanService) Create(ctx context.Context, ownerID string, input *CreateLoanInput) (*models.Loan, error) {
	loan := &models.Loan{
		ID:             uuid.New().String(),
		BorrowerName:   input.BorrowerName,
		LoanAmount:     input.LoanAmount,
		InterestRate:   input.InterestRate,
		LoanTerm:       input.LoanTerm,
		LoanStatus:     models.LoanStatusPending,
		PaymentDueDate: input.PaymentDueDate,
		CreatedBy:      ownerID,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, domain.NewPersistenceError(err)
	}
	return loan, nil
}

// List returns all loans owned by ownerID.
func (s *LoanService) List(ctx context.Context, ownerID string) ([]*models.Loan, error) {
	loans, err := s.loanRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}
	return loans, nil
}

// Get returns the loan if it exists and is owned by ownerID.
func (s *LoanService) Get(ctx context.Context, ownerID, loanID string) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByIDAndOwner(ctx, loanID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Loan not found")
		}
		return nil, domain.NewPersistenceError(err)
	}
	return loan, nil
}

// Update applies the provided fields and re-persists the loan. The same
// loan concurrently updated by two requests is last-write-wins.
func (s *LoanService) Update(ctx context.Context, ownerID, loanID string, input *UpdateLoanInput) (*models.Loan, error) {
	loan, err := s.Get(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}

	if input.BorrowerName != nil {
		loan.BorrowerName = *input.BorrowerName
	}
	if input.LoanAmount != nil {
		loan.LoanAmount = *input.LoanAmount
	}
	if input.InterestRate != nil {
		loan.InterestRate = *input.InterestRate
	}
	if input.LoanTerm != nil {
		loan.LoanTerm = *input.LoanTerm
	}
	if input.PaymentDueDate != nil {
		loan.PaymentDueDate = *input.PaymentDueDate
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, domain.NewPersistenceError(err)
	}
	return loan, nil
}

// UpdateStatus sets the loan status. Any of the three values may be set
// at any time; this is a flat assignment, not a guarded transition.
func (s *LoanService) UpdateStatus(ctx context.Context, ownerID, loanID, status string) (*models.Loan, error) {
	if !models.IsValidLoanStatus(status) {
		return nil, domain.NewInvalidStatus()
	}

	loan, err := s.Get(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}

	loan.LoanStatus = status
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, domain.NewPersistenceError(err)
	}
	return loan, nil
}

// Delete removes the loan and returns its snapshot.
func (s *LoanService) Delete(ctx context.Context, ownerID, loanID string) (*models.Loan, error) {
	loan, err := s.loanRepo.DeleteByIDAndOwner(ctx, loanID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Loan not found")
		}
		return nil, domain.NewPersistenceError(err)
	}
	return loan, nil
}
