package services

import (
	"context"
	"testing"
	"time"

	"loandesk/internal/adapters/persistence/models"
	"loandesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockLoanRepository is a testify mock of repositories.LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Loan, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Loan, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) Update(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Loan, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func testLoan(id, ownerID string) *models.Loan {
	return &models.Loan{
		ID:             id,
		BorrowerName:   "John Doe",
		LoanAmount:     10000,
		InterestRate:   5,
		LoanTerm:       12,
		LoanStatus:     models.LoanStatusPending,
		PaymentDueDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy:      ownerID,
	}
}

func TestLoanCreate_DefaultsToPendingAndOwner(t *testing.T) {
	repo := &MockLoanRepository{}
	service := NewLoanService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(loan *models.Loan) bool {
		return loan.LoanStatus == models.LoanStatusPending &&
			loan.CreatedBy == "owner-1" &&
			loan.ID != ""
	})).Return(nil)

	loan, err := service.Create(context.Background(), "owner-1", &CreateLoanInput{
		BorrowerName:   "John Doe",
		LoanAmount:     10000,
		InterestRate:   5,
		LoanTerm:       12,
		PaymentDueDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusPending, loan.LoanStatus)
	assert.Equal(t, "owner-1", loan.CreatedBy)
	repo.AssertExpectations(t)
}

func TestLoanGet_OtherOwnerLooksAbsent(t *testing.T) {
	repo := &MockLoanRepository{}
	service := NewLoanService(repo)

	// The repository filters by owner, so a loan owned by someone else
	// comes back as a missing record.
	repo.On("GetByIDAndOwner", mock.Anything, "loan-1", "intruder").
		Return(nil, gorm.ErrRecordNotFound)

	loan, err := service.Get(context.Background(), "intruder", "loan-1")

	assert.Nil(t, loan)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindNotFound, de.Kind)
	assert.Equal(t, "Loan not found", de.Message)
	repo.AssertExpectations(t)
}

func TestLoanUpdate_AppliesOnlyProvidedFields(t *testing.T) {
	repo := &MockLoanRepository{}
	service := NewLoanService(repo)

	repo.On("GetByIDAndOwner", mock.Anything, "loan-1", "owner-1").
		Return(testLoan("loan-1", "owner-1"), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	amount := 20000.0
	loan, err := service.Update(context.Background(), "owner-1", "loan-1", &UpdateLoanInput{
		LoanAmount: &amount,
	})

	require.NoError(t, err)
	assert.Equal(t, 20000.0, loan.LoanAmount)
	assert.Equal(t, "John Doe", loan.BorrowerName)
	assert.Equal(t, 12, loan.LoanTerm)
	repo.AssertExpectations(t)
}

func TestLoanUpdate_NotFound(t *testing.T) {
	repo := &MockLoanRepository{}
	service := NewLoanService(repo)

	repo.On("GetByIDAndOwner", mock.Anything, "gone", "owner-1").
		Return(nil, gorm.ErrRecordNotFound)

	name := "Jane"
	_, err := service.Update(context.Background(), "owner-1", "gone", &UpdateLoanInput{
		BorrowerName: &name,
	})

	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindNotFound, de.Kind)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLoanUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := &MockLoanRepository{}
	service := NewLoanService(repo)

	loan, err := service.UpdateStatus(context.Background(), "owner-1", "loan-1", "Active")

	assert.Nil(t, loan)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindInvalidStatus, de.Kind)
	repo.AssertNotCalled(t, "GetByIDAndOwner", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLoanUpdateStatus_SetsAnyEnumValue(t *testing.T) {
	repo := &MockLoanRepository{}
	service := NewLoanService(repo)

	for _, status := range []string{
		models.LoanStatusApproved,
		models.LoanStatusRejected,
		models.LoanStatusPending,
	} {
		repo.On("GetByIDAndOwner", mock.Anything, "loan-1", "owner-1").
			Return(testLoan("loan-1", "owner-1"), nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(loan *models.Loan) bool {
			return loan.LoanStatus == status
		})).Return(nil).Once()

		loan, err := service.UpdateStatus(context.Background(), "owner-1", "loan-1", status)

		require.NoError(t, err)
		assert.Equal(t, status, loan.LoanStatus)
	}
	repo.AssertExpectations(t)
}

func TestLoanDelete_ReturnsSnapshot(t *testing.T) {
	repo := &MockLoanRepository{}
	service := NewLoanService(repo)

	repo.On("DeleteByIDAndOwner", mock.Anything, "loan-1", "owner-1").
		Return(testLoan("loan-1", "owner-1"), nil)

	loan, err := service.Delete(context.Background(), "owner-1", "loan-1")

	require.NoError(t, err)
	assert.Equal(t, "loan-1", loan.ID)
	assert.Equal(t, "John Doe", loan.BorrowerName)
	repo.AssertExpectations(t)
}

func TestLoanDelete_NotFound(t *testing.T) {
	repo := &MockLoanRepository{}
	service := NewLoanService(repo)

	repo.On("DeleteByIDAndOwner", mock.Anything, "gone", "owner-1").
		Return(nil, gorm.ErrRecordNotFound)

	loan, err := service.Delete(context.Background(), "owner-1", "gone")

	assert.Nil(t, loan)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindNotFound, de.Kind)
	repo.AssertExpectations(t)
}

func TestLoanList_OwnerScoped(t *testing.T) {
	repo := &MockLoanRepository{}
	service := NewLoanService(repo)

	owned := []*models.Loan{testLoan("loan-1", "owner-1"), testLoan("loan-2", "owner-1")}
	repo.On("ListByOwner", mock.Anything, "owner-1").Return(owned, nil)

	loans, err := service.List(context.Background(), "owner-1")

	require.NoError(t, err)
	assert.Len(t, loans, 2)
	for _, loan := range loans {
		assert.Equal(t, "owner-1", loan.CreatedBy)
	}
	repo.AssertExpectations(t)
}
