package repositories

import (
	"context"

	"loandesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// ListByOwner lists all loans owned by a user, in insertion order
func (r *loanRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("created_at ASC").
		Find(&loans).Error
	return loans, err
}

// GetByIDAndOwner gets a loan by ID, filtered by its owner. A loan owned
// by someone else surfaces as gorm.ErrRecordNotFound.
func (r *loanRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", id, ownerID).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Update persists a modified loan
func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// DeleteByIDAndOwner removes a loan and returns its snapshot. Fetch and
// delete run in one transaction so the snapshot cannot race the removal.
func (r *loanRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND created_by = ?", id, ownerID).First(&loan).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND created_by = ?", id, ownerID).Delete(&models.Loan{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}
