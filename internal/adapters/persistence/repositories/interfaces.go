package repositories

import (
	"context"

	"loandesk/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// LoanRepository defines loan repository interface. Every read and write
// is scoped to the owning user.
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Loan, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Loan, error)
}
