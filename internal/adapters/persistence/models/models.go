package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents users table
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO; the password hash never leaves the persistence layer.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// Loan statuses
const (
	LoanStatusPending  = "Pending"
	LoanStatusApproved = "Approved"
	LoanStatusRejected = "Rejected"
)

// IsValidLoanStatus reports whether s is one of the three loan statuses.
func IsValidLoanStatus(s string) bool {
	switch s {
	case LoanStatusPending, LoanStatusApproved, LoanStatusRejected:
		return true
	}
	return false
}

// Loan represents loans table. CreatedBy is set at creation and never
// reassigned; every query on loans is filtered by it.
type Loan struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	BorrowerName   string    `gorm:"size:100;not null" json:"borrowerName"`
	LoanAmount     float64   `gorm:"type:decimal(15,2);not null" json:"loanAmount"`
	InterestRate   float64   `gorm:"type:decimal(5,2);not null" json:"interestRate"`
	LoanTerm       int       `gorm:"not null" json:"loanTerm"`
	LoanStatus     string    `gorm:"size:20;not null;default:'Pending'" json:"loanStatus"`
	PaymentDueDate time.Time `gorm:"type:date;not null" json:"paymentDueDate"`
	CreatedBy      string    `gorm:"size:36;not null;index" json:"createdBy"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Loan) TableName() string {
	return "loans"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Loan{},
	)
}
