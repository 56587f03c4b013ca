package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ledger categories
const (
	ExpenseSalary        = "salary"
	ExpenseReimbursement = "reimbursement"
	ExpenseBonus         = "bonus"
	ExpenseDeduction     = "deduction"
)

// ExpenseEntry is one row of the append-only payroll ledger. Deductions carry
// a positive Amount and are subtracted when summing.
type ExpenseEntry struct {
	ID        uuid.UUID `gorm:"type:char(36);primarykey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:char(36);not null;index" json:"company_id"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`
	Date      string    `gorm:"type:varchar(10);not null;index" json:"date"`

	Category string  `gorm:"type:varchar(20);not null" json:"category"`
	Amount   float64 `gorm:"not null" json:"amount"`
	Note     string  `json:"note"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (ExpenseEntry) TableName() string {
	return "expense_entries"
}

func (e *ExpenseEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Signed returns the amount with deduction sign applied.
func (e *ExpenseEntry) Signed() float64 {
	if e.Category == ExpenseDeduction {
		return -e.Amount
	}
	return e.Amount
}

func ValidExpenseCategory(cat string) bool {
	switch cat {
	case ExpenseSalary, ExpenseReimbursement, ExpenseBonus, ExpenseDeduction:
		return true
	}
	return false
}

func (e *ExpenseEntry) IsValid() bool {
	if e.CompanyID == uuid.Nil || e.UserID == uuid.Nil {
		return false
	}
	if e.Date == "" {
		return false
	}
	if !ValidExpenseCategory(e.Category) {
		return false
	}
	if e.Amount < 0 {
		return false
	}
	return true
}

// Round2 rounds a money amount to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
