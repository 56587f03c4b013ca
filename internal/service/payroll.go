package service

import (
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/workdays"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MonthlySummary is the payroll view for one user and month: attendance
// aggregate, prorated salary accrual and the ledger net.
type MonthlySummary struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	WorkingDays int     `json:"working_days"`
	PresentDays int     `json:"present_days"`
	TotalHours  float64 `json:"total_hours"`

	BaseSalary    float64 `json:"base_salary"`
	AccruedSalary float64 `json:"accrued_salary"`
	LedgerNet     float64 `json:"ledger_net"`
	Payable       float64 `json:"payable"`
}

type PayrollService struct {
	expenseRepo    repository.ExpenseRepository
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
	logger         *logrus.Logger
}

func NewPayrollService(
	expenseRepo repository.ExpenseRepository,
	attendanceRepo repository.AttendanceRepository,
	userRepo repository.UserRepository,
) *PayrollService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &PayrollService{
		expenseRepo:    expenseRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// RecordExpense appends a row to the ledger.
func (s *PayrollService) RecordExpense(companyID, userID uuid.UUID, date, category string, amount float64, note string) (*models.ExpenseEntry, error) {
	entry := &models.ExpenseEntry{
		CompanyID: companyID,
		UserID:    userID,
		Date:      date,
		Category:  category,
		Amount:    models.Round2(amount),
		Note:      note,
	}

	if err := s.expenseRepo.Create(entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListExpenses returns the user's ledger rows for a month.
func (s *PayrollService) ListExpenses(userID uuid.UUID, year, month int) ([]*models.ExpenseEntry, error) {
	return s.expenseRepo.ListByUserAndMonth(userID, year, month)
}

// Summary computes the monthly payroll figures. Accrual prorates the base
// salary by present days over the month's working days (Mon-Fri).
func (s *PayrollService) Summary(userID uuid.UUID, year, month int) (*MonthlySummary, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, repository.ErrNotFound
	}

	presentDays, totalHours, err := s.attendanceRepo.MonthlyStats(userID, year, month)
	if err != nil {
		return nil, err
	}

	ledgerNet, err := s.expenseRepo.MonthlyNet(userID, year, month)
	if err != nil {
		return nil, err
	}

	workingDays := workdays.InMonth(year, time.Month(month))
	accrued := AccrueSalary(user.BaseSalary, presentDays, workingDays)

	summary := &MonthlySummary{
		Year:          year,
		Month:         month,
		WorkingDays:   workingDays,
		PresentDays:   presentDays,
		TotalHours:    totalHours,
		BaseSalary:    user.BaseSalary,
		AccruedSalary: accrued,
		LedgerNet:     ledgerNet,
		Payable:       models.Round2(accrued + ledgerNet),
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"year":    year,
		"month":   month,
		"payable": summary.Payable,
	}).Debug("Computed payroll summary")

	return summary, nil
}

// AccrueSalary prorates a monthly base salary by attendance. Days worked
// beyond the working-day count do not accrue past the full salary.
func AccrueSalary(baseSalary float64, presentDays, workingDays int) float64 {
	if workingDays <= 0 || baseSalary <= 0 {
		return 0
	}

	if presentDays > workingDays {
		presentDays = workingDays
	}
	if presentDays < 0 {
		presentDays = 0
	}

	return models.Round2(baseSalary * float64(presentDays) / float64(workingDays))
}
