package service

import (
	"fmt"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and role management. The first
// user registered for a company becomes its admin; later registrations join
// as employees.
type AuthService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtSecret   []byte
	logger      *logrus.Logger
}

func NewAuthService(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtSecret string) *AuthService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		jwtSecret:   []byte(jwtSecret),
		logger:      logger,
	}
}

func (s *AuthService) Register(companyName, email, password, firstName, lastName string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	company, err := s.companyRepo.GetByName(companyName)
	if err != nil {
		return nil, err
	}

	role := models.RoleEmployee
	if company == nil {
		company = &models.Company{Name: companyName}
		if err := s.companyRepo.Create(company); err != nil {
			return nil, err
		}
		role = models.RoleAdmin
		s.logger.WithField("company", companyName).Info("Company created")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"company": companyName,
		"role":    role,
	}).Info("User registered")

	return user, nil
}

// Login verifies credentials and issues a signed token. The returned redirect
// is the role-based landing path for the web client.
func (s *AuthService) Login(email, password string) (string, *models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, "", err
	}

	if user == nil {
		return "", nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("email", email).Warn("Login failed")
		return "", nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, "", err
	}

	s.logger.WithField("user_id", user.ID).Info("User logged in")

	return token, user, user.LandingPath(), nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID.String(),
		"company_id": user.CompanyID.String(),
		"role":       user.Role,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// InitializeAdmin promotes the configured base admin account if it exists.
func (s *AuthService) InitializeAdmin(email string) error {
	if email == "" {
		return nil
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}

	if user == nil {
		return fmt.Errorf("base admin %s not registered yet", email)
	}

	if user.IsAdmin() {
		return nil
	}

	return s.userRepo.UpdateRole(user.ID, models.Role(models.RoleAdmin))
}

// UpdateRole changes a user's role. Only admins may do this.
func (s *AuthService) UpdateRole(actorID, targetID uuid.UUID, role models.Role) error {
	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		return err
	}

	if actor == nil || !actor.IsAdmin() {
		return ErrForbidden
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return err
	}

	if target == nil {
		return repository.ErrNotFound
	}

	return s.userRepo.UpdateRole(targetID, role)
}

// LinkTelegram stores the chat ID used for notification pushes.
func (s *AuthService) LinkTelegram(userID uuid.UUID, chatID int64) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if user == nil {
		return repository.ErrNotFound
	}

	user.TelegramChatID = chatID
	return s.userRepo.Update(user)
}

// SetBaseSalary updates the salary used by payroll accrual. Admin only.
func (s *AuthService) SetBaseSalary(actorID, targetID uuid.UUID, amount float64) error {
	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		return err
	}

	if actor == nil || !actor.IsAdmin() {
		return ErrForbidden
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return err
	}

	if target == nil {
		return repository.ErrNotFound
	}

	target.BaseSalary = amount
	return s.userRepo.Update(target)
}

// GetUser loads a user by ID.
func (s *AuthService) GetUser(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, repository.ErrNotFound
	}

	return user, nil
}

// ListCompanyUsers returns the company roster.
func (s *AuthService) ListCompanyUsers(companyID uuid.UUID) ([]*models.User, error) {
	return s.userRepo.ListByCompany(companyID)
}
