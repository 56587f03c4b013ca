package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByCompany(companyID uuid.UUID) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*models.User
	for _, user := range r.users {
		if user.CompanyID == companyID {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateRole(id uuid.UUID, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	user.Role = string(role)
	return nil
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[uuid.UUID]*models.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[uuid.UUID]*models.Company)}
}

func (r *fakeCompanyRepo) Create(company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	copied := *company
	r.companies[company.ID] = &copied
	return nil
}

func (r *fakeCompanyRepo) GetByID(id uuid.UUID) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	company, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	copied := *company
	return &copied, nil
}

func (r *fakeCompanyRepo) GetByName(name string) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, company := range r.companies {
		if company.Name == name {
			copied := *company
			return &copied, nil
		}
	}
	return nil, nil
}

func newTestAuthService() *AuthService {
	return NewAuthService(newFakeUserRepo(), newFakeCompanyRepo(), "test-secret")
}

func TestFirstRegistrationCreatesCompanyAdmin(t *testing.T) {
	svc := newTestAuthService()

	admin, err := svc.Register("Acme", "ana@acme.test", "password123", "Ana", "Reyes")
	if err != nil {
		t.Fatalf("Register admin: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("first user role = %q, want %q", admin.Role, models.RoleAdmin)
	}

	employee, err := svc.Register("Acme", "budi@acme.test", "password123", "Budi", "")
	if err != nil {
		t.Fatalf("Register employee: %v", err)
	}
	if employee.Role != models.RoleEmployee {
		t.Errorf("second user role = %q, want %q", employee.Role, models.RoleEmployee)
	}
	if employee.CompanyID != admin.CompanyID {
		t.Error("both users must belong to the same company")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newTestAuthService()

	if _, err := svc.Register("Acme", "ana@acme.test", "password123", "Ana", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Register("Acme", "ana@acme.test", "password456", "Ana", ""); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate register error = %v, want ErrEmailTaken", err)
	}
}

func TestLoginAndRedirect(t *testing.T) {
	svc := newTestAuthService()

	if _, err := svc.Register("Acme", "ana@acme.test", "password123", "Ana", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register("Acme", "budi@acme.test", "password123", "Budi", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, _, redirect, err := svc.Login("ana@acme.test", "password123")
	if err != nil {
		t.Fatalf("Login admin: %v", err)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
	if redirect != "/admin" {
		t.Errorf("admin redirect = %q, want /admin", redirect)
	}

	_, _, redirect, err = svc.Login("budi@acme.test", "password123")
	if err != nil {
		t.Fatalf("Login employee: %v", err)
	}
	if redirect != "/dashboard" {
		t.Errorf("employee redirect = %q, want /dashboard", redirect)
	}

	if _, _, _, err := svc.Login("ana@acme.test", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, _, err := svc.Login("ghost@acme.test", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateRoleRequiresAdmin(t *testing.T) {
	svc := newTestAuthService()

	admin, _ := svc.Register("Acme", "ana@acme.test", "password123", "Ana", "")
	employee, _ := svc.Register("Acme", "budi@acme.test", "password123", "Budi", "")

	if err := svc.UpdateRole(employee.ID, admin.ID, models.Role(models.RoleEmployee)); !errors.Is(err, ErrForbidden) {
		t.Errorf("employee promoting error = %v, want ErrForbidden", err)
	}

	if err := svc.UpdateRole(admin.ID, employee.ID, models.Role(models.RoleManager)); err != nil {
		t.Fatalf("admin promoting: %v", err)
	}

	updated, _ := svc.GetUser(employee.ID)
	if updated.Role != models.RoleManager {
		t.Errorf("role = %q, want %q", updated.Role, models.RoleManager)
	}
}
