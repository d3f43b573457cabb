// Package controller implements the admin mutation gateway: every operation
// authenticates the caller, resolves their user record, authorizes the ADMIN
// role, checks the target belongs to the caller's company, performs one write
// and signals which cached views went stale.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/gartstein/hradmin/internal/admin/auth"
	e "github.com/gartstein/hradmin/internal/admin/errors"
	"github.com/gartstein/hradmin/internal/admin/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Stale view paths signaled after a successful mutation.
const (
	PathCompanySettings    = "/admin/company-settings"
	PathCompanyProfile     = "/admin/company-settings/profile"
	PathCompanyHolidays    = "/admin/company-settings/holidays"
	PathEmployeeAllowances = "/admin/employees/allowances"
)

// Repository defines the storage the gateway depends on.
type Repository interface {
	FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateCompanyProfile(ctx context.Context, id uuid.UUID, update *models.CompanyProfileUpdate) error
	UpdateCompanyWorkingDays(ctx context.Context, id uuid.UUID, days datatypes.JSON) error
	CreateHoliday(ctx context.Context, holiday *models.CompanyHoliday) error
	GetHoliday(ctx context.Context, id uuid.UUID) (*models.CompanyHoliday, error)
	HolidayCompanyID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	UpdateHoliday(ctx context.Context, companyID uuid.UUID, update *models.HolidayUpdate) error
	DeleteHoliday(ctx context.Context, companyID, id uuid.UUID) error
	ListHolidays(ctx context.Context, companyID uuid.UUID) ([]models.CompanyHoliday, error)
	EmployeeCompanyID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	UpdateEmployeeAllowance(ctx context.Context, companyID, id uuid.UUID, days int) error
}

// Invalidator marks a cached rendering of path as stale.
type Invalidator interface {
	Invalidate(path string)
}

// AdminService is the mutation gateway. It holds no per-request state.
type AdminService struct {
	repo        Repository
	invalidator Invalidator
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAdminService constructs an AdminService with a repository,
// a view-cache invalidator, and a logger.
func NewAdminService(repo Repository, invalidator Invalidator, logger *zap.Logger) *AdminService {
	return &AdminService{
		repo:        repo,
		invalidator: invalidator,
		validate:    validator.New(),
		logger:      logger.Named("admin_service"),
	}
}

// resolveCaller runs the authenticate, resolve and authorize steps.
func (s *AdminService) resolveCaller(ctx context.Context, caller *auth.Identity, requireAdmin bool) (*models.User, error) {
	if caller == nil || caller.ExternalID == "" {
		return nil, e.ErrUnauthorized
	}

	user, err := s.repo.FindUserByExternalID(ctx, caller.ExternalID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not provisioned", e.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve caller: %w", err)
	}

	if requireAdmin && user.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: role %s is not allowed", e.ErrUnauthorized, user.Role)
	}
	return user, nil
}

// checkScope fails with ErrForbidden unless owner is the caller's company.
func checkScope(caller *models.User, owner uuid.UUID) error {
	if owner != caller.CompanyID {
		return e.ErrForbidden
	}
	return nil
}

func (s *AdminService) validateInput(input interface{}) error {
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}
	return nil
}

// fail logs the specific cause and returns the generic error for action.
func (s *AdminService) fail(action string, caller *auth.Identity, err error) error {
	fields := []zap.Field{zap.Error(err), zap.String("action", action)}
	if caller != nil {
		fields = append(fields, zap.String("caller", caller.ExternalID))
	}
	s.logger.Error("Admin operation failed", fields...)
	return e.Failed(action, err)
}

func (s *AdminService) invalidate(paths ...string) {
	for _, path := range paths {
		s.invalidator.Invalidate(path)
	}
}
