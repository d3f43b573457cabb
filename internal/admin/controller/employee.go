package controller

import (
	"context"
	"fmt"

	"github.com/gartstein/hradmin/internal/admin/auth"
	"github.com/gartstein/hradmin/internal/admin/models"
)

// UpdateEmployeeAllowance overwrites the available leave days of an employee
// in the caller's company.
func (s *AdminService) UpdateEmployeeAllowance(ctx context.Context, caller *auth.Identity, update *models.AllowanceUpdate) (*models.Result, error) {
	const action = "update employee allowance"

	user, err := s.resolveCaller(ctx, caller, true)
	if err != nil {
		return nil, s.fail(action, caller, err)
	}

	if err := s.validateInput(update); err != nil {
		return nil, s.fail(action, caller, err)
	}

	owner, err := s.repo.EmployeeCompanyID(ctx, update.EmployeeID)
	if err != nil {
		return nil, s.fail(action, caller, fmt.Errorf("resolve employee %s: %w", update.EmployeeID, err))
	}
	if err := checkScope(user, owner); err != nil {
		return nil, s.fail(action, caller, err)
	}

	if err := s.repo.UpdateEmployeeAllowance(ctx, user.CompanyID, update.EmployeeID, update.AvailableDays); err != nil {
		return nil, s.fail(action, caller, fmt.Errorf("update employee %s: %w", update.EmployeeID, err))
	}

	s.invalidate(PathEmployeeAllowances)
	return &models.Result{Success: true}, nil
}
