package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/gartstein/hradmin/internal/admin/auth"
	e "github.com/gartstein/hradmin/internal/admin/errors"
	"github.com/gartstein/hradmin/internal/admin/models"
	"github.com/google/uuid"
)

// AddCompanyHoliday creates a holiday under the caller's company. Repeated
// calls create repeated records.
func (s *AdminService) AddCompanyHoliday(ctx context.Context, caller *auth.Identity, input *models.HolidayInput) (*models.CompanyHoliday, error) {
	const action = "add company holiday"

	user, err := s.resolveCaller(ctx, caller, true)
	if err != nil {
		return nil, s.fail(action, caller, err)
	}

	if input != nil {
		input.Name = strings.TrimSpace(input.Name)
		input.Date = models.CalendarDate(input.Date)
	}
	if err := s.validateInput(input); err != nil {
		return nil, s.fail(action, caller, err)
	}

	holiday := &models.CompanyHoliday{
		ID:          uuid.New(),
		Name:        input.Name,
		Date:        input.Date,
		IsRecurring: input.IsRecurring,
		CompanyID:   user.CompanyID,
	}
	if err := s.repo.CreateHoliday(ctx, holiday); err != nil {
		return nil, s.fail(action, caller, fmt.Errorf("create holiday: %w", err))
	}

	s.invalidate(PathCompanyHolidays)
	return holiday, nil
}

// UpdateCompanyHoliday edits a holiday owned by the caller's company.
func (s *AdminService) UpdateCompanyHoliday(ctx context.Context, caller *auth.Identity, update *models.HolidayUpdate) (*models.CompanyHoliday, error) {
	const action = "update company holiday"

	user, err := s.resolveCaller(ctx, caller, true)
	if err != nil {
		return nil, s.fail(action, caller, err)
	}

	if update != nil {
		update.Name = strings.TrimSpace(update.Name)
		update.Date = models.CalendarDate(update.Date)
	}
	if err := s.validateInput(update); err != nil {
		return nil, s.fail(action, caller, err)
	}

	if err := s.checkHolidayScope(ctx, user, update.ID); err != nil {
		return nil, s.fail(action, caller, err)
	}

	if err := s.repo.UpdateHoliday(ctx, user.CompanyID, update); err != nil {
		return nil, s.fail(action, caller, fmt.Errorf("update holiday %s: %w", update.ID, err))
	}

	updated, err := s.repo.GetHoliday(ctx, update.ID)
	if err != nil {
		return nil, s.fail(action, caller, fmt.Errorf("reload holiday %s: %w", update.ID, err))
	}

	s.invalidate(PathCompanyHolidays)
	return updated, nil
}

// DeleteCompanyHoliday removes a holiday owned by the caller's company.
func (s *AdminService) DeleteCompanyHoliday(ctx context.Context, caller *auth.Identity, id uuid.UUID) (*models.Result, error) {
	const action = "delete company holiday"

	user, err := s.resolveCaller(ctx, caller, true)
	if err != nil {
		return nil, s.fail(action, caller, err)
	}

	if id == uuid.Nil {
		return nil, s.fail(action, caller, fmt.Errorf("%w: holiday id required", e.ErrInvalidInput))
	}

	if err := s.checkHolidayScope(ctx, user, id); err != nil {
		return nil, s.fail(action, caller, err)
	}

	if err := s.repo.DeleteHoliday(ctx, user.CompanyID, id); err != nil {
		return nil, s.fail(action, caller, fmt.Errorf("delete holiday %s: %w", id, err))
	}

	s.invalidate(PathCompanyHolidays)
	return &models.Result{Success: true}, nil
}

// ListCompanyHolidays returns the caller's company holidays ordered by date.
func (s *AdminService) ListCompanyHolidays(ctx context.Context, caller *auth.Identity) ([]models.CompanyHoliday, error) {
	const action = "list company holidays"

	user, err := s.resolveCaller(ctx, caller, false)
	if err != nil {
		return nil, s.fail(action, caller, err)
	}

	holidays, err := s.repo.ListHolidays(ctx, user.CompanyID)
	if err != nil {
		return nil, s.fail(action, caller, fmt.Errorf("list holidays: %w", err))
	}
	return holidays, nil
}

func (s *AdminService) checkHolidayScope(ctx context.Context, user *models.User, id uuid.UUID) error {
	owner, err := s.repo.HolidayCompanyID(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve holiday %s: %w", id, err)
	}
	return checkScope(user, owner)
}
