package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/gartstein/hradmin/internal/admin/auth"
	"github.com/gartstein/hradmin/internal/admin/models"
)

// UpdateCompanyProfile renames the caller's company and sets website and logo
// when they are provided.
func (s *AdminService) UpdateCompanyProfile(ctx context.Context, caller *auth.Identity, update *models.CompanyProfileUpdate) (*models.Result, error) {
	const action = "update company profile"

	user, err := s.resolveCaller(ctx, caller, true)
	if err != nil {
		return nil, s.fail(action, caller, err)
	}

	if update != nil {
		update.Name = strings.TrimSpace(update.Name)
	}
	if err := s.validateInput(update); err != nil {
		return nil, s.fail(action, caller, err)
	}

	if err := s.repo.UpdateCompanyProfile(ctx, user.CompanyID, update); err != nil {
		return nil, s.fail(action, caller, fmt.Errorf("update company %s: %w", user.CompanyID, err))
	}

	s.invalidate(PathCompanyProfile, PathCompanySettings)
	return &models.Result{Success: true}, nil
}

// UpdateCompanyWorkingDays overwrites the caller's company working days.
func (s *AdminService) UpdateCompanyWorkingDays(ctx context.Context, caller *auth.Identity, update *models.WorkingDaysUpdate) (*models.Result, error) {
	const action = "update company working days"

	user, err := s.resolveCaller(ctx, caller, true)
	if err != nil {
		return nil, s.fail(action, caller, err)
	}

	if err := s.validateInput(update); err != nil {
		return nil, s.fail(action, caller, err)
	}

	raw, err := models.EncodeWorkingDays(update.Days)
	if err != nil {
		return nil, s.fail(action, caller, err)
	}

	if err := s.repo.UpdateCompanyWorkingDays(ctx, user.CompanyID, raw); err != nil {
		return nil, s.fail(action, caller, fmt.Errorf("update company %s: %w", user.CompanyID, err))
	}

	return &models.Result{Success: true}, nil
}

// GetCompanySettings returns the caller's company. Any provisioned role may read it.
func (s *AdminService) GetCompanySettings(ctx context.Context, caller *auth.Identity) (*models.CompanySettings, error) {
	const action = "get company settings"

	user, err := s.resolveCaller(ctx, caller, false)
	if err != nil {
		return nil, s.fail(action, caller, err)
	}

	company, err := s.repo.GetCompany(ctx, user.CompanyID)
	if err != nil {
		return nil, s.fail(action, caller, fmt.Errorf("get company %s: %w", user.CompanyID, err))
	}

	days, err := models.DecodeWorkingDays(company.WorkingDays)
	if err != nil {
		return nil, s.fail(action, caller, err)
	}

	return &models.CompanySettings{
		ID:          company.ID,
		Name:        company.Name,
		Website:     company.Website,
		Logo:        company.Logo,
		WorkingDays: days,
	}, nil
}
