// Package db implements the admin gateway's persistence on GORM.
package db

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/hradmin/internal/admin/errors"
	"github.com/gartstein/hradmin/internal/admin/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewRepository connects to Postgres and migrates the admin tables.
func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
	return Open(postgres.Open(dsn))
}

// Open connects through any GORM dialector and migrates the admin tables.
func Open(dialector gorm.Dialector) (*Repository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Company{}, &models.User{}, &models.CompanyHoliday{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// FindUserByExternalID resolves a caller, loading only id, role and company.
func (r *Repository) FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).
		Select("id", "role", "company_id").
		Where("external_id = ?", externalID).
		First(&user)
	if result.Error != nil {
		return nil, notFound(result.Error)
	}
	return &user, nil
}

// CreateCompany provisions a company. Used by test fixtures.
func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// CreateUser provisions a user. Used by test fixtures.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *Repository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	result := r.db.WithContext(ctx).First(&company, "id = ?", id)
	if result.Error != nil {
		return nil, notFound(result.Error)
	}
	return &company, nil
}

// UpdateCompanyProfile writes the name and whichever optional fields are set.
func (r *Repository) UpdateCompanyProfile(ctx context.Context, id uuid.UUID, update *models.CompanyProfileUpdate) error {
	columns := map[string]interface{}{"name": update.Name}
	if update.Website != nil {
		columns["website"] = *update.Website
	}
	if update.Logo != nil {
		columns["logo"] = *update.Logo
	}

	result := r.db.WithContext(ctx).Model(&models.Company{}).
		Where("id = ?", id).
		Updates(columns)
	return affected(result)
}

func (r *Repository) UpdateCompanyWorkingDays(ctx context.Context, id uuid.UUID, days datatypes.JSON) error {
	result := r.db.WithContext(ctx).Model(&models.Company{}).
		Where("id = ?", id).
		Update("working_days", days)
	return affected(result)
}

func (r *Repository) CreateHoliday(ctx context.Context, holiday *models.CompanyHoliday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *Repository) GetHoliday(ctx context.Context, id uuid.UUID) (*models.CompanyHoliday, error) {
	var holiday models.CompanyHoliday
	result := r.db.WithContext(ctx).First(&holiday, "id = ?", id)
	if result.Error != nil {
		return nil, notFound(result.Error)
	}
	return &holiday, nil
}

// HolidayCompanyID returns the owning company of a holiday.
func (r *Repository) HolidayCompanyID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var holiday models.CompanyHoliday
	result := r.db.WithContext(ctx).Select("company_id").First(&holiday, "id = ?", id)
	if result.Error != nil {
		return uuid.Nil, notFound(result.Error)
	}
	return holiday.CompanyID, nil
}

// UpdateHoliday rewrites name, date and recurrence. company_id is part of the
// filter and never of the column set.
func (r *Repository) UpdateHoliday(ctx context.Context, companyID uuid.UUID, update *models.HolidayUpdate) error {
	result := r.db.WithContext(ctx).Model(&models.CompanyHoliday{}).
		Where("id = ? AND company_id = ?", update.ID, companyID).
		Updates(map[string]interface{}{
			"name":         update.Name,
			"date":         update.Date,
			"is_recurring": update.IsRecurring,
		})
	return affected(result)
}

func (r *Repository) DeleteHoliday(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&models.CompanyHoliday{})
	return affected(result)
}

func (r *Repository) ListHolidays(ctx context.Context, companyID uuid.UUID) ([]models.CompanyHoliday, error) {
	var holidays []models.CompanyHoliday
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("date ASC").
		Find(&holidays)
	if result.Error != nil {
		return nil, result.Error
	}
	return holidays, nil
}

// EmployeeCompanyID returns the company an employee belongs to.
func (r *Repository) EmployeeCompanyID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var user models.User
	result := r.db.WithContext(ctx).Select("company_id").First(&user, "id = ?", id)
	if result.Error != nil {
		return uuid.Nil, notFound(result.Error)
	}
	return user.CompanyID, nil
}

// GetUser loads a full user record. Used by tests to inspect writes.
func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		return nil, notFound(result.Error)
	}
	return &user, nil
}

func (r *Repository) UpdateEmployeeAllowance(ctx context.Context, companyID, id uuid.UUID, days int) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("available_days", days)
	return affected(result)
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return e.ErrNotFound
	}
	return err
}

func affected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}
