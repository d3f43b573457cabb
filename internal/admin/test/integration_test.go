package test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/hradmin/internal/admin/auth"
	"github.com/gartstein/hradmin/internal/admin/controller"
	"github.com/gartstein/hradmin/internal/admin/db"
	e "github.com/gartstein/hradmin/internal/admin/errors"
	"github.com/gartstein/hradmin/internal/admin/events"
	"github.com/gartstein/hradmin/internal/admin/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const invalidationTopic = "view-invalidations-test"

var kafkaBrokers = []string{"localhost:9092"}

type IntegrationTestSuite struct {
	suite.Suite
	dbRepo      *db.Repository
	producer    *events.Producer
	kafkaReader *kafka.Reader
	service     *controller.AdminService
	logger      *zap.Logger
	testTimeout time.Duration

	company *models.Company
	admin   *auth.Identity
	staff   *models.User
}

func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.logger = zap.NewNop()
	s.testTimeout = 20 * time.Second

	var err error
	s.dbRepo, err = initializeDBWithRetry()
	if err != nil {
		s.T().Fatal("Database initialization failed:", err)
	}

	s.producer, s.kafkaReader, err = initializeKafkaWithRetry(invalidationTopic)
	if err != nil {
		s.T().Fatal("Kafka initialization failed:", err)
	}

	s.service = controller.NewAdminService(s.dbRepo, s.producer, s.logger)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.producer != nil {
		s.producer.Close()
	}
	if s.kafkaReader != nil {
		_ = s.kafkaReader.Close()
	}
	if s.dbRepo != nil {
		_ = s.dbRepo.Close()
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	err := s.dbRepo.Exec(ctx, "TRUNCATE TABLE company_holidays, users, companies CASCADE")
	require.NoError(s.T(), err, "Failed to clean database")

	s.company = &models.Company{ID: uuid.New(), Name: "Acme"}
	require.NoError(s.T(), s.dbRepo.CreateCompany(ctx, s.company))

	adminUser := &models.User{ID: uuid.New(), ExternalID: "admin_" + uuid.NewString(), Role: models.RoleAdmin, CompanyID: s.company.ID}
	require.NoError(s.T(), s.dbRepo.CreateUser(ctx, adminUser))
	s.admin = &auth.Identity{ExternalID: adminUser.ExternalID}

	s.staff = &models.User{ID: uuid.New(), ExternalID: "staff_" + uuid.NewString(), Role: models.RoleEmployee, CompanyID: s.company.ID, AvailableDays: 20}
	require.NoError(s.T(), s.dbRepo.CreateUser(ctx, s.staff))
}

func initializeDBWithRetry() (*db.Repository, error) {
	cfg := &db.Config{
		Host:     "localhost",
		Port:     5432,
		User:     "test",
		Password: "test",
		DBName:   "test",
		SSLMode:  "disable",
	}

	var repo *db.Repository
	err := backoff.Retry(func() error {
		var err error
		repo, err = db.NewRepository(cfg)
		return err
	}, backoff.NewExponentialBackOff())

	return repo, err
}

func initializeKafkaWithRetry(topic string) (*events.Producer, *kafka.Reader, error) {
	var producer *events.Producer
	err := backoff.Retry(func() error {
		var err error
		producer, err = events.NewProducer(kafkaBrokers, zap.NewNop(), topic)
		if err != nil || producer == nil {
			return fmt.Errorf("failed to create Kafka producer: %v", err)
		}
		return nil
	}, backoff.NewExponentialBackOff())
	if err != nil {
		return nil, nil, fmt.Errorf("Kafka producer initialization failed: %w", err)
	}

	err = backoff.Retry(func() error {
		conn, err := kafka.Dial("tcp", kafkaBrokers[0])
		if err != nil {
			return err
		}
		defer conn.Close()

		partitions, err := conn.ReadPartitions(topic)
		if err != nil || len(partitions) == 0 {
			return fmt.Errorf("topic %s not found", topic)
		}
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		producer.Close()
		return nil, nil, fmt.Errorf("Kafka topic check failed: %w", err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     kafkaBrokers,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return producer, reader, nil
}

func (s *IntegrationTestSuite) TestUpdateCompanyProfile() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	website := "https://acme.example"
	result, err := s.service.UpdateCompanyProfile(ctx, s.admin, &models.CompanyProfileUpdate{Name: "Acme Corp", Website: &website})
	require.NoError(s.T(), err)
	assert.True(s.T(), result.Success)

	stored, err := s.dbRepo.GetCompany(ctx, s.company.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Acme Corp", stored.Name)
	assert.Equal(s.T(), website, *stored.Website)

	s.verifyInvalidation(ctx, controller.PathCompanyProfile)
	s.verifyInvalidation(ctx, controller.PathCompanySettings)
}

func (s *IntegrationTestSuite) TestWorkingDaysRoundTrip() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	_, err := s.service.UpdateCompanyWorkingDays(ctx, s.admin, &models.WorkingDaysUpdate{Days: []string{"MON", "TUE", "WED"}})
	require.NoError(s.T(), err)

	settings, err := s.service.GetCompanySettings(ctx, s.admin)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"MON", "TUE", "WED"}, settings.WorkingDays)
}

func (s *IntegrationTestSuite) TestHolidayLifecycle() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	holiday, err := s.service.AddCompanyHoliday(ctx, s.admin, &models.HolidayInput{
		Name: "Christmas", Date: time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), IsRecurring: true,
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.company.ID, holiday.CompanyID)
	s.verifyInvalidation(ctx, controller.PathCompanyHolidays)

	updated, err := s.service.UpdateCompanyHoliday(ctx, s.admin, &models.HolidayUpdate{
		ID: holiday.ID, Name: "Christmas Day", Date: holiday.Date, IsRecurring: true,
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Christmas Day", updated.Name)

	_, err = s.service.DeleteCompanyHoliday(ctx, s.admin, holiday.ID)
	require.NoError(s.T(), err)

	_, err = s.dbRepo.GetHoliday(ctx, holiday.ID)
	assert.ErrorIs(s.T(), err, e.ErrNotFound)
}

func (s *IntegrationTestSuite) TestUpdateEmployeeAllowance() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	_, err := s.service.UpdateEmployeeAllowance(ctx, s.admin, &models.AllowanceUpdate{EmployeeID: s.staff.ID, AvailableDays: 5})
	require.NoError(s.T(), err)

	staff, err := s.dbRepo.GetUser(ctx, s.staff.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 5, staff.AvailableDays)
	s.verifyInvalidation(ctx, controller.PathEmployeeAllowances)
}

// verifyInvalidation reads until a path_invalidated event keyed by path arrives.
func (s *IntegrationTestSuite) verifyInvalidation(ctx context.Context, path string) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	for attempts := 0; attempts < 200; attempts++ {
		msg, err := s.kafkaReader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			s.T().Logf("Kafka read attempt %d failed: %v", attempts, err)
			time.Sleep(time.Second)
			continue
		}
		if string(msg.Key) != path {
			s.T().Logf("Skipping message with unmatched key: %s (Expected: %s)", string(msg.Key), path)
			continue
		}

		var event events.Event
		require.NoError(s.T(), json.Unmarshal(msg.Value, &event))
		assert.Equal(s.T(), events.PathInvalidated, event.Type)
		assert.Equal(s.T(), path, event.Path)
		return
	}
	s.T().Fatalf("No invalidation received for %s", path)
}
