// Package handlers serves the admin gateway over gRPC and HTTP, translating
// google.protobuf.Struct messages to domain inputs and mapping failures to
// status codes.
package handlers

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gartstein/hradmin/internal/admin/auth"
	"github.com/gartstein/hradmin/internal/admin/models"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// AdminController defines the business logic interface
// that the gRPC/HTTP handlers will invoke.
type AdminController interface {
	UpdateCompanyProfile(ctx context.Context, caller *auth.Identity, update *models.CompanyProfileUpdate) (*models.Result, error)
	UpdateCompanyWorkingDays(ctx context.Context, caller *auth.Identity, update *models.WorkingDaysUpdate) (*models.Result, error)
	GetCompanySettings(ctx context.Context, caller *auth.Identity) (*models.CompanySettings, error)
	AddCompanyHoliday(ctx context.Context, caller *auth.Identity, input *models.HolidayInput) (*models.CompanyHoliday, error)
	UpdateCompanyHoliday(ctx context.Context, caller *auth.Identity, update *models.HolidayUpdate) (*models.CompanyHoliday, error)
	DeleteCompanyHoliday(ctx context.Context, caller *auth.Identity, id uuid.UUID) (*models.Result, error)
	ListCompanyHolidays(ctx context.Context, caller *auth.Identity) ([]models.CompanyHoliday, error)
	UpdateEmployeeAllowance(ctx context.Context, caller *auth.Identity, update *models.AllowanceUpdate) (*models.Result, error)
}

// Server holds references to both a gRPC server and an HTTP server.
type Server struct {
	grpcServer   *grpc.Server
	httpServer   *http.Server
	logger       *zap.Logger
	grpcEndpoint string
	httpEndpoint string
}

// NewServer constructs a Server with separate endpoints for gRPC and HTTP.
func NewServer(
	grpcPort int,
	httpPort int,
	logger *zap.Logger,
	grpcOpts ...grpc.ServerOption,
) *Server {
	return &Server{
		grpcServer:   grpc.NewServer(grpcOpts...),
		httpServer:   &http.Server{ReadHeaderTimeout: 10 * time.Second},
		logger:       logger,
		grpcEndpoint: fmt.Sprintf(":%d", grpcPort),
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
	}
}

// RegisterGRPCHandler registers the AdminService implementation.
func (s *Server) RegisterGRPCHandler(h *AdminHandler) {
	s.grpcServer.RegisterService(&AdminServiceDesc, h)
}

// RegisterHTTPGateway mounts the REST routes on a gateway mux behind the auth middleware.
func (s *Server) RegisterHTTPGateway(h *AdminHandler, jwtSecret string) error {
	mux := runtime.NewServeMux()
	if err := h.RegisterRoutes(mux); err != nil {
		return err
	}

	s.httpServer.Handler = auth.HTTPMiddleware(mux, jwtSecret)
	s.httpServer.Addr = s.httpEndpoint
	return nil
}

// Start runs the gRPC and HTTP servers concurrently, returning on the first error.
func (s *Server) Start() error {
	var wg sync.WaitGroup
	wg.Add(2)
	errChan := make(chan error, 2)

	// Start gRPC Server
	go func() {
		defer wg.Done()
		s.logger.Info("Starting gRPC server", zap.String("endpoint", s.grpcEndpoint))
		lis, err := net.Listen("tcp", s.grpcEndpoint)
		if err != nil {
			errChan <- fmt.Errorf("gRPC listen error: %w", err)
			return
		}
		if err := s.grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("gRPC serve error: %w", err)
		}
	}()

	// Start HTTP Server
	go func() {
		defer wg.Done()
		s.logger.Info("Starting HTTP server", zap.String("endpoint", s.httpEndpoint))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP serve error: %w", err)
		}
	}()

	go func() {
		wg.Wait()
		close(errChan)
	}()

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// Stop gracefully shuts down both gRPC and HTTP servers.
func (s *Server) Stop() {
	s.logger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.grpcServer.GracefulStop()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Servers stopped")
}
