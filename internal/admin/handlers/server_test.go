package handlers

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gartstein/hradmin/internal/admin/auth"
	"github.com/gartstein/hradmin/internal/admin/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestServer_RegisterHTTPGateway(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewServer(50071, 8071, logger)

	err := s.RegisterHTTPGateway(NewAdminHandler(&mockAdminController{}, logger), "secret")
	require.NoError(t, err)
	assert.NotNil(t, s.httpServer.Handler)
	assert.Equal(t, s.httpEndpoint, s.httpServer.Addr)
}

func TestServer_StartStop(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctrl := &mockAdminController{
		getSettingsFunc: func(_ context.Context, caller *auth.Identity) (*models.CompanySettings, error) {
			return &models.CompanySettings{ID: uuid.New(), Name: caller.ExternalID, WorkingDays: []string{}}, nil
		},
	}
	interceptor := auth.NewAuthInterceptor("secret", FullMethods()...)
	s := NewServer(50072, 8072, logger, grpc.Creds(insecure.NewCredentials()), grpc.UnaryInterceptor(interceptor.Unary()))

	handler := NewAdminHandler(ctrl, logger)
	s.RegisterGRPCHandler(handler)
	require.NoError(t, s.RegisterHTTPGateway(handler, "secret"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	// Give the server a moment to start.
	time.Sleep(200 * time.Millisecond)

	conn, err := grpc.NewClient("localhost"+s.grpcEndpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	token, err := auth.GenerateToken("admin_1", "test", "secret", time.Minute)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

	resp := &structpb.Struct{}
	err = conn.Invoke(ctx, fullMethod("GetCompanySettings"), &structpb.Struct{}, resp)
	require.NoError(t, err)
	assert.Equal(t, "admin_1", resp.Fields["name"].GetStringValue())
	conn.Close()

	s.Stop()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Server Start returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for server to stop")
	}

	lis, err := net.Listen("tcp", s.grpcEndpoint)
	if err != nil {
		t.Errorf("expected to be able to listen on %q after shutdown, but got error: %v", s.grpcEndpoint, err)
	} else {
		lis.Close()
	}
}

func TestFullMethods(t *testing.T) {
	names := FullMethods()
	assert.Len(t, names, len(AdminServiceDesc.Methods))
	assert.Contains(t, names, "/hradmin.v1.AdminService/UpdateCompanyProfile")
	assert.Contains(t, names, "/hradmin.v1.AdminService/UpdateEmployeeAllowance")
}
