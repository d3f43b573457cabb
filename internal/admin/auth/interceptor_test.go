package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	protectedMethod   = "/hradmin.v1.AdminService/UpdateCompanyProfile"
	unprotectedMethod = "/grpc.health.v1.Health/Check"
)

func TestAuthInterceptor(t *testing.T) {
	const (
		validSecret   = "test-secret"
		invalidSecret = "wrong-secret"
		userID        = "user_2abc"
	)

	// Helper to generate test tokens
	generateToken := func(secret string, expiresAt time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": userID,
			"exp": expiresAt.Unix(),
		})
		tokenString, _ := token.SignedString([]byte(secret))
		return tokenString
	}

	tests := []struct {
		name         string
		fullMethod   string
		header       string
		wantError    bool
		expectedErr  codes.Code
		wantIdentity bool
	}{
		{
			name:         "protected method valid token",
			fullMethod:   protectedMethod,
			header:       "Bearer " + generateToken(validSecret, time.Now().Add(1*time.Hour)),
			wantIdentity: true,
		},
		{
			name:        "protected method invalid token",
			fullMethod:  protectedMethod,
			header:      "Bearer " + generateToken(invalidSecret, time.Now().Add(1*time.Hour)),
			wantError:   true,
			expectedErr: codes.Unauthenticated,
		},
		{
			name:        "protected method expired token",
			fullMethod:  protectedMethod,
			header:      "Bearer " + generateToken(validSecret, time.Now().Add(-1*time.Hour)),
			wantError:   true,
			expectedErr: codes.Unauthenticated,
		},
		{
			name:        "protected method malformed header",
			fullMethod:  protectedMethod,
			header:      "Token abc",
			wantError:   true,
			expectedErr: codes.Unauthenticated,
		},
		{
			name:       "protected method missing metadata passes without identity",
			fullMethod: protectedMethod,
		},
		{
			name:       "unprotected method ignores token",
			fullMethod: unprotectedMethod,
			header:     "Bearer " + generateToken(validSecret, time.Now().Add(1*time.Hour)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interceptor := NewAuthInterceptor(validSecret, protectedMethod)
			unaryInterceptor := interceptor.Unary()

			ctx := context.Background()
			if tt.header != "" {
				md := metadata.Pairs("authorization", tt.header)
				ctx = metadata.NewIncomingContext(ctx, md)
			}

			var seen *Identity
			handler := func(ctx context.Context, _ interface{}) (interface{}, error) {
				seen = FromContext(ctx)
				return "response", nil
			}

			info := &grpc.UnaryServerInfo{FullMethod: tt.fullMethod}
			resp, err := unaryInterceptor(ctx, nil, info, handler)

			if tt.wantError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if status.Code(err) != tt.expectedErr {
					t.Errorf("expected error code %v, got %v", tt.expectedErr, status.Code(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp != "response" {
				t.Error("handler response mismatch")
			}
			if tt.wantIdentity {
				if seen == nil || seen.ExternalID != userID {
					t.Errorf("expected identity %q in context, got %+v", userID, seen)
				}
			} else if seen != nil {
				t.Errorf("expected no identity, got %+v", seen)
			}
		})
	}
}

func TestExtractTokenFromMetadata(t *testing.T) {
	tests := []struct {
		name        string
		metadata    metadata.MD
		wantToken   string
		wantErrCode codes.Code
	}{
		{
			name:      "valid authorization header",
			metadata:  metadata.Pairs("authorization", "Bearer valid-token"),
			wantToken: "valid-token",
		},
		{
			name:     "missing authorization header",
			metadata: metadata.MD{},
		},
		{
			name:        "malformed authorization header",
			metadata:    metadata.Pairs("authorization", "InvalidPrefix valid-token"),
			wantErrCode: codes.Unauthenticated,
		},
		{
			name:        "empty bearer token",
			metadata:    metadata.Pairs("authorization", "Bearer "),
			wantErrCode: codes.Unauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := extractTokenFromMetadata(tt.metadata)

			if tt.wantErrCode != codes.OK {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if status.Code(err) != tt.wantErrCode {
					t.Errorf("expected error code %v, got %v", tt.wantErrCode, status.Code(err))
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if token != tt.wantToken {
				t.Errorf("expected token %q, got %q", tt.wantToken, token)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	const validSecret = "test-secret"
	validToken, err := GenerateToken("user123", "test", validSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	noSubjectString, _ := noSubject.SignedString([]byte(validSecret))

	tests := []struct {
		name        string
		tokenString string
		secret      string
		wantValid   bool
	}{
		{
			name:        "valid token",
			tokenString: validToken,
			secret:      validSecret,
			wantValid:   true,
		},
		{
			name:        "invalid signature",
			tokenString: validToken,
			secret:      "wrong-secret",
		},
		{
			name:        "missing subject",
			tokenString: noSubjectString,
			secret:      validSecret,
		},
		{
			name:        "malformed token",
			tokenString: "invalid.token.string",
			secret:      validSecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := Resolve(tt.tokenString, tt.secret)

			if tt.wantValid {
				if err != nil {
					t.Fatalf("expected valid token, got error: %v", err)
				}
				if identity.ExternalID != "user123" {
					t.Errorf("expected subject user123, got %q", identity.ExternalID)
				}
				if identity.Claims["iss"] != "test" {
					t.Error("claims not properly parsed")
				}
			} else if err == nil {
				t.Error("expected invalid token, got no error")
			}
		})
	}
}

func TestNewAuthInterceptor(t *testing.T) {
	secret := "test-secret"
	methods := []string{
		"/hradmin.v1.AdminService/AddCompanyHoliday",
		"/hradmin.v1.AdminService/DeleteCompanyHoliday",
	}
	interceptor := NewAuthInterceptor(secret, methods...)

	if interceptor.jwtSecret != secret {
		t.Errorf("expected secret %q, got %q", secret, interceptor.jwtSecret)
	}
	for _, method := range methods {
		if !interceptor.protectedMethods[method] {
			t.Errorf("missing protected method: %s", method)
		}
	}
}
