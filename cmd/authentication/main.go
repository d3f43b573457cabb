// This is a **mock identity provider**, issuing JWTs for the admin gateway
// so a local setup can act as any provisioned user.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gartstein/hradmin/internal/admin/auth"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const issuer = "auth-service"

// TokenResponse represents the response structure
type TokenResponse struct {
	Token     string `json:"token"`
	Subject   string `json:"subject"`
	ExpiresAt int64  `json:"expiresAt"`
}

type tokenIssuer struct {
	subject string
	secret  string
	ttl     time.Duration
	logger  *zap.Logger
}

// ServeHTTP signs a token for ?sub= or, when absent, the default subject.
func (ti *tokenIssuer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subject := r.URL.Query().Get("sub")
	if subject == "" {
		subject = ti.subject
	}

	token, err := auth.GenerateToken(subject, issuer, ti.secret, ti.ttl)
	if err != nil {
		ti.logger.Error("Failed to generate token", zap.Error(err))
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	resp := TokenResponse{
		Token:     token,
		Subject:   subject,
		ExpiresAt: time.Now().Add(ti.ttl).Unix(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		ti.logger.Error("Failed to encode token", zap.Error(err))
	}
}

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	flags := pflag.NewFlagSet("authentication", pflag.ExitOnError)
	port := flags.Int("port", 8081, "listen port")
	subject := flags.String("subject", "12345", "default token subject")
	secret := flags.String("secret", os.Getenv("JWT_SECRET"), "HS256 signing secret (default $JWT_SECRET)")
	ttl := flags.Duration("ttl", 24*time.Hour, "token lifetime")
	_ = flags.Parse(os.Args[1:])

	if *secret == "" {
		*secret = "jwt_secret"
	}

	mux := http.NewServeMux()
	mux.Handle("/token", &tokenIssuer{subject: *subject, secret: *secret, ttl: *ttl, logger: logger})

	addr := fmt.Sprintf(":%d", *port)
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	logger.Info("Authentication service running", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Authentication service stopped", zap.Error(err))
	}
}
