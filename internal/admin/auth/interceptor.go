// Package auth resolves caller identities from bearer JWTs and exposes them
// through a gRPC unary interceptor and an HTTP middleware.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Interceptor holds the JWT secret and the set of methods that carry a caller.
type Interceptor struct {
	jwtSecret        string
	protectedMethods map[string]bool
}

// NewAuthInterceptor creates an Interceptor resolving identities for the
// given full method names.
func NewAuthInterceptor(jwtSecret string, protectedMethods ...string) *Interceptor {
	protected := make(map[string]bool, len(protectedMethods))
	for _, method := range protectedMethods {
		protected[method] = true
	}

	return &Interceptor{
		jwtSecret:        jwtSecret,
		protectedMethods: protected,
	}
}

// Unary returns a gRPC unary interceptor. A request without a token reaches
// the handler with no identity; a request with a bad token is rejected.
func (i *Interceptor) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if !i.protectedMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return handler(ctx, req)
		}

		tokenString, err := extractTokenFromMetadata(md)
		if err != nil {
			return nil, err
		}
		if tokenString == "" {
			return handler(ctx, req)
		}

		identity, err := Resolve(tokenString, i.jwtSecret)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
		}

		return handler(NewContext(ctx, identity), req)
	}
}

// extractTokenFromMetadata retrieves a Bearer token from gRPC metadata.
// An absent header yields an empty token and no error.
func extractTokenFromMetadata(md metadata.MD) (string, error) {
	authHeaders := md.Get("authorization")
	if len(authHeaders) == 0 {
		return "", nil
	}

	headerValue := authHeaders[0]
	if !strings.HasPrefix(headerValue, "Bearer ") {
		return "", status.Error(codes.Unauthenticated, "invalid authorization format: missing Bearer prefix")
	}

	tokenString := strings.TrimPrefix(headerValue, "Bearer ")
	if tokenString == "" {
		return "", status.Error(codes.Unauthenticated, "invalid authorization format: empty token")
	}

	return tokenString, nil
}

// Resolve validates tokenString and turns its claims into an Identity.
func Resolve(tokenString, secret string) (*Identity, error) {
	claims, err := validateToken(tokenString, secret)
	if err != nil {
		return nil, err
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return &Identity{ExternalID: subject, Claims: claims}, nil
}

// validateToken checks the token signature and returns parsed claims if valid.
func validateToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}
