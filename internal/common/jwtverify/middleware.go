package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	commonerrors "github.com/prashast-singh/to-do/internal/common/errors"
	commonhttp "github.com/prashast-singh/to-do/internal/common/http"
	"github.com/prashast-singh/to-do/internal/common/logger"
	"github.com/prashast-singh/to-do/internal/observability/metrics"
)

// Claims is the verified token payload shared between the issuing user
// service and any service trusting its tokens.
type Claims struct {
	Subject string
	Email   string
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

// Middleware is the access-control gate: it extracts the bearer token,
// verifies it and attaches the claims to the request context. Handlers behind
// it never see an unauthenticated request.
func Middleware(secret string, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(secretBytes) == 0 {
				log.Errorf("jwt auth failed path=%s: verifier has no secret configured", r.URL.Path)
				commonhttp.WriteError(w, http.StatusInternalServerError,
					commonerrors.ErrAuthInfrastructure.Code(), commonerrors.ErrAuthInfrastructure.Message())
				return
			}

			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				log.Warnf("jwt auth failed path=%s: missing or invalid authorization header", r.URL.Path)
				commonhttp.WriteError(w, http.StatusUnauthorized,
					commonerrors.ErrMissingCredential.Code(), commonerrors.ErrMissingCredential.Message())
				return
			}

			tokenString := strings.TrimPrefix(raw, "Bearer ")
			claims, err := ParseToken(tokenString, secretBytes)
			if err != nil {
				// The log keeps the real reason; the response never does.
				log.Warnf("jwt auth failed path=%s: %v", r.URL.Path, err)
				commonhttp.WriteError(w, http.StatusUnauthorized,
					commonerrors.ErrInvalidToken.Code(), commonerrors.ErrInvalidToken.Message())
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Claims, bool) {
	val := ctx.Value(claimsKey)
	claims, ok := val.(Claims)
	return claims, ok
}

// ContextWithClaims is exported for tests exercising handlers directly.
func ContextWithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ParseToken verifies signature, algorithm, expiry and claim presence. Every
// failure mode collapses to a single error kind so callers cannot distinguish
// an expired token from a forged one.
func ParseToken(tokenString string, secret []byte) (Claims, error) {
	metrics.JWTValidationsTotal.Inc()

	claims, err := parseToken(tokenString, secret)
	if err != nil {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, err
	}
	return claims, nil
}

func parseToken(tokenString string, secret []byte) (Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return Claims{}, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)
	if sub == "" || email == "" {
		return Claims{}, errors.New("missing sub or email claims")
	}

	return Claims{
		Subject: sub,
		Email:   email,
	}, nil
}
