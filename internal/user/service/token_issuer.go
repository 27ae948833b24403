package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prashast-singh/to-do/internal/common/clock"
	commoncrypto "github.com/prashast-singh/to-do/internal/common/crypto"
	"github.com/prashast-singh/to-do/internal/common/jwtverify"
	"github.com/prashast-singh/to-do/internal/observability/metrics"
	"github.com/prashast-singh/to-do/internal/user/domain"
)

// TokenIssuer signs identity assertions the todo service verifies without
// ever calling back. The TTL is fixed at construction, not per call.
type TokenIssuer struct {
	jwtSecret   []byte
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	tokenTTL    time.Duration
}

func NewTokenIssuer(
	jwtSecret string,
	idGenerator commoncrypto.IDGenerator,
	tokenTTL time.Duration,
	clock clock.Clock,
) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:   []byte(jwtSecret),
		idGenerator: idGenerator,
		clock:       clock,
		tokenTTL:    tokenTTL,
	}
}

func (ti *TokenIssuer) IssueToken(user domain.User) (string, error) {
	jti, err := ti.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"sub":   string(user.UUID),
		"email": user.Email,
		"jti":   jti,
		"iat":   now.Unix(),
		"exp":   now.Add(ti.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.TokensIssued.Inc()
	return tokenString, nil
}

func (ti *TokenIssuer) ParseToken(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret)
}
