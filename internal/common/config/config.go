package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/prashast-singh/to-do/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrInvalidBcryptCost  = errors.New("BCRYPT_COST must be between 4 and 31")
)

type UserConfig struct {
	HTTPPort       string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	RequestTimeout time.Duration
}

type TodoConfig struct {
	HTTPPort       string
	DatabaseURL    string
	JWTSecret      string
	RequestTimeout time.Duration
}

func LoadUserConfig() (UserConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return UserConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return UserConfig{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return UserConfig{}, err
	}

	cost := getIntEnv("BCRYPT_COST", constants.DefaultBcryptCost)
	if err := validateBcryptCost(cost); err != nil {
		return UserConfig{}, err
	}

	return UserConfig{
		HTTPPort:       getEnv("USER_HTTP_PORT", constants.DefaultUserHTTPPort),
		DatabaseURL:    databaseURL,
		JWTSecret:      jwtSecret,
		TokenTTL:       getDurationEnv("JWT_EXPIRES_IN", constants.DefaultTokenTTL),
		BcryptCost:     cost,
		RequestTimeout: getDurationEnv("USER_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
	}, nil
}

func LoadTodoConfig() (TodoConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return TodoConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return TodoConfig{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return TodoConfig{}, err
	}

	return TodoConfig{
		HTTPPort:       getEnv("TODO_HTTP_PORT", constants.DefaultTodoHTTPPort),
		DatabaseURL:    databaseURL,
		JWTSecret:      jwtSecret,
		RequestTimeout: getDurationEnv("TODO_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func validateBcryptCost(cost int) error {
	if cost < 4 || cost > 31 {
		return fmt.Errorf("%w: got %d", ErrInvalidBcryptCost, cost)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
