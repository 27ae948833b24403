package constants

import "time"

const (
	PasswordMinLength  = 8
	PasswordMaxLength  = 72
	EmailMaxLength     = 254
	JWTSecretMinLength = 32

	TodoContentMinLength = 1
	TodoContentMaxLength = 500

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultUserHTTPPort = "3001"
	DefaultTodoHTTPPort = "3002"

	DefaultRequestTimeout = 5 * time.Second
	DefaultTokenTTL       = 60 * time.Minute
	DefaultBcryptCost     = 12

	RateLimitCleanupInterval = 5 * time.Minute

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28

	TestJWTSecret = "unit-test-secret-0123456789abcdefghij"
	TestTokenTTL  = 15 * time.Minute
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
