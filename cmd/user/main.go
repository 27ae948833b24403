package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prashast-singh/to-do/internal/common/clock"
	"github.com/prashast-singh/to-do/internal/common/config"
	commoncrypto "github.com/prashast-singh/to-do/internal/common/crypto"
	"github.com/prashast-singh/to-do/internal/common/db"
	commonhttp "github.com/prashast-singh/to-do/internal/common/http"
	"github.com/prashast-singh/to-do/internal/common/logger"
	srv "github.com/prashast-singh/to-do/internal/common/server"
	userhttp "github.com/prashast-singh/to-do/internal/user/http"
	"github.com/prashast-singh/to-do/internal/user/migrations"
	userrepo "github.com/prashast-singh/to-do/internal/user/repository"
	"github.com/prashast-singh/to-do/internal/user/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "user", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadUserConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := db.RunMigrations(context.Background(), log, cfg.DatabaseURL, migrations.Migrations); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL, "to-do-user")
	defer pool.Close()

	repo := userrepo.NewPgRepository(pool)
	hasher := commoncrypto.NewBcryptHasher(cfg.BcryptCost)
	idGenerator := commoncrypto.NewUUIDGenerator()
	issuer := service.NewTokenIssuer(cfg.JWTSecret, idGenerator, cfg.TokenTTL, clock.NewRealClock())
	users := service.NewUserService(repo, hasher, issuer, log)

	handler := userhttp.NewHandler(users, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler("user", log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForPath(path)(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, log, "user")
}
