package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prashast-singh/to-do/internal/common/config"
	"github.com/prashast-singh/to-do/internal/common/db"
	commonhttp "github.com/prashast-singh/to-do/internal/common/http"
	"github.com/prashast-singh/to-do/internal/common/logger"
	srv "github.com/prashast-singh/to-do/internal/common/server"
	todohttp "github.com/prashast-singh/to-do/internal/todo/http"
	"github.com/prashast-singh/to-do/internal/todo/migrations"
	todorepo "github.com/prashast-singh/to-do/internal/todo/repository"
	"github.com/prashast-singh/to-do/internal/todo/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "todo", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadTodoConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := db.RunMigrations(context.Background(), log, cfg.DatabaseURL, migrations.Migrations); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL, "to-do-todo")
	defer pool.Close()

	repo := todorepo.NewPgRepository(pool)
	todos := service.NewTodoService(repo, log)

	handler := todohttp.NewHandler(todos, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewRateLimiter(50, 100)
	baseHandler := commonhttp.BuildBaseHandler("todo", log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.Middleware("general")(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, log, "todo")
}
