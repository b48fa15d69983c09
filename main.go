package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/taskboard/config"
	"github.com/example/taskboard/database"
	"github.com/example/taskboard/modules/api"
	"github.com/example/taskboard/modules/auth"
	"github.com/example/taskboard/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Taskboard ===")

	cfg := config.Load()

	db, err := database.Open(cfg.DBPath, cfg.DBDebug)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()
	if cfg.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET is not set, sessions are signed with the default key")
	}

	authModule := auth.NewModule(cfg, db, logger)
	taskModule := task.NewModule(db, logger)

	// Register modules with the framework.
	// Order: independent modules first, then the HTTP API that depends on them
	app.Register(authModule)
	app.Register(taskModule)
	app.Register(api.NewModule(cfg, logger, authModule, taskModule))

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
			"database": func(ctx context.Context) error {
				return database.Close(db)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	base := fmt.Sprintf("http://localhost:%d", cfg.Port)

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Database: %s", cfg.DBPath)
	if cfg.RedisAddr != "" {
		log.Printf("User cache: redis at %s", cfg.RedisAddr)
	} else {
		log.Println("User cache: disabled (set REDIS_ADDR to enable)")
	}
	log.Printf("Ownership checks on task updates: %v", cfg.EnforceTaskOwnership)
	log.Println("")
	log.Printf("REST API Endpoints (%s):", base)
	log.Println("")
	log.Println("  POST   /api/auth/signup     - Create an account")
	log.Println("  POST   /api/auth/login      - Log in")
	log.Println("  GET    /api/auth/me         - Current user")
	log.Println("  POST   /api/auth/logout     - Clear the session")
	log.Println("  GET    /api/tasks           - List tasks")
	log.Println("  POST   /api/tasks           - Create a task")
	log.Println("  PATCH  /api/tasks/:id       - Update a task")
	log.Println("  DELETE /api/tasks/:id       - Delete a task")
	log.Println("  DELETE /api/tasks/bulk      - Delete several tasks")
	log.Println("  GET    /health              - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
