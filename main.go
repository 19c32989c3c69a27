package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	apimod "github.com/yusup-a/task-planner/modules/api"
	authmod "github.com/yusup-a/task-planner/modules/auth"
	kvmod "github.com/yusup-a/task-planner/modules/kv"
	notificationmod "github.com/yusup-a/task-planner/modules/notification"
	plannermod "github.com/yusup-a/task-planner/modules/planner"
	tasksmod "github.com/yusup-a/task-planner/modules/tasks"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	redisAddr := getEnv("REDIS_ADDR", "")
	keyPrefix := getEnv("KEY_PREFIX", "planner:")
	authDBPath := getEnv("AUTH_DB_PATH", "./users.db")
	httpPort := getEnvInt("HTTP_PORT", 3000)
	refreshInterval := getEnvDuration("REFRESH_INTERVAL", plannermod.DefaultRefreshInterval)

	log.Println("=== Task Planner ===")
	if redisAddr != "" {
		log.Printf("Redis: %s (prefix: %s)", redisAddr, keyPrefix)
	} else {
		log.Println("Store: in-memory")
	}
	log.Printf("Auth DB: %s", authDBPath)
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Refresh Interval: %s", refreshInterval)

	// Create modules
	kvModule := kvmod.NewModule(redisAddr, keyPrefix)
	authModule := authmod.NewModule(authDBPath)
	tasksModule := tasksmod.NewModule()
	plannerModule := plannermod.NewModule(refreshInterval)
	notificationModule := notificationmod.NewModule()
	apiModule := apimod.NewModule(httpPort)

	// The store is framework-independent, so it is wired directly before
	// the application starts.
	tasksModule.SetStore(kvModule.GetStore())

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules
	app.Register(kvModule)
	app.Register(authModule)
	app.Register(tasksModule)
	app.Register(plannerModule)
	app.Register(notificationModule)
	app.Register(apiModule)

	// Start modules (this handles Init and Start)
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", httpPort)
	log.Println("Endpoints:")
	log.Println("  GET    /health                    - Health check")
	log.Println("  POST   /api/v1/auth/register      - Register")
	log.Println("  POST   /api/v1/auth/login         - Login")
	log.Println("  POST   /api/v1/auth/refresh       - Refresh tokens")
	log.Println("  GET    /api/v1/profile            - Current user (Bearer)")
	log.Println("  GET    /api/v1/tasks              - List tasks")
	log.Println("  POST   /api/v1/tasks              - Add task")
	log.Println("  PATCH  /api/v1/tasks/:id          - Edit task")
	log.Println("  POST   /api/v1/tasks/:id/toggle   - Toggle completion")
	log.Println("  DELETE /api/v1/tasks/:id          - Remove task")
	log.Println("  GET    /api/v1/planner/week       - Week view (?offset=N)")
	log.Println("  GET    /api/v1/planner/month      - Month grid (?year=Y&month=M)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	// Setup graceful shutdown using gelmium/graceful-shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	// Wait for shutdown signal and exit with appropriate code
	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
