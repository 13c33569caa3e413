package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"

	"github.com/example/task-tracker/modules/cache"
	"github.com/example/task-tracker/modules/task"
)

const shutdownTimeout = 30 * time.Second

func main() {
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	taskModule := task.NewModule()

	// Caching is optional: without REDIS_ADDR the store serves every read.
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to redis at %s: %v", addr, err)
		}
		taskModule.SetCache(cache.New(redisClient, "tasks:", cacheTTL()))
		log.Printf("Read caching enabled via redis at %s", addr)
	}

	app.Register(taskModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
			"redis": func(_ context.Context) error {
				if redisClient == nil {
					return nil
				}
				return redisClient.Close()
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func cacheTTL() time.Duration {
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil {
			return ttl
		}
		log.Printf("Ignoring invalid CACHE_TTL %q", raw)
	}
	return 5 * time.Minute
}

func printStartupInfo() {
	log.Println("")
	log.Println("Task tracker started")
	log.Println("")
	log.Println("Available services (via NATS request-reply):")
	log.Println("  - task.create  - Create a task")
	log.Println("  - task.get     - Get a task by id")
	log.Println("  - task.list    - List tasks with filters and sorting")
	log.Println("  - task.update  - Replace a task's fields by id")
	log.Println("  - task.delete  - Delete a task by id")
	log.Println("  - task.stats   - Counts by status and priority")
	log.Println("")
	log.Println("Use the nats CLI to interact with services:")
	log.Println(`  nats request services.task.create '{"title":"Ship release notes","priority":"high"}'`)
	log.Println("")
	log.Println("Environment: DB_PATH, DB_DEBUG, TASK_SEED, REDIS_ADDR, CACHE_TTL")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
