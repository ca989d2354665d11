package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"todo-tracker/internal/db"
	"todo-tracker/internal/handlers"
	"todo-tracker/internal/service"
)

func main() {
	log := logrus.New()
	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, relying on process environment")
	}
	validateEnv(log)

	dbConn := initDB(log)
	defer dbConn.Close()

	router := handlers.NewRouter(initHandlers(dbConn, log))
	server := &http.Server{
		Addr:    ":" + os.Getenv("SERVER_PORT"),
		Handler: router,
	}
	startServer(server, log)
}

func validateEnv(log *logrus.Logger) {
	requiredEnvVars := []string{
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"POSTGRES_HOST", "POSTGRES_PORT", "SERVER_PORT", "JWT_SECRET",
	}
	for _, env := range requiredEnvVars {
		if os.Getenv(env) == "" {
			log.Fatalf("Environment variable %s must be set", env)
		}
	}
}

func initDB(log *logrus.Logger) *sql.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"), os.Getenv("POSTGRES_DB"),
		os.Getenv("POSTGRES_PORT"))

	dbConn, err := db.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.EnsureSchema(ctx, dbConn); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	return dbConn
}

func initHandlers(dbConn *sql.DB, log *logrus.Logger) *handlers.Handler {
	taskRepo := db.NewTaskRepository(dbConn)
	projectRepo := db.NewProjectRepository(dbConn)
	userRepo := db.NewUserRepository(dbConn)

	return &handlers.Handler{
		UserRepo:    userRepo,
		TaskRepo:    taskRepo,
		ProjectRepo: projectRepo,
		Query:       service.NewTaskQueryService(taskRepo, log),
		Stats:       service.NewStatsService(taskRepo, projectRepo, userRepo),
		RateLimiter: handlers.NewRateLimiter(5, time.Second),
		Log:         log,
		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),
	}
}

func startServer(server *http.Server, log *logrus.Logger) {
	log.Infof("Starting server on %s", server.Addr)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}
