package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "assignment-tracker.com/assignment-tracker/internal/configs"
	httpapi "assignment-tracker.com/assignment-tracker/internal/http"
	repository "assignment-tracker.com/assignment-tracker/internal/repositories"
	"assignment-tracker.com/assignment-tracker/internal/services"
	"assignment-tracker.com/assignment-tracker/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  "Starts the assignment tracker web application",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.New(cfg.DatabaseDSN)

		assignmentRepo := repository.NewAssignmentRepository(database)
		userRepo := repository.NewUserRepository(database)

		sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
		var store session.Store
		if cfg.SessionStore == "redis" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			store = session.NewRedisStore(redisClient, cfg.SessionKeyPrefix, sessionTTL)
		} else {
			store = session.NewMemoryStore(sessionTTL)
		}

		assignmentService := services.NewAssignmentService(assignmentRepo)
		authService := services.NewAuthService(userRepo)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		renderer, err := httpapi.NewRenderer(cfg.TemplatesGlob)
		if err != nil {
			log.Fatalf("failed to parse templates: %v", err)
		}

		e := echo.New()
		e.Renderer = renderer

		handler := httpapi.NewHandler(assignmentService, authService, store)
		httpapi.Register(e, handler, store, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
