package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"donext/internal/agent"
	"donext/internal/audit"
	config "donext/internal/configs"
	httpapi "donext/internal/http"
	"donext/internal/ratelimit"
	repository "donext/internal/repositories"
	"donext/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the to-do API together with the chat assistant endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(logger)

		cfg := config.Load()
		database := config.New(cfg.DatabaseDriver, cfg.DatabaseDSN)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var publisher audit.Publisher = audit.NoopPublisher{}
		if cfg.NATSURL != "" {
			natsPub, err := audit.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject)
			if err != nil {
				log.Fatalf("failed to connect to nats: %v", err)
			}
			defer natsPub.Close()
			publisher = natsPub
		}

		auditLog, err := audit.NewLogger(cfg.AuditLogPath, publisher)
		if err != nil {
			log.Fatalf("failed to open security log: %v", err)
		}

		var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter()
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			limiter = ratelimit.NewRedisLimiter(redisClient)
		}

		taskRepo := repository.NewTaskRepository(database, auditLog)
		conversationRepo := repository.NewConversationRepository(database, auditLog)
		sessionRepo := repository.NewSessionRepository(database)

		var runtime agent.Runtime = agent.Disabled{}
		if cfg.GeminiAPIKey != "" {
			gemini, err := agent.NewGeminiRuntime(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AgentMaxToolRounds)
			if err != nil {
				log.Fatalf("failed to create gemini client: %v", err)
			}
			defer gemini.Close()
			runtime = gemini
		} else {
			logger.Warn("GEMINI_API_KEY not set, chat will report the assistant as unavailable")
		}

		taskService := services.NewTaskService(taskRepo)
		chatService := services.NewChatService(
			conversationRepo,
			taskRepo,
			runtime,
			time.Duration(cfg.AgentTimeoutSeconds)*time.Second,
		)

		e := echo.New()
		handler := httpapi.NewHandler(taskService, chatService, database)
		httpapi.Register(e, handler, httpapi.RouterConfig{
			Sessions:           sessionRepo,
			Audit:              auditLog,
			Limiter:            limiter,
			ListPerMinute:      cfg.ListPerMinute,
			MutationsPerMinute: cfg.MutationsPerMinute,
			ChatPerMinute:      cfg.ChatPerMinute,
			HistoryPerMinute:   cfg.HistoryPerMinute,
			AllowedOrigins:     cfg.AllowedOrigins,
			Logger:             logger,
		})

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
