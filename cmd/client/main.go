package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mroshb/watch_club/internal/config"
	"github.com/mroshb/watch_club/internal/gateway"
	"github.com/mroshb/watch_club/internal/notify"
	"github.com/mroshb/watch_club/internal/services"
	"github.com/mroshb/watch_club/internal/store"
	"github.com/mroshb/watch_club/pkg/logger"
)

// logNotifier surfaces notices on the log until a UI binds one.
type logNotifier struct{}

func (logNotifier) Notify(n notify.Notice) {
	if n.Level == notify.LevelBlocking {
		logger.Error("Notice", "code", n.Code, "message", n.Message)
		return
	}
	logger.Warn("Notice", "code", n.Code, "message", n.Message)
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting watch club client core...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Error("Production security validation failed", "error", err)
			os.Exit(1)
		}
	}

	gw := gateway.NewHTTPGateway(cfg.APIBaseURL, cfg.SessionToken, cfg.GetAPITimeout())
	st := store.New()
	session := services.Session{UserID: userIDFromEnv()}
	var notifier notify.Notifier = logNotifier{}

	items := services.NewItemService(session, st, gw, notifier)
	friends := services.NewFriendService(session, st, gw, notifier)

	unsubscribe := st.Subscribe(func(c store.Change) {
		logger.Debug("Store changed", "kind", c.Kind)
	})
	defer unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetAPITimeout())
	defer cancel()

	if err := items.LoadItems(ctx); err != nil {
		logger.Warn("Initial items load failed", "error", err)
	}
	if err := friends.LoadAll(ctx); err != nil {
		logger.Warn("Initial relationship load failed", "error", err)
	}

	logger.Info("Initial sync done",
		"items", len(st.Items()),
		"friends", len(st.Friends()),
		"incoming", len(st.Incoming()),
		"outgoing", len(st.Outgoing()),
		"pending_count", st.PendingCount(),
	)

	// Keep running so an embedding UI can drive the services
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
}

func userIDFromEnv() int64 {
	// The session token identifies the user server-side; USER_ID only
	// feeds local self-checks.
	if v := os.Getenv("USER_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	return 0
}
