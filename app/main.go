package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hikarukin/blogspace/internal/blogservice"
	"github.com/hikarukin/blogspace/internal/notifyservice"
	"github.com/hikarukin/blogspace/internal/store"
	"github.com/hikarukin/blogspace/internal/userservice"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	store         store.Store
	sessions      *userservice.SessionManager
	userService   *userservice.UserService
	blogService   *blogservice.BlogService
	notifyService *notifyservice.NotificationService
	hub           *notifyservice.Hub
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Pick the storage variant once: mongodb when reachable, otherwise the
	// process runs on the in-memory store until restart.
	st := store.Open(cfg.MongoURI, logger)

	hub := notifyservice.NewHub(logger)
	go hub.Run()

	notifier := notifyservice.NewNotificationService(st, hub, logger)

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         st,
		sessions:      userservice.NewSessionManager(cfg.SessionTTL),
		userService:   userservice.NewUserService(st),
		blogService:   blogservice.NewBlogService(st, notifier),
		notifyService: notifier,
		hub:           hub,
	}

	err = app.serve(fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
