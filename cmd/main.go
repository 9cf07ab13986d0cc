package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"

	"cottageplayer/internal/auth"
	"cottageplayer/internal/config"
	"cottageplayer/internal/database"
	"cottageplayer/internal/handlers"
	"cottageplayer/internal/repository"
	"cottageplayer/internal/services"
	"cottageplayer/internal/storage"
	"cottageplayer/internal/utils"
)

func main() {
	// load config
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	// logger
	logger, err := utils.NewLogger(dev, cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// database
	db, err := database.Open(cfg.DB.Path)
	if err != nil {
		logger.Fatalf("database init: %v", err)
	}

	// repositories
	users := repository.NewUserRepo(db)
	media := repository.NewMediaRepo(db)
	playlists := repository.NewPlaylistRepo(db)

	// media root
	store, err := storage.NewDiskStore(cfg.Storage.MediaRoot, logger)
	if err != nil {
		logger.Fatalf("storage init: %v", err)
	}

	// services
	accountSvc := services.NewAccountService(users, logger)
	mediaSvc := services.NewMediaService(media, store, logger)
	playlistSvc := services.NewPlaylistService(playlists)
	librarySvc := services.NewLibraryService(cfg.Library)

	// bootstrap admins
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := accountSvc.InitAdmins(ctx, cfg.Auth.AdminEmails()); err != nil {
		cancel()
		logger.Fatalf("bootstrap admins: %v", err)
	}
	cancel()

	// auth
	sessions := auth.NewSessionManager()
	resolver := auth.NewGoogleResolver(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	states := auth.NewStateSigner(cfg.Auth.SessionSecret, cfg.StateTTL)

	// fiber app & routes
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxUploadBytes()),
	})
	app.Use(handlers.RequestLogger(logger))

	h := handlers.New(cfg, accountSvc, mediaSvc, playlistSvc, librarySvc, store, sessions, resolver, states, logger)
	handlers.Setup(app, h, sessions)

	// start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("starting %s on %s", cfg.App.Name, addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutdown requested")

	_ = app.ShutdownWithTimeout(cfg.ShutdownTimeout)
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("shutdown completed")
}
