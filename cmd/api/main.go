package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/xarvis-voice/internal/app"
	"github.com/xpanvictor/xarvis-voice/internal/config"
	"github.com/xpanvictor/xarvis-voice/internal/server"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
)

// @title           Xarvis Voice API
// @version         1.0
// @description     Voice conversation backend for animated characters: audio in, sentence-by-sentence text, speech and lip-sync cues out.
// @BasePath        /
// @schemes         http https

// This is the main entry point for the API server.
// Loads in all system components
// Exposes functionalities
func main() {
	// fetch cfg
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// load global logger
	logger := Logger.New(cfg.Debug)
	logger.Info("Logger initialized")
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(rootCtx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize application: %v", err)
	}
	go application.RunBackground(rootCtx)

	// compose router
	router := gin.New()
	server.InitializeRoutes(router, application.ServerDeps)

	// listen with graceful exit
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router.Handler(),
	}
	go func() {
		logger.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server exiting %v", err)
		}
	}()

	<-rootCtx.Done()
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("HTTP shutdown: %v", err)
	}
	if err := application.Shutdown(ctx); err != nil {
		logger.Errorf("Application shutdown: %v", err)
	}
	logger.Info("Shutdown system")
	_ = logger.Sync()
}
