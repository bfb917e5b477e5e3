package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cichowlasp/s3-demo/internal/api"
	"github.com/cichowlasp/s3-demo/internal/cache"
	"github.com/cichowlasp/s3-demo/internal/config"
	"github.com/cichowlasp/s3-demo/internal/logs"
	"github.com/cichowlasp/s3-demo/internal/queue"
	"github.com/cichowlasp/s3-demo/internal/service"
	"github.com/cichowlasp/s3-demo/internal/storage"
	"github.com/cichowlasp/s3-demo/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize object storage
	store, err := storage.NewS3Client(storage.S3Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.S3.Region,
		UseSSL:    cfg.S3.UseSSL,
	})
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	// The queue is optional; without it the log view shows placeholder
	// guidance entries.
	var receiver queue.Receiver
	if cfg.Queue.URL != "" {
		sqsQueue, err := queue.NewSQSQueue(context.Background(), cfg.Queue.URL, cfg.Queue.Region)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize queue client")
		}
		receiver = sqsQueue
	} else {
		logger.Log.Warn().Msg("SQS_QUEUE_URL not set, log streaming disabled")
	}

	fileCache, err := cache.NewFileListCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("File listing cache unavailable, continuing without it")
		fileCache = cache.NewNoopFileListCache()
	}

	// Initialize services
	services := &api.Services{
		Files:  service.NewFileService(store, fileCache, time.Duration(cfg.S3.PresignTTLSecond)*time.Second),
		Poller: logs.NewPoller(receiver, cfg.Logs.MaxMessages, cfg.Logs.WaitSeconds),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("bucket", cfg.S3.Bucket).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
