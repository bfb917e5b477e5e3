package api

import (
	"strings"
	"time"

	"github.com/cichowlasp/s3-demo/internal/api/handlers"
	"github.com/cichowlasp/s3-demo/internal/api/middleware"
	"github.com/cichowlasp/s3-demo/internal/logs"
	"github.com/cichowlasp/s3-demo/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Files  *service.FileService
	Poller *logs.Poller
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalized, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalized) > 0 {
			corsConfig.AllowOrigins = normalized
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if services != nil {
		if services.Poller != nil {
			logsHandler := handlers.NewLogsHandler(services.Poller)
			router.GET("/logs", logsHandler.GetLogs)
		}

		if services.Files != nil {
			filesHandler := handlers.NewFilesHandler(services.Files)
			router.GET("/files", filesHandler.ListFiles)
			router.POST("/files", filesHandler.UploadFiles)
			router.DELETE("/files", filesHandler.DeleteFile)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
