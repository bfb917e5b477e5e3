package handlers

import (
	"net/http"

	"github.com/cichowlasp/s3-demo/internal/logs"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type LogsHandler struct {
	poller *logs.Poller
}

func NewLogsHandler(poller *logs.Poller) *LogsHandler {
	return &LogsHandler{poller: poller}
}

// GetLogs polls the notification queue once and returns the normalized
// entries for this cycle
func (h *LogsHandler) GetLogs(c *gin.Context) {
	entries, err := h.poller.Poll(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("log poll failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Failed to fetch logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "logs": entries})
}
