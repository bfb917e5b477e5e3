package handlers

import (
	"fmt"
	"net/http"

	"github.com/cichowlasp/s3-demo/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type FilesHandler struct {
	files *service.FileService
}

func NewFilesHandler(files *service.FileService) *FilesHandler {
	return &FilesHandler{files: files}
}

// ListFiles returns every stored object with a temporary download URL
func (h *FilesHandler) ListFiles(c *gin.Context) {
	files, err := h.files.ListFiles(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list files")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "files": files})
}

// UploadFiles stores one or more files from a multipart form
func (h *FilesHandler) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No files provided"})
		return
	}

	stored, err := h.files.UploadFiles(c.Request.Context(), files)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload files")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upload files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("%d file(s) uploaded", len(stored)),
		"files":   stored,
	})
}

// DeleteFile removes a stored object by its id
func (h *FilesHandler) DeleteFile(c *gin.Context) {
	var req struct {
		FileID string `json:"fileId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "fileId is required"})
		return
	}

	if err := h.files.DeleteFile(c.Request.Context(), req.FileID); err != nil {
		log.Error().Err(err).Str("fileId", req.FileID).Msg("failed to delete file")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted"})
}
