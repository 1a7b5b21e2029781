package handlers

import (
	"log"
	"net/http"

	"ytconv/services"

	"github.com/gin-gonic/gin"
)

// FileHandler handles converted file listing endpoints
type FileHandler struct {
	fileService services.FileService
	outputDir   string
}

// NewFileHandler creates a new file handler
func NewFileHandler(fs services.FileService, outputDir string) *FileHandler {
	return &FileHandler{
		fileService: fs,
		outputDir:   outputDir,
	}
}

// ListFiles returns a list of all converted files still on disk
func (h *FileHandler) ListFiles(c *gin.Context) {
	files, err := h.fileService.ListFiles(h.outputDir)
	if err != nil {
		log.Printf("Error scanning converted files: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to scan files",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files": files,
		"count": len(files),
	})
}
