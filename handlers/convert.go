package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"ytconv/services"
	"ytconv/types"
	"ytconv/websocket"

	"github.com/gin-gonic/gin"
)

// ConvertHandler handles conversion job endpoints
type ConvertHandler struct {
	store       services.JobStore
	converter   *services.Converter
	engine      services.Engine
	fileService services.FileService
	hub         websocket.Hub
}

// NewConvertHandler creates a new conversion handler
func NewConvertHandler(store services.JobStore, converter *services.Converter, engine services.Engine, fs services.FileService, hub websocket.Hub) *ConvertHandler {
	return &ConvertHandler{
		store:       store,
		converter:   converter,
		engine:      engine,
		fileService: fs,
		hub:         hub,
	}
}

// Info resolves metadata for a media URL without starting a conversion
func (h *ConvertHandler) Info(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "url parameter is required",
		})
		return
	}

	info, err := h.engine.FetchInfo(c.Request.Context(), url)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, info)
}

// Convert accepts a conversion request and starts a background job
func (h *ConvertHandler) Convert(c *gin.Context) {
	var req types.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "url and format are required",
		})
		return
	}

	format := types.Format(req.Format)
	if !format.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("unsupported format: %s", req.Format),
		})
		return
	}

	// Validate the URL up front so unreachable sources fail the request
	// instead of a job nobody is watching yet.
	if _, err := h.engine.FetchInfo(c.Request.Context(), req.URL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	job := h.store.Create(format)
	go h.converter.Run(context.Background(), job.ID, req.URL, format)

	c.JSON(http.StatusAccepted, types.ConvertResponse{
		JobID:   job.ID,
		Message: "Conversion started",
	})
}

// Status returns the current state of a conversion job
func (h *ConvertHandler) Status(c *gin.Context) {
	jobID := c.Param("jobId")
	job, exists := h.store.Get(jobID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"error": services.ErrJobNotFound.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// Download serves the converted file of a completed job
func (h *ConvertHandler) Download(c *gin.Context) {
	jobID := c.Param("jobId")
	job, exists := h.store.Get(jobID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"error": services.ErrJobNotFound.Error(),
		})
		return
	}

	if job.Status != types.JobStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("job is not completed (status: %s)", job.Status),
		})
		return
	}

	// The retention sweeper may have reclaimed the file since completion.
	if _, err := os.Stat(job.OutputPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "file not found",
		})
		return
	}

	ext := filepath.Ext(job.OutputPath)
	filename := services.SanitizeTitle(job.Title)
	if filename == "" {
		filename = filepath.Base(job.OutputPath)
	} else {
		filename += ext
	}

	c.Header("Content-Type", h.fileService.GetContentType(job.OutputPath))
	c.FileAttachment(job.OutputPath, filename)
}

// HandleWebSocketConnection handles WebSocket connections for specific job progress
func (h *ConvertHandler) HandleWebSocketConnection(c *gin.Context) {
	jobID := c.Param("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job ID is required"})
		return
	}

	// Check if job exists
	if _, exists := h.store.Get(jobID); !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrJobNotFound.Error()})
		return
	}

	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, jobID)
	h.hub.RegisterClient(client)

	// Start client pumps
	client.StartPumps()
}

// HandleWebSocketAllConnection handles WebSocket connections for all job progress
func (h *ConvertHandler) HandleWebSocketAllConnection(c *gin.Context) {
	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, "all")
	h.hub.RegisterClient(client)

	// Start client pumps
	client.StartPumps()
}
