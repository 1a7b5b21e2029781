package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"ytconv/handlers"
	"ytconv/services"
	"ytconv/types"
	ws "ytconv/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// fakeEngine stands in for the extraction tool in server tests. It resolves
// a fixed catalog of sources and writes a real file into the output
// directory on download.
type fakeEngine struct {
	catalog map[string]types.VideoInfo
	delay   time.Duration
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		catalog: map[string]types.VideoInfo{
			"https://www.youtube.com/watch?v=abc123": {
				Title:    "Test Video",
				Channel:  "Test Channel",
				Duration: 212,
				VideoID:  "abc123",
			},
		},
	}
}

func (e *fakeEngine) FetchInfo(ctx context.Context, url string) (types.VideoInfo, error) {
	info, ok := e.catalog[url]
	if !ok {
		return types.VideoInfo{}, errors.New("failed to fetch video info: Video unavailable")
	}
	return info, nil
}

func (e *fakeEngine) Download(ctx context.Context, url string, d types.FormatDirective, progress func(types.ProgressEvent)) error {
	info, ok := e.catalog[url]
	if !ok {
		return errors.New("yt-dlp: ERROR: Video unavailable")
	}

	if progress != nil {
		progress(types.ProgressEvent{Percent: 50})
		if e.delay > 0 {
			time.Sleep(e.delay)
		}
		progress(types.ProgressEvent{Percent: 100, Finished: true})
	}

	name := strings.ReplaceAll(d.OutputTemplate, "%(id)s", info.VideoID)
	name = strings.ReplaceAll(name, ".%(ext)s", d.Ext)
	return os.WriteFile(name, []byte("media-bytes"), 0o644)
}

// TestHelper provides utilities for testing the server
type TestHelper struct {
	Server    *httptest.Server
	OutputDir string
	Store     services.JobStore
	Engine    *fakeEngine
	Router    *gin.Engine
}

// NewTestHelper wires a full server around the fake engine.
func NewTestHelper(t *testing.T) *TestHelper {
	gin.SetMode(gin.TestMode)

	outputDir := t.TempDir()

	hub := ws.NewHub()
	go hub.Run()

	store := services.NewJobStore(hub)
	engine := newFakeEngine()
	converter := services.NewConverter(store, engine, outputDir)
	fileService := services.NewFileService()

	convertHandler := handlers.NewConvertHandler(store, converter, engine, fileService, hub)
	fileHandler := handlers.NewFileHandler(fileService, outputDir)
	healthHandler := handlers.NewHealthHandler(outputDir)

	router := gin.New()
	router.Use(gin.Recovery())
	setupRoutes(router, convertHandler, fileHandler, healthHandler)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestHelper{
		Server:    server,
		OutputDir: outputDir,
		Store:     store,
		Engine:    engine,
		Router:    router,
	}
}

// MakeRequest performs an HTTP request against the test server
func (h *TestHelper) MakeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, h.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// GetJSON performs a GET request and decodes the JSON response
func (h *TestHelper) GetJSON(t *testing.T, path string, target interface{}) *http.Response {
	resp := h.MakeRequest(t, "GET", path, nil)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	if target != nil {
		err = json.Unmarshal(body, target)
		require.NoError(t, err)
	}

	return resp
}

// PostJSON performs a POST request and decodes the JSON response
func (h *TestHelper) PostJSON(t *testing.T, path string, requestBody interface{}, target interface{}) *http.Response {
	resp := h.MakeRequest(t, "POST", path, requestBody)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	if target != nil {
		err = json.Unmarshal(body, target)
		require.NoError(t, err)
	}

	return resp
}

// WaitForJobCompletion polls a job until it reaches a terminal state
func (h *TestHelper) WaitForJobCompletion(t *testing.T, jobID string, timeout time.Duration) types.Job {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		var job types.Job
		resp := h.GetJSON(t, "/api/status/"+jobID, &job)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		if job.Status.Terminal() {
			return job
		}

		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("Job %s did not complete within timeout", jobID)
	return types.Job{}
}

// ConnectWebSocket opens a WebSocket connection to the test server
func (h *TestHelper) ConnectWebSocket(t *testing.T, path string) *websocket.Conn {
	wsURL := "ws" + h.Server.URL[4:] + path // Replace http:// with ws://

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	return conn
}
