package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytconv/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine scripts the extraction tool for converter tests. When
// writeOutput is set, Download drops a file where the directive's output
// template points, the way the real tool does.
type fakeEngine struct {
	info        types.VideoInfo
	infoErr     error
	downloadErr error
	writeOutput bool
	events      []types.ProgressEvent
}

func (e *fakeEngine) FetchInfo(ctx context.Context, url string) (types.VideoInfo, error) {
	if e.infoErr != nil {
		return types.VideoInfo{}, e.infoErr
	}
	return e.info, nil
}

func (e *fakeEngine) Download(ctx context.Context, url string, d types.FormatDirective, progress func(types.ProgressEvent)) error {
	for _, evt := range e.events {
		if progress != nil {
			progress(evt)
		}
	}
	if e.downloadErr != nil {
		return e.downloadErr
	}
	if e.writeOutput {
		name := strings.ReplaceAll(d.OutputTemplate, "%(id)s", e.info.VideoID)
		name = strings.ReplaceAll(name, ".%(ext)s", d.Ext)
		if err := os.WriteFile(name, []byte("media"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func TestConverterRunSuccess(t *testing.T) {
	dir := t.TempDir()
	store := NewJobStore(nil)
	engine := &fakeEngine{
		info:        types.VideoInfo{Title: "Test Video", VideoID: "abc123"},
		writeOutput: true,
		events: []types.ProgressEvent{
			{Percent: 50},
			{Percent: 100, Finished: true},
		},
	}
	converter := NewConverter(store, engine, dir)

	job := store.Create(types.FormatMP3128)
	converter.Run(context.Background(), job.ID, "https://youtu.be/abc123", types.FormatMP3128)

	got, exists := store.Get(job.ID)
	require.True(t, exists)
	assert.Equal(t, types.JobStatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, "Test Video", got.Title)
	assert.Equal(t, filepath.Join(dir, "abc123_mp3-128.mp3"), got.OutputPath)
	assert.Empty(t, got.Error)

	_, err := os.Stat(got.OutputPath)
	assert.NoError(t, err)
}

func TestConverterRunMetadataFailure(t *testing.T) {
	store := NewJobStore(nil)
	engine := &fakeEngine{infoErr: errors.New("failed to fetch video info: Video unavailable")}
	converter := NewConverter(store, engine, t.TempDir())

	job := store.Create(types.FormatMP3192)
	converter.Run(context.Background(), job.ID, "https://youtu.be/gone", types.FormatMP3192)

	got, _ := store.Get(job.ID)
	assert.Equal(t, types.JobStatusFailed, got.Status)
	assert.Equal(t, "failed to fetch video info: Video unavailable", got.Error)
	assert.Empty(t, got.OutputPath)
}

// The tool's failure reason must reach the client verbatim.
func TestConverterRunDownloadFailure(t *testing.T) {
	store := NewJobStore(nil)
	engine := &fakeEngine{
		info:        types.VideoInfo{Title: "Test Video", VideoID: "abc123"},
		downloadErr: errors.New("yt-dlp: ERROR: This video is drm protected"),
	}
	converter := NewConverter(store, engine, t.TempDir())

	job := store.Create(types.FormatMP4720)
	converter.Run(context.Background(), job.ID, "https://youtu.be/abc123", types.FormatMP4720)

	got, _ := store.Get(job.ID)
	assert.Equal(t, types.JobStatusFailed, got.Status)
	assert.Equal(t, "yt-dlp: ERROR: This video is drm protected", got.Error)
}

// A clean tool exit with no file on disk is still a failed job.
func TestConverterRunOutputMissing(t *testing.T) {
	store := NewJobStore(nil)
	engine := &fakeEngine{
		info:        types.VideoInfo{Title: "Test Video", VideoID: "abc123"},
		writeOutput: false,
	}
	converter := NewConverter(store, engine, t.TempDir())

	job := store.Create(types.FormatMP3192)
	converter.Run(context.Background(), job.ID, "https://youtu.be/abc123", types.FormatMP3192)

	got, _ := store.Get(job.ID)
	assert.Equal(t, types.JobStatusFailed, got.Status)
	assert.Equal(t, ErrOutputNotFound.Error(), got.Error)
}

// recordingStore captures every progress update the converter pushes.
type recordingStore struct {
	JobStore
	progress []int
	messages []string
}

func (r *recordingStore) SetProgress(id string, progress int, message string) {
	r.progress = append(r.progress, progress)
	r.messages = append(r.messages, message)
	r.JobStore.SetProgress(id, progress, message)
}

// Transfer percent maps into 0-80 and post-processing pins 85 with a
// "Processing..." message.
func TestConverterProgressMapping(t *testing.T) {
	dir := t.TempDir()
	store := &recordingStore{JobStore: NewJobStore(nil)}
	engine := &fakeEngine{
		info:        types.VideoInfo{Title: "Test Video", VideoID: "abc123"},
		writeOutput: true,
		events: []types.ProgressEvent{
			{Percent: 25},
			{Percent: 99.9},
			{Percent: 100, Finished: true},
		},
	}
	converter := NewConverter(store, engine, dir)

	job := store.Create(types.FormatMP3192)
	converter.Run(context.Background(), job.ID, "https://youtu.be/abc123", types.FormatMP3192)

	require.Equal(t, []int{20, 79, 85}, store.progress)
	assert.Equal(t, "Downloading... 25.0%", store.messages[0])
	assert.Equal(t, "Downloading... 99.9%", store.messages[1])
	assert.Equal(t, "Processing...", store.messages[2])

	got, _ := store.Get(job.ID)
	assert.Equal(t, types.JobStatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
}
