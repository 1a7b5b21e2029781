package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"ytconv/types"
)

// Client drives the yt-dlp binary for metadata extraction and downloads.
type Client struct {
	bin string
}

// New creates a client for the given yt-dlp executable path. An empty path
// falls back to looking up "yt-dlp" on PATH.
func New(bin string) *Client {
	if bin == "" {
		bin = "yt-dlp"
	}
	return &Client{bin: bin}
}

// MetadataError reports that a URL could not be resolved upstream (invalid
// URL, removed or private media, unsupported source). It carries the tool's
// failure reason verbatim.
type MetadataError struct {
	Reason string
}

func (e *MetadataError) Error() string {
	return "failed to fetch video info: " + e.Reason
}

// rawInfo mirrors the subset of yt-dlp's JSON dump we consume.
type rawInfo struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Uploader  string  `json:"uploader"`
	Duration  float64 `json:"duration"`
	Thumbnail string  `json:"thumbnail"`
}

// FetchInfo retrieves metadata for a URL without transferring any media.
// The URL is normalized to its canonical form first.
func (c *Client) FetchInfo(ctx context.Context, url string) (types.VideoInfo, error) {
	url = NormalizeURL(url)

	cmd := exec.CommandContext(ctx, c.bin, "--dump-json", "--no-warnings", "--skip-download", url)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		reason := lastLine(stderr.String())
		if reason == "" {
			reason = err.Error()
		}
		return types.VideoInfo{}, &MetadataError{Reason: reason}
	}

	var raw rawInfo
	if err := json.Unmarshal(firstLine(stdout.Bytes()), &raw); err != nil {
		return types.VideoInfo{}, &MetadataError{Reason: "unreadable metadata: " + err.Error()}
	}

	info := types.VideoInfo{
		Title:     raw.Title,
		Channel:   raw.Uploader,
		Duration:  int(raw.Duration),
		Thumbnail: raw.Thumbnail,
		VideoID:   raw.ID,
	}
	if info.Title == "" {
		info.Title = "Unknown"
	}
	return info, nil
}

// Download runs yt-dlp with the resolved directive, forwarding progress
// events to the callback as the transfer proceeds. The produced file lands
// in the directory encoded in the directive's output template; yt-dlp does
// not report the final path, so callers locate it afterwards.
func (c *Client) Download(ctx context.Context, url string, d types.FormatDirective, progress func(types.ProgressEvent)) error {
	url = NormalizeURL(url)

	args := []string{
		"--newline",
		"--no-warnings",
		"--no-playlist",
		"-f", d.Selector,
		"-o", d.OutputTemplate,
	}
	if d.AudioCodec != "" {
		args = append(args,
			"-x",
			"--audio-format", d.AudioCodec,
			"--audio-quality", strconv.Itoa(d.AudioBitrate)+"K",
		)
	}
	if d.MergeFormat != "" {
		args = append(args, "--merge-output-format", d.MergeFormat)
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, c.bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("attaching to yt-dlp output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting yt-dlp: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		evt, ok := ParseProgressLine(scanner.Text())
		if ok && progress != nil {
			progress(evt)
		}
	}

	if err := cmd.Wait(); err != nil {
		reason := lastLine(stderr.String())
		if reason == "" {
			reason = err.Error()
		}
		return fmt.Errorf("yt-dlp: %s", reason)
	}
	return nil
}

// firstLine returns the first non-empty line; yt-dlp emits one JSON object
// per line even when an URL resolves to multiple entries.
func firstLine(out []byte) []byte {
	for _, line := range bytes.Split(out, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			return line
		}
	}
	return out
}

// lastLine returns the last non-empty line of the tool's stderr, which is
// where yt-dlp puts its "ERROR:" diagnostics.
func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
