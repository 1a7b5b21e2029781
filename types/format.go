package types

import (
	"strconv"
	"strings"
)

// Format is a client-facing output format token: an audio bitrate variant
// or a video resolution-ceiling variant.
type Format string

const (
	FormatMP3    Format = "mp3" // legacy alias for mp3-192
	FormatMP3048 Format = "mp3-48"
	FormatMP3064 Format = "mp3-64"
	FormatMP3128 Format = "mp3-128"
	FormatMP3192 Format = "mp3-192"
	FormatMP3240 Format = "mp3-240"
	FormatMP3320 Format = "mp3-320"

	FormatMP4     Format = "mp4" // overall best, no resolution ceiling
	FormatMP4360  Format = "mp4-360"
	FormatMP4720  Format = "mp4-720"
	FormatMP41080 Format = "mp4-1080"
	FormatMP41440 Format = "mp4-1440"
	FormatMP42160 Format = "mp4-2160"
)

// DefaultAudioBitrate is used for the bare "mp3" token.
const DefaultAudioBitrate = 192

// Valid reports whether the token belongs to the recognized enumeration.
func (f Format) Valid() bool {
	switch f {
	case FormatMP3, FormatMP3048, FormatMP3064, FormatMP3128, FormatMP3192,
		FormatMP3240, FormatMP3320,
		FormatMP4, FormatMP4360, FormatMP4720, FormatMP41080, FormatMP41440,
		FormatMP42160:
		return true
	}
	return false
}

// Audio reports whether the token belongs to the audio family.
func (f Format) Audio() bool {
	return f == FormatMP3 || strings.HasPrefix(string(f), "mp3-")
}

// Ext returns the container extension implied by the token's family.
func (f Format) Ext() string {
	if f.Audio() {
		return ".mp3"
	}
	return ".mp4"
}

// Bitrate returns the target audio bitrate in kbps, or 0 for video tokens.
// Values are handed to the encoder as-is; they are not validated against
// codec limits here.
func (f Format) Bitrate() int {
	if !f.Audio() {
		return 0
	}
	if f == FormatMP3 {
		return DefaultAudioBitrate
	}
	n, err := strconv.Atoi(strings.TrimPrefix(string(f), "mp3-"))
	if err != nil {
		return DefaultAudioBitrate
	}
	return n
}

// Height returns the vertical resolution ceiling for video tokens, or 0
// when the token requests overall best (and for audio tokens).
func (f Format) Height() int {
	if f.Audio() || f == FormatMP4 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(string(f), "mp4-"))
	if err != nil {
		return 0
	}
	return n
}

// FormatDirective is the resolved, tool-facing instruction set for one job.
// It carries no identity and is recomputed per job.
type FormatDirective struct {
	Selector       string // quality selector handed to the extraction tool
	AudioCodec     string // post-processing re-encode target, empty for video
	AudioBitrate   int    // kbps, 0 when there is no re-encode step
	MergeFormat    string // merge container for video output, empty for audio
	OutputTemplate string // output filename template with the token embedded
	Ext            string // expected extension of the produced file
}

// ProgressEvent is one progress signal emitted by the extraction tool while
// a download runs.
type ProgressEvent struct {
	Percent  float64 // fraction of the transfer, 0-100
	Finished bool    // transfer done, post-processing started
}
