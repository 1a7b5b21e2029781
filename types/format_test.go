package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValid(t *testing.T) {
	valid := []Format{
		FormatMP3, FormatMP3048, FormatMP3064, FormatMP3128, FormatMP3192,
		FormatMP3240, FormatMP3320,
		FormatMP4, FormatMP4360, FormatMP4720, FormatMP41080, FormatMP41440,
		FormatMP42160,
	}
	for _, f := range valid {
		assert.True(t, f.Valid(), "format %s", f)
	}

	invalid := []Format{"", "mp3-999", "mp4-480", "ogg", "MP3-192", "mp3-", "webm-720"}
	for _, f := range invalid {
		assert.False(t, f.Valid(), "format %s", f)
	}
}

func TestFormatFamilies(t *testing.T) {
	assert.True(t, FormatMP3.Audio())
	assert.True(t, FormatMP3320.Audio())
	assert.False(t, FormatMP4.Audio())
	assert.False(t, FormatMP4720.Audio())

	assert.Equal(t, ".mp3", FormatMP3128.Ext())
	assert.Equal(t, ".mp4", FormatMP41080.Ext())
}

func TestFormatBitrate(t *testing.T) {
	assert.Equal(t, 192, FormatMP3.Bitrate(), "bare token uses the default bitrate")
	assert.Equal(t, 48, FormatMP3048.Bitrate())
	assert.Equal(t, 320, FormatMP3320.Bitrate())
	assert.Equal(t, 0, FormatMP4720.Bitrate())
}

func TestFormatHeight(t *testing.T) {
	assert.Equal(t, 0, FormatMP4.Height(), "bare token has no ceiling")
	assert.Equal(t, 360, FormatMP4360.Height())
	assert.Equal(t, 2160, FormatMP42160.Height())
	assert.Equal(t, 0, FormatMP3192.Height())
}
