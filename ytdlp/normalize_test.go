package ytdlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "short form with https",
			input:    "https://youtu.be/dQw4w9WgXcQ",
			expected: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:     "short form with http keeps scheme",
			input:    "http://youtu.be/dQw4w9WgXcQ",
			expected: "http://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:     "short form without scheme defaults to https",
			input:    "youtu.be/dQw4w9WgXcQ",
			expected: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:     "short form with www prefix",
			input:    "https://www.youtu.be/dQw4w9WgXcQ",
			expected: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:     "canonical form passes through",
			input:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:     "unrelated URL passes through",
			input:    "https://example.com/video/123",
			expected: "https://example.com/video/123",
		},
		{
			name:     "id with dash and underscore",
			input:    "https://youtu.be/a-b_c123",
			expected: "https://www.youtube.com/watch?v=a-b_c123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeURL(tt.input))
		})
	}
}

// Normalizing an already-normalized URL must be a no-op.
func TestNormalizeURLIdempotent(t *testing.T) {
	inputs := []string{
		"https://youtu.be/dQw4w9WgXcQ",
		"youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://vimeo.com/12345",
	}

	for _, input := range inputs {
		once := NormalizeURL(input)
		twice := NormalizeURL(once)
		assert.Equal(t, once, twice, "input %q", input)
	}
}
