package services

import (
	"fmt"
	"path/filepath"

	"ytconv/types"
)

// FormatPolicy resolves client format tokens into tool-facing directives.
// Pure computation over its inputs; no state beyond the output directory.
type FormatPolicy struct {
	OutputDir string
}

// Resolve builds the extraction directive for a format token. The source URL
// is accepted as a domain hint: selection used to branch into a stricter,
// no-fallback selector for youtube.com, but both branches were unified on
// the fallback chain so limited-catalog sources never fail on an exact
// resolution miss.
func (p FormatPolicy) Resolve(format types.Format, sourceURL string) types.FormatDirective {
	_ = sourceURL

	// The token goes into the filename so two formats of the same source
	// never overwrite each other.
	outtmpl := filepath.Join(p.OutputDir, "%(id)s_"+string(format)+".%(ext)s")

	if format.Audio() {
		return types.FormatDirective{
			Selector:       "bestaudio/best",
			AudioCodec:     "mp3",
			AudioBitrate:   format.Bitrate(),
			OutputTemplate: outtmpl,
			Ext:            ".mp3",
		}
	}

	selector := "bestvideo+bestaudio/best"
	if h := format.Height(); h > 0 {
		selector = fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]/best", h, h)
	}

	return types.FormatDirective{
		Selector:       selector,
		MergeFormat:    "mp4",
		OutputTemplate: outtmpl,
		Ext:            ".mp4",
	}
}
