package ytdlp

import (
	"regexp"
	"strconv"
	"strings"

	"ytconv/types"
)

var percentRe = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)%`)

// Post-processor stages that mark the end of the transfer phase.
var postProcessPrefixes = []string{"[ExtractAudio]", "[Merger]", "[VideoRemuxer]", "[FixupM4a]"}

// ParseProgressLine interprets one line of yt-dlp output and reports whether
// it carried a usable progress signal. The tool's output format is not a
// contract we control: lines that cannot be parsed are dropped, never fatal.
func ParseProgressLine(line string) (types.ProgressEvent, bool) {
	line = strings.TrimSpace(line)

	for _, prefix := range postProcessPrefixes {
		if strings.HasPrefix(line, prefix) {
			return types.ProgressEvent{Percent: 100, Finished: true}, true
		}
	}

	if !strings.HasPrefix(line, "[download]") {
		return types.ProgressEvent{}, false
	}

	if strings.Contains(line, "has already been downloaded") {
		return types.ProgressEvent{Percent: 100, Finished: true}, true
	}

	m := percentRe.FindStringSubmatch(line)
	if m == nil {
		return types.ProgressEvent{}, false
	}

	percent, err := strconv.ParseFloat(m[1], 64)
	if err != nil || percent < 0 || percent > 100 {
		return types.ProgressEvent{}, false
	}

	if percent == 100 {
		return types.ProgressEvent{Percent: 100, Finished: true}, true
	}
	return types.ProgressEvent{Percent: percent}, true
}
