package ytdlp

import "regexp"

// Short-form links carry the video id as a bare path segment instead of the
// canonical watch?v= query parameter.
var shortFormRe = regexp.MustCompile(`^(?:(https?)://)?(?:www\.)?youtu\.be/([\w-]+)`)

// NormalizeURL rewrites short-form youtu.be links to the canonical
// query-parameter form, keeping the original scheme (https when none was
// given). URLs already in canonical form pass through untouched, so the
// rewrite is idempotent.
func NormalizeURL(raw string) string {
	m := shortFormRe.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}

	scheme := m[1]
	if scheme == "" {
		scheme = "https"
	}

	return scheme + "://www.youtube.com/watch?v=" + m[2]
}
