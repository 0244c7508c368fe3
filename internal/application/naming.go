package application

import (
	"fmt"
	"strings"
	"time"
)

// screenshotName encodes page, variant and capture time so repeated runs
// never overwrite each other.
func screenshotName(url, variant string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%d.png", sanitize(url), sanitize(variant), at.UnixMilli())
}

// sanitize reduces s to [a-zA-Z0-9-] with underscores in place of anything
// else. The site root becomes "root".
func sanitize(s string) string {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	s = strings.Trim(s, "/")
	if s == "" {
		return "root"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
