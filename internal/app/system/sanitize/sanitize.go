// Package sanitize strips markup from user-supplied free text before it is
// stored. Contact notes, workspace messages, and descriptions are rendered
// by multiple clients, so markup is removed at write time rather than
// trusting every reader to escape.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}

// Slice sanitizes each element in place and drops entries that become
// empty, returning the filtered slice.
func Slice(ss []string) []string {
	out := ss[:0]
	for _, s := range ss {
		if clean := Text(s); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
