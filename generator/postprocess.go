package generator

import (
	"regexp"
	"strings"
)

var outerFenceRe = regexp.MustCompile("(?s)\\A```(?:markdown|md)[ \\t]*\\n(.*)\\n```\\z")

// PostProcess trims the answer and unwraps an outer ```markdown fence.
func PostProcess(raw string) string {
	md := strings.TrimSpace(raw)
	if m := outerFenceRe.FindStringSubmatch(md); m != nil {
		return strings.TrimSpace(m[1])
	}
	return md
}

var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// ExtractTitle returns the first level-one heading of md, if any.
func ExtractTitle(md string) string {
	m := titleRe.FindStringSubmatch(md)
	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}
