package chat

import (
	"regexp"
	"strings"
)

// Voice responses are read aloud, so markdown decoration has to go
// before the text reaches the speech synthesizer.

var (
	mdLink      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdHeading   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdBold      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	mdItalic    = regexp.MustCompile(`(?:^|[^*])\*([^*]+)\*`)
	mdCode      = regexp.MustCompile("`([^`]*)`")
	mdBullet    = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	mdNumbered  = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	mdExtraWS   = regexp.MustCompile(`[ \t]{2,}`)
	mdBlankRuns = regexp.MustCompile(`\n{3,}`)
)

// StripMarkdown flattens markdown formatting into plain speech text
func StripMarkdown(s string) string {
	s = mdLink.ReplaceAllString(s, "$1")
	s = mdHeading.ReplaceAllString(s, "")
	s = mdBold.ReplaceAllString(s, "$1")
	s = mdCode.ReplaceAllString(s, "$1")
	s = mdBullet.ReplaceAllString(s, "")
	s = mdNumbered.ReplaceAllString(s, "")

	// Italic runs after bold so single stars left behind get caught
	s = mdItalic.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, "*", "")
	})
	s = strings.ReplaceAll(s, "_", "")

	s = mdExtraWS.ReplaceAllString(s, " ")
	s = mdBlankRuns.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
