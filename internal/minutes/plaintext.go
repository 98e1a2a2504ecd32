package minutes

import (
	"regexp"
	"strings"
)

var (
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern    = regexp.MustCompile(`\*(.*?)\*`)
	openBoxPattern   = regexp.MustCompile(`- \[ \] `)
	closedBoxPattern = regexp.MustCompile(`- \[x\] `)
	bulletPattern    = regexp.MustCompile(`(?m)^- `)
)

// Bullet is the glyph plain-text output uses for list items.
const Bullet = "• "

// PlainText converts minutes markdown into text suitable for pasting into
// email or chat: emphasis markers go, checkboxes and dash bullets become
// bullet glyphs, numbered lists stay.
func PlainText(markdown string) string {
	if markdown == "" {
		return ""
	}

	text := boldPattern.ReplaceAllString(markdown, "$1")
	text = italicPattern.ReplaceAllString(text, "$1")
	text = openBoxPattern.ReplaceAllString(text, Bullet)
	text = closedBoxPattern.ReplaceAllString(text, Bullet)
	text = bulletPattern.ReplaceAllString(text, Bullet)

	return strings.TrimSpace(text)
}
