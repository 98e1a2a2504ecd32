package minutes

import "strings"

// boilerplatePrefixes are introductions models tend to add despite being told
// not to. Matching is case-sensitive and on the exact prefix.
var boilerplatePrefixes = []string{
	"Here are the Minutes of Meeting based on the provided transcript:",
	"Based on the provided transcript, here are the Minutes of Meeting:",
	"Here is the structured Minutes of Meeting:",
	"Based on the transcript:",
	"Here are the minutes:",
}

// BoilerplatePrefixes returns a copy of the prefixes Sanitize strips.
func BoilerplatePrefixes() []string {
	out := make([]string, len(boilerplatePrefixes))
	copy(out, boilerplatePrefixes)
	return out
}

// Sanitize strips a known introductory prefix from a model reply and
// resolves any placeholders the model echoed instead of filling in.
// A reply without a known prefix is left as received apart from
// substitution.
func Sanitize(raw, projectName, date string) string {
	content := raw
	trimmed := strings.TrimSpace(raw)
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			content = strings.TrimSpace(trimmed[len(prefix):])
			break
		}
	}

	return Substitute(content, projectName, date)
}
