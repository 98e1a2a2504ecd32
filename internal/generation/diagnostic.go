package generation

import (
	"strings"

	"github.com/phrazzld/mom-agent/internal/minutes"
	"github.com/phrazzld/mom-agent/internal/redact"
)

// DiagnosticDocument renders the minutes-shaped failure report returned when
// every model in the sequence failed. Credentials in lastErr are masked.
func DiagnosticDocument(provider, projectName, date string, lastErr error, models []string) string {
	lastError := "unknown error"
	if lastErr != nil {
		lastError = redact.Credentials(lastErr.Error())
	}

	var b strings.Builder
	b.WriteString(minutes.Heading)
	b.WriteString("\n\n**Project Name:** ")
	b.WriteString(minutes.ProjectNameOrDefault(projectName))
	b.WriteString("\n**Meeting Date:** ")
	b.WriteString(date)
	b.WriteString("\n\n**Error:** All ")
	b.WriteString(provider)
	b.WriteString(" models failed\n**Last Error:** ")
	b.WriteString(lastError)
	b.WriteString("\n\n**Tried Models:** ")
	b.WriteString(strings.Join(models, ", "))
	b.WriteString("\n\nPlease check your API key or try again later.")
	return b.String()
}
