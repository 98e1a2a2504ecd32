// Package redact provides utilities for redacting sensitive information from strings
// before they are logged, returned in error responses, or embedded in stored
// documents. Provider error messages regularly echo API keys and bearer tokens
// back to the caller; this package keeps those out of logs and generated minutes.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Precompiled rules. Order matters: the more specific provider key shapes run
// before the generic key=value rule.
var (
	// OpenAI (sk-..., sk-proj-...) and Anthropic (sk-ant-...) secret keys
	providerKeyRegex = regexp.MustCompile(`\bsk-[A-Za-z0-9_\-*]{8,}`)
	// Google API keys
	googleKeyRegex = regexp.MustCompile(`\bAIza[0-9A-Za-z_\-]{20,}`)
	// Authorization headers echoed in transport errors
	bearerRegex = regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/=]{8,}`)
	// JWT token pattern - matches the standard three-part base64url-encoded JWT token format
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(
		`(?i)(api[_-]?key|x-api-key|token|secret)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	unixPathRegex = regexp.MustCompile(`(^|[\s"'=])(/[\w.-]+){2,}`)

	credentialRules = []rule{
		{providerKeyRegex, RedactedKeyPlaceholder},
		{googleKeyRegex, RedactedKeyPlaceholder},
		{bearerRegex, RedactedCredentialPlaceholder},
		{jwtTokenRegex, "[REDACTED_JWT]"},
		{passwordRegex, RedactedCredentialPlaceholder},
		{apiKeyRegex, RedactedKeyPlaceholder},
	}

	allRules = append(append([]rule{}, credentialRules...),
		rule{emailRegex, "[REDACTED_EMAIL]"},
		rule{unixPathRegex, "${1}" + RedactedPathPlaceholder},
	)
)

func apply(input string, rules []rule) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// String redacts sensitive information from the input string: credentials,
// email addresses, and filesystem paths.
func String(input string) string {
	return apply(input, allRules)
}

// Credentials redacts only secrets (API keys, tokens, passwords). It keeps
// the rest of the message readable, which is what a user-facing diagnostic
// needs.
func Credentials(input string) string {
	return apply(input, credentialRules)
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
