// Package gemini implements generation.Completer on top of Google's Gemini
// API through the google.golang.org/genai client.
//
// System messages are sent as the request's system instruction; the remaining
// messages become the conversation contents. Responses stopped by safety
// filters are reported as generation.ErrContentBlocked.
package gemini
