// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts the meeting service to JSON over HTTP.
package api
