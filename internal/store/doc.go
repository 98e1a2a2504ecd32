// Package store defines the persistence contracts for projects and meetings.
// Implementations live under internal/platform; the service layer depends only
// on these interfaces and the sentinel errors below.
package store
