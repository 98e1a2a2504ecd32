// Package domain contains the core entities of the application: projects and
// the meetings recorded under them. It is independent of how those entities
// are stored or presented.
package domain
