// Package middleware provides HTTP middleware for the api router.
package middleware
