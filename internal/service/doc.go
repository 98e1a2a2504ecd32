// Package service orchestrates projects, meetings and minutes generation on
// top of the store contracts and a MinutesGenerator.
package service
