// Package generation turns a meeting transcript into Minutes of Meeting by
// prompting a language model.
//
// The package owns the provider-neutral parts of the pipeline: prompt
// assembly, the ordered model fallback loop, error classification for
// telemetry, the connectivity probe and the diagnostic document returned when
// every model fails. Concrete providers live under internal/platform and
// implement Completer.
package generation
