// Package minutes owns the Minutes of Meeting document format: the markdown
// skeleton sent to the model, the placeholder substitution applied to its
// reply, boilerplate stripping, and conversion to plain text for copying.
//
// Placeholder substitution is a literal string replace. Prose generated by
// the model that happens to contain a placeholder token is rewritten too.
package minutes
