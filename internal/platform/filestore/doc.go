// Package filestore implements the store interfaces on a filesystem
// abstracted by afero. Each project is a directory under the data root holding
// project.json and one meeting_<id>.json file per meeting.
//
// Writes go to a temporary file in the same directory followed by a rename,
// so a reader never observes a half-written document. A mutex serializes
// mutations made through one Store; concurrent processes get last write wins.
package filestore
