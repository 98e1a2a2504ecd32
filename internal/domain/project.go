package domain

import (
	"strings"
	"time"
)

// ProjectCreatedLayout is the layout of Project.CreatedDate on disk.
const ProjectCreatedLayout = "2006-01-02T15:04:05.000000"

// Project groups meetings. A project is identified by its name, which doubles
// as its directory name in the file store.
type Project struct {
	Name        string     `json:"name"`
	CreatedDate string     `json:"created_date"`
	Meetings    []*Meeting `json:"meetings"`
}

// NewProject creates a Project after trimming and validating the name.
func NewProject(name string, now time.Time) (*Project, error) {
	name = strings.TrimSpace(name)
	if err := ValidateProjectName(name); err != nil {
		return nil, err
	}

	return &Project{
		Name:        name,
		CreatedDate: now.Format(ProjectCreatedLayout),
		Meetings:    []*Meeting{},
	}, nil
}

// ValidateProjectName rejects names that cannot be used safely as a single
// directory name.
func ValidateProjectName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return NewValidationError("project name", "cannot be empty", ErrEmptyContent)
	case name == "." || name == "..":
		return NewValidationError("project name", "is reserved", ErrInvalidID)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0):
		return NewValidationError("project name", "cannot contain path separators", ErrInvalidID)
	}
	return nil
}
