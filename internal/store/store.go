package store

import (
	"context"

	"github.com/phrazzld/mom-agent/internal/domain"
)

// ProjectStore defines persistence for projects.
type ProjectStore interface {
	// ListProjects returns the names of all projects, sorted.
	ListProjects(ctx context.Context) ([]string, error)

	// CreateProject stores a new project.
	// Returns ErrProjectExists if a project with the same name exists.
	CreateProject(ctx context.Context, project *domain.Project) error

	// GetProject loads a project by name.
	// Returns ErrProjectNotFound if it does not exist.
	GetProject(ctx context.Context, name string) (*domain.Project, error)

	// DeleteProject removes the project and all of its meetings.
	// Returns ErrProjectNotFound if it does not exist.
	DeleteProject(ctx context.Context, name string) error
}

// MeetingStore defines persistence for meetings within a project.
type MeetingStore interface {
	// ListMeetings returns the project's meetings, newest first by date.
	// Unreadable meeting files are skipped.
	// Returns ErrProjectNotFound if the project does not exist.
	ListMeetings(ctx context.Context, project string) ([]*domain.Meeting, error)

	// CreateMeeting stores a new meeting.
	// Returns ErrMeetingExists if the ID is already taken.
	CreateMeeting(ctx context.Context, project string, meeting *domain.Meeting) error

	// GetMeeting loads one meeting.
	// Returns ErrMeetingNotFound if it does not exist.
	GetMeeting(ctx context.Context, project, id string) (*domain.Meeting, error)

	// SaveMeeting writes the meeting, replacing any previous content.
	SaveMeeting(ctx context.Context, project string, meeting *domain.Meeting) error

	// DeleteMeeting removes one meeting.
	// Returns ErrMeetingNotFound if it does not exist.
	DeleteMeeting(ctx context.Context, project, id string) error
}
