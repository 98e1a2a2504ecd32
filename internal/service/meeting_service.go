package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/mom-agent/internal/domain"
	"github.com/phrazzld/mom-agent/internal/generation"
	"github.com/phrazzld/mom-agent/internal/platform/logger"
	"github.com/phrazzld/mom-agent/internal/redact"
	"github.com/phrazzld/mom-agent/internal/store"
)

// MaxContextMeetings bounds how many earlier meetings feed the project context.
const MaxContextMeetings = 5

// MinutesGenerator produces minutes from a transcript. generation.Service
// is the production implementation.
type MinutesGenerator interface {
	GenerateMoM(ctx context.Context, transcript, projectContext, projectName string) (string, error)
	TestConnection(ctx context.Context) bool
	Provider() string
	Models() []string
}

var _ MinutesGenerator = (*generation.Service)(nil)

// MeetingService provides project, meeting and minutes operations.
type MeetingService interface {
	ListProjects(ctx context.Context) ([]string, error)
	CreateProject(ctx context.Context, name string) (*domain.Project, error)
	DeleteProject(ctx context.Context, name string) error

	ListMeetings(ctx context.Context, project string) ([]*domain.Meeting, error)
	CreateMeeting(ctx context.Context, project, title string) (*domain.Meeting, error)
	GetMeeting(ctx context.Context, project, id string) (*domain.Meeting, error)
	DeleteMeeting(ctx context.Context, project, id string) error

	// SaveTranscript stores the transcript without generating anything.
	SaveTranscript(ctx context.Context, project, id, transcript string) (*domain.Meeting, error)

	// GenerateDraft stores transcript and the generated draft minutes. A
	// blank transcript falls back to the one already stored. When every
	// model fails the diagnostic document is stored as the draft.
	GenerateDraft(ctx context.Context, project, id, transcript string) (*domain.Meeting, error)

	// SaveFinal stores user-edited minutes.
	SaveFinal(ctx context.Context, project, id, minutes string) (*domain.Meeting, error)

	// ProjectContext summarizes earlier meetings for the prompt.
	ProjectContext(ctx context.Context, project, excludeID string) (string, error)

	// CheckConnection runs the provider connectivity probe.
	CheckConnection(ctx context.Context) bool

	// GeneratorInfo reports the provider name and model sequence.
	GeneratorInfo() (provider string, models []string)
}

// Option configures a MeetingService.
type Option func(*meetingServiceImpl)

// WithClock overrides the clock used for new project and meeting timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *meetingServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

type meetingServiceImpl struct {
	projects  store.ProjectStore
	meetings  store.MeetingStore
	generator MinutesGenerator
	logger    *slog.Logger
	now       func() time.Time
}

// NewMeetingService creates a MeetingService.
// It returns an error if any of the required dependencies are nil.
func NewMeetingService(
	projects store.ProjectStore,
	meetings store.MeetingStore,
	generator MinutesGenerator,
	logger *slog.Logger,
	opts ...Option,
) (MeetingService, error) {
	if projects == nil {
		return nil, &MeetingServiceError{Operation: "create_service", Message: "project store cannot be nil"}
	}
	if meetings == nil {
		return nil, &MeetingServiceError{Operation: "create_service", Message: "meeting store cannot be nil"}
	}
	if generator == nil {
		return nil, &MeetingServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &meetingServiceImpl{
		projects:  projects,
		meetings:  meetings,
		generator: generator,
		logger:    logger.With("component", "meeting_service"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *meetingServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

func (s *meetingServiceImpl) ListProjects(ctx context.Context) ([]string, error) {
	names, err := s.projects.ListProjects(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list projects", "error", redact.Error(err))
		return nil, NewMeetingServiceError("list_projects", "failed to list projects", err)
	}
	return names, nil
}

func (s *meetingServiceImpl) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	project, err := domain.NewProject(name, s.now())
	if err != nil {
		return nil, NewMeetingServiceError("create_project", "invalid project", err)
	}
	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, NewMeetingServiceError("create_project", "failed to save project", err)
	}
	s.log(ctx).Info("project created", "project", project.Name)
	return project, nil
}

func (s *meetingServiceImpl) DeleteProject(ctx context.Context, name string) error {
	if err := s.projects.DeleteProject(ctx, strings.TrimSpace(name)); err != nil {
		return NewMeetingServiceError("delete_project", "failed to delete project", err)
	}
	s.log(ctx).Info("project deleted", "project", name)
	return nil
}

func (s *meetingServiceImpl) ListMeetings(ctx context.Context, project string) ([]*domain.Meeting, error) {
	meetings, err := s.meetings.ListMeetings(ctx, project)
	if err != nil {
		return nil, NewMeetingServiceError("list_meetings", "failed to list meetings", err)
	}
	return meetings, nil
}

func (s *meetingServiceImpl) CreateMeeting(ctx context.Context, project, title string) (*domain.Meeting, error) {
	meeting, err := domain.NewMeeting(title, s.now())
	if err != nil {
		return nil, NewMeetingServiceError("create_meeting", "invalid meeting", err)
	}
	if err := s.meetings.CreateMeeting(ctx, project, meeting); err != nil {
		return nil, NewMeetingServiceError("create_meeting", "failed to save meeting", err)
	}
	s.log(ctx).Info("meeting created", "project", project, "meeting_id", meeting.ID)
	return meeting, nil
}

func (s *meetingServiceImpl) GetMeeting(ctx context.Context, project, id string) (*domain.Meeting, error) {
	meeting, err := s.meetings.GetMeeting(ctx, project, id)
	if err != nil {
		return nil, NewMeetingServiceError("get_meeting", "failed to load meeting", err)
	}
	return meeting, nil
}

func (s *meetingServiceImpl) DeleteMeeting(ctx context.Context, project, id string) error {
	if err := s.meetings.DeleteMeeting(ctx, project, id); err != nil {
		return NewMeetingServiceError("delete_meeting", "failed to delete meeting", err)
	}
	return nil
}

func (s *meetingServiceImpl) SaveTranscript(ctx context.Context, project, id, transcript string) (*domain.Meeting, error) {
	return s.update(ctx, "save_transcript", project, id, func(m *domain.Meeting) {
		m.Transcript = transcript
	})
}

func (s *meetingServiceImpl) SaveFinal(ctx context.Context, project, id, minutes string) (*domain.Meeting, error) {
	if strings.TrimSpace(minutes) == "" {
		return nil, fmt.Errorf("%w: minutes cannot be empty", ErrInvalidInput)
	}
	return s.update(ctx, "save_final", project, id, func(m *domain.Meeting) {
		m.FinalMoM = minutes
	})
}

func (s *meetingServiceImpl) GenerateDraft(ctx context.Context, project, id, transcript string) (*domain.Meeting, error) {
	log := s.log(ctx)

	meeting, err := s.meetings.GetMeeting(ctx, project, id)
	if err != nil {
		return nil, NewMeetingServiceError("generate_draft", "failed to load meeting", err)
	}

	if strings.TrimSpace(transcript) == "" {
		transcript = meeting.Transcript
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, generation.ErrEmptyTranscript)
	}

	projectContext, err := s.ProjectContext(ctx, project, id)
	if err != nil {
		return nil, err
	}

	minutes, err := s.generator.GenerateMoM(ctx, transcript, projectContext, project)
	if err != nil {
		log.Error("minutes generation failed",
			"project", project,
			"meeting_id", id,
			"error", redact.Error(err))
		return nil, NewMeetingServiceError("generate_draft", "failed to generate minutes", err)
	}

	meeting.Transcript = transcript
	meeting.DraftMoM = minutes
	if err := s.meetings.SaveMeeting(ctx, project, meeting); err != nil {
		return nil, NewMeetingServiceError("generate_draft", "failed to save draft", err)
	}

	log.Info("draft minutes stored",
		"project", project,
		"meeting_id", id,
		"context_chars", len(projectContext))
	return meeting, nil
}

func (s *meetingServiceImpl) ProjectContext(ctx context.Context, project, excludeID string) (string, error) {
	meetings, err := s.meetings.ListMeetings(ctx, project)
	if err != nil {
		return "", NewMeetingServiceError("project_context", "failed to list meetings", err)
	}

	// meetings are newest first; keep the most recent ones with minutes.
	selected := make([]*domain.Meeting, 0, MaxContextMeetings)
	for _, m := range meetings {
		if m.ID == excludeID || !m.HasMoM() {
			continue
		}
		selected = append(selected, m)
		if len(selected) == MaxContextMeetings {
			break
		}
	}

	parts := make([]string, 0, len(selected))
	for i := len(selected) - 1; i >= 0; i-- {
		m := selected[i]
		parts = append(parts, fmt.Sprintf("Previous meeting (%s):\n%s\n", m.Date, m.EffectiveMoM()))
	}
	return strings.Join(parts, "\n"), nil
}

func (s *meetingServiceImpl) CheckConnection(ctx context.Context) bool {
	ok := s.generator.TestConnection(ctx)
	s.log(ctx).Info("connectivity probe finished", "provider", s.generator.Provider(), "ok", ok)
	return ok
}

func (s *meetingServiceImpl) GeneratorInfo() (string, []string) {
	return s.generator.Provider(), s.generator.Models()
}

// update loads a meeting, applies mutate and saves it.
func (s *meetingServiceImpl) update(
	ctx context.Context,
	operation, project, id string,
	mutate func(*domain.Meeting),
) (*domain.Meeting, error) {
	meeting, err := s.meetings.GetMeeting(ctx, project, id)
	if err != nil {
		return nil, NewMeetingServiceError(operation, "failed to load meeting", err)
	}
	mutate(meeting)
	if err := s.meetings.SaveMeeting(ctx, project, meeting); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			s.log(ctx).Warn("meeting rejected by store", "operation", operation, "error", redact.Error(err))
		}
		return nil, NewMeetingServiceError(operation, "failed to save meeting", err)
	}
	return meeting, nil
}
