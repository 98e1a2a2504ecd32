package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/phrazzld/mom-agent/internal/domain"
	"github.com/phrazzld/mom-agent/internal/platform/logger"
	"github.com/phrazzld/mom-agent/internal/store"
)

const (
	projectFile   = "project.json"
	meetingPrefix = "meeting_"
	meetingSuffix = ".json"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Store keeps projects and meetings as JSON files under root.
type Store struct {
	fs     afero.Fs
	root   string
	logger *slog.Logger
	mu     sync.Mutex
}

// Ensure Store implements both store interfaces.
var (
	_ store.ProjectStore = (*Store)(nil)
	_ store.MeetingStore = (*Store)(nil)
)

// New creates a Store on fsys rooted at root, creating root if needed.
// If logger is nil, a default logger will be used.
func New(fsys afero.Fs, root string, logger *slog.Logger) (*Store, error) {
	if fsys == nil {
		return nil, errors.New("filesystem cannot be nil")
	}
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("data directory cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := fsys.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", root, err)
	}
	return &Store{
		fs:     fsys,
		root:   root,
		logger: logger.With(slog.String("component", "filestore")),
	}, nil
}

// NewOS creates a Store on the host filesystem.
func NewOS(dataDir string, logger *slog.Logger) (*Store, error) {
	return New(afero.NewOsFs(), dataDir, logger)
}

func (s *Store) projectDir(name string) string {
	return filepath.Join(s.root, name)
}

func (s *Store) meetingPath(project, id string) string {
	return filepath.Join(s.projectDir(project), meetingPrefix+id+meetingSuffix)
}

// ListProjects implements store.ProjectStore.
func (s *Store) ListProjects(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		log.Error("failed to list projects", slog.String("error", err.Error()))
		return nil, store.NewStoreError("project", "list", "failed to read data directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && domain.ValidateProjectName(e.Name()) == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// CreateProject implements store.ProjectStore.
func (s *Store) CreateProject(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if project == nil {
		return fmt.Errorf("%w: project cannot be nil", store.ErrInvalidEntity)
	}
	if err := domain.ValidateProjectName(project.Name); err != nil {
		return MapError(err, store.ErrProjectNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.projectDir(project.Name)
	exists, err := afero.DirExists(s.fs, dir)
	if err != nil {
		return store.NewStoreError("project", "create", "failed to stat project directory", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", store.ErrProjectExists, project.Name)
	}

	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return store.NewStoreError("project", "create", "failed to create project directory", err)
	}

	stored := *project
	if stored.Meetings == nil {
		stored.Meetings = []*domain.Meeting{}
	}
	if err := s.writeJSON(dir, projectFile, &stored); err != nil {
		log.Error("failed to write project file",
			slog.String("project", project.Name),
			slog.String("error", err.Error()))
		return store.NewStoreError("project", "create", "failed to write project file", err)
	}

	log.Info("project created", slog.String("project", project.Name))
	return nil
}

// GetProject implements store.ProjectStore. A directory without project.json
// is still a project; its metadata is synthesized from the name.
func (s *Store) GetProject(ctx context.Context, name string) (*domain.Project, error) {
	if err := domain.ValidateProjectName(name); err != nil {
		return nil, MapError(err, store.ErrProjectNotFound)
	}
	if err := s.requireProject(name); err != nil {
		return nil, err
	}

	var p domain.Project
	err := s.readJSON(filepath.Join(s.projectDir(name), projectFile), &p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &domain.Project{Name: name, Meetings: []*domain.Meeting{}}, nil
	case err != nil:
		logger.FromContextOrDefault(ctx, s.logger).Warn("unreadable project file",
			slog.String("project", name),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("project", "get", "failed to read project file", err)
	}
	if p.Name == "" {
		p.Name = name
	}
	if p.Meetings == nil {
		p.Meetings = []*domain.Meeting{}
	}
	return &p, nil
}

// DeleteProject implements store.ProjectStore.
func (s *Store) DeleteProject(ctx context.Context, name string) error {
	if err := domain.ValidateProjectName(name); err != nil {
		return MapError(err, store.ErrProjectNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireProject(name); err != nil {
		return err
	}
	if err := s.fs.RemoveAll(s.projectDir(name)); err != nil {
		return store.NewStoreError("project", "delete", "failed to remove project directory", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("project deleted", slog.String("project", name))
	return nil
}

// ListMeetings implements store.MeetingStore.
func (s *Store) ListMeetings(ctx context.Context, project string) ([]*domain.Meeting, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateProjectName(project); err != nil {
		return nil, MapError(err, store.ErrProjectNotFound)
	}
	if err := s.requireProject(project); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(s.fs, s.projectDir(project))
	if err != nil {
		return nil, store.NewStoreError("meeting", "list", "failed to read project directory", err)
	}

	meetings := make([]*domain.Meeting, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, meetingPrefix) || !strings.HasSuffix(name, meetingSuffix) {
			continue
		}
		var m domain.Meeting
		if err := s.readJSON(filepath.Join(s.projectDir(project), name), &m); err != nil {
			log.Warn("skipping unreadable meeting file",
				slog.String("project", project),
				slog.String("file", name),
				slog.String("error", err.Error()))
			continue
		}
		meetings = append(meetings, &m)
	}

	sort.SliceStable(meetings, func(i, j int) bool {
		if meetings[i].Date != meetings[j].Date {
			return meetings[i].Date > meetings[j].Date
		}
		return meetings[i].ID > meetings[j].ID
	})
	return meetings, nil
}

// CreateMeeting implements store.MeetingStore.
func (s *Store) CreateMeeting(ctx context.Context, project string, meeting *domain.Meeting) error {
	if err := s.validateMeeting(project, meeting); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireProject(project); err != nil {
		return err
	}
	exists, err := afero.Exists(s.fs, s.meetingPath(project, meeting.ID))
	if err != nil {
		return store.NewStoreError("meeting", "create", "failed to stat meeting file", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", store.ErrMeetingExists, meeting.ID)
	}

	if err := s.writeMeeting(project, meeting); err != nil {
		return store.NewStoreError("meeting", "create", "failed to write meeting file", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("meeting created",
		slog.String("project", project),
		slog.String("meeting_id", meeting.ID))
	return nil
}

// GetMeeting implements store.MeetingStore.
func (s *Store) GetMeeting(ctx context.Context, project, id string) (*domain.Meeting, error) {
	if err := domain.ValidateProjectName(project); err != nil {
		return nil, MapError(err, store.ErrProjectNotFound)
	}
	if err := domain.ValidateMeetingID(id); err != nil {
		return nil, MapError(err, store.ErrMeetingNotFound)
	}

	var m domain.Meeting
	if err := s.readJSON(s.meetingPath(project, id), &m); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", store.ErrMeetingNotFound, project, id)
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to read meeting",
			slog.String("project", project),
			slog.String("meeting_id", id),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("meeting", "get", "failed to read meeting file", err)
	}
	return &m, nil
}

// SaveMeeting implements store.MeetingStore.
func (s *Store) SaveMeeting(ctx context.Context, project string, meeting *domain.Meeting) error {
	if err := s.validateMeeting(project, meeting); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireProject(project); err != nil {
		return err
	}
	if err := s.writeMeeting(project, meeting); err != nil {
		return store.NewStoreError("meeting", "save", "failed to write meeting file", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("meeting saved",
		slog.String("project", project),
		slog.String("meeting_id", meeting.ID))
	return nil
}

// DeleteMeeting implements store.MeetingStore.
func (s *Store) DeleteMeeting(ctx context.Context, project, id string) error {
	if err := domain.ValidateProjectName(project); err != nil {
		return MapError(err, store.ErrProjectNotFound)
	}
	if err := domain.ValidateMeetingID(id); err != nil {
		return MapError(err, store.ErrMeetingNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.meetingPath(project, id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s/%s", store.ErrMeetingNotFound, project, id)
		}
		return store.NewStoreError("meeting", "delete", "failed to remove meeting file", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("meeting deleted",
		slog.String("project", project),
		slog.String("meeting_id", id))
	return nil
}

func (s *Store) validateMeeting(project string, meeting *domain.Meeting) error {
	if err := domain.ValidateProjectName(project); err != nil {
		return MapError(err, store.ErrProjectNotFound)
	}
	if meeting == nil {
		return fmt.Errorf("%w: meeting cannot be nil", store.ErrInvalidEntity)
	}
	if err := meeting.Validate(); err != nil {
		return MapError(err, store.ErrMeetingNotFound)
	}
	return nil
}

func (s *Store) requireProject(name string) error {
	exists, err := afero.DirExists(s.fs, s.projectDir(name))
	if err != nil {
		return store.NewStoreError("project", "get", "failed to stat project directory", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", store.ErrProjectNotFound, name)
	}
	return nil
}

func (s *Store) writeMeeting(project string, meeting *domain.Meeting) error {
	stored := *meeting
	if stored.Attendees == nil {
		stored.Attendees = []string{}
	}
	return s.writeJSON(s.projectDir(project), meetingPrefix+meeting.ID+meetingSuffix, &stored)
}

// writeJSON encodes v with two-space indentation and without HTML escaping,
// then renames a temporary file over dir/name.
func (s *Store) writeJSON(dir, name string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}
	if err := s.fs.Chmod(tmpName, filePerm); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}
	if err := s.fs.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}
	return nil
}

func (s *Store) readJSON(path string, v any) error {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
