package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/mom-agent/internal/domain"
	"github.com/phrazzld/mom-agent/internal/generation"
	"github.com/phrazzld/mom-agent/internal/mocks"
	"github.com/phrazzld/mom-agent/internal/platform/filestore"
	"github.com/phrazzld/mom-agent/internal/platform/logger"
	"github.com/phrazzld/mom-agent/internal/service"
)

// clock returns successive minutes starting at 2024-03-15 10:00 UTC.
func clock() func() time.Time {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := at
		at = at.Add(time.Minute)
		return now
	}
}

func newService(t *testing.T, gen *mocks.MockMinutesGenerator) service.MeetingService {
	t.Helper()
	l, _ := logger.NewTestLogger(t)
	fs, err := filestore.New(afero.NewMemMapFs(), "/data", l)
	require.NoError(t, err)
	svc, err := service.NewMeetingService(fs, fs, gen, l, service.WithClock(clock()))
	require.NoError(t, err)
	return svc
}

func TestNewMeetingService_Validation(t *testing.T) {
	fs, err := filestore.New(afero.NewMemMapFs(), "/data", nil)
	require.NoError(t, err)
	gen := &mocks.MockMinutesGenerator{}

	tests := []struct {
		name string
		fn   func() (service.MeetingService, error)
	}{
		{"nil project store", func() (service.MeetingService, error) {
			return service.NewMeetingService(nil, fs, gen, nil)
		}},
		{"nil meeting store", func() (service.MeetingService, error) {
			return service.NewMeetingService(fs, nil, gen, nil)
		}},
		{"nil generator", func() (service.MeetingService, error) {
			return service.NewMeetingService(fs, fs, nil, nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := tt.fn()
			assert.Nil(t, svc)
			var serr *service.MeetingServiceError
			assert.ErrorAs(t, err, &serr)
		})
	}
}

func TestProjects(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, &mocks.MockMinutesGenerator{})

	p, err := svc.CreateProject(ctx, "  Acme  ")
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.Name)

	_, err = svc.CreateProject(ctx, "Acme")
	assert.ErrorIs(t, err, service.ErrProjectExists)

	_, err = svc.CreateProject(ctx, "   ")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.CreateProject(ctx, "../etc")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.CreateProject(ctx, "Beta")
	require.NoError(t, err)

	names, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Beta"}, names)

	require.NoError(t, svc.DeleteProject(ctx, "Beta"))
	names, err = svc.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme"}, names)
}

func TestMeetings(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, &mocks.MockMinutesGenerator{})

	_, err := svc.CreateMeeting(ctx, "Missing", "Kickoff")
	assert.ErrorIs(t, err, service.ErrProjectNotFound)

	_, err = svc.CreateProject(ctx, "Acme")
	require.NoError(t, err)

	_, err = svc.CreateMeeting(ctx, "Acme", "  ")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	m, err := svc.CreateMeeting(ctx, "Acme", "Kickoff")
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)

	got, err := svc.GetMeeting(ctx, "Acme", m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kickoff", got.Title)

	_, err = svc.GetMeeting(ctx, "Acme", "20990101_000000")
	assert.ErrorIs(t, err, service.ErrMeetingNotFound)

	updated, err := svc.SaveTranscript(ctx, "Acme", m.ID, "Alice: hello")
	require.NoError(t, err)
	assert.Equal(t, "Alice: hello", updated.Transcript)

	_, err = svc.SaveFinal(ctx, "Acme", m.ID, "  ")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	final, err := svc.SaveFinal(ctx, "Acme", m.ID, "# Final")
	require.NoError(t, err)
	assert.Equal(t, "# Final", final.FinalMoM)

	list, err := svc.ListMeetings(ctx, "Acme")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteMeeting(ctx, "Acme", m.ID))
	err = svc.DeleteMeeting(ctx, "Acme", m.ID)
	assert.ErrorIs(t, err, service.ErrMeetingNotFound)
}

func TestGenerateDraft(t *testing.T) {
	ctx := context.Background()
	gen := &mocks.MockMinutesGenerator{Minutes: "# Minutes of Meeting"}
	svc := newService(t, gen)

	_, err := svc.CreateProject(ctx, "Acme")
	require.NoError(t, err)
	m, err := svc.CreateMeeting(ctx, "Acme", "Kickoff")
	require.NoError(t, err)

	t.Run("blank transcript with nothing stored", func(t *testing.T) {
		_, err := svc.GenerateDraft(ctx, "Acme", m.ID, "   ")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		assert.ErrorIs(t, err, generation.ErrEmptyTranscript)
		assert.Equal(t, 0, gen.GenerateCount())
	})

	t.Run("stores transcript and draft", func(t *testing.T) {
		got, err := svc.GenerateDraft(ctx, "Acme", m.ID, "Alice: ship it")
		require.NoError(t, err)
		assert.Equal(t, "Alice: ship it", got.Transcript)
		assert.Equal(t, "# Minutes of Meeting", got.DraftMoM)

		call, ok := gen.LastGenerateCall()
		require.True(t, ok)
		assert.Equal(t, "Alice: ship it", call.Transcript)
		assert.Equal(t, "Acme", call.ProjectName)
		assert.Empty(t, call.ProjectContext)

		stored, err := svc.GetMeeting(ctx, "Acme", m.ID)
		require.NoError(t, err)
		assert.Equal(t, "# Minutes of Meeting", stored.DraftMoM)
	})

	t.Run("falls back to stored transcript", func(t *testing.T) {
		_, err := svc.GenerateDraft(ctx, "Acme", m.ID, "")
		require.NoError(t, err)
		call, _ := gen.LastGenerateCall()
		assert.Equal(t, "Alice: ship it", call.Transcript)
	})

	t.Run("missing meeting", func(t *testing.T) {
		_, err := svc.GenerateDraft(ctx, "Acme", "20990101_000000", "text")
		assert.ErrorIs(t, err, service.ErrMeetingNotFound)
	})
}

func TestGenerateDraft_GeneratorError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	gen := &mocks.MockMinutesGenerator{Err: boom}
	svc := newService(t, gen)

	_, err := svc.CreateProject(ctx, "Acme")
	require.NoError(t, err)
	m, err := svc.CreateMeeting(ctx, "Acme", "Kickoff")
	require.NoError(t, err)

	_, err = svc.GenerateDraft(ctx, "Acme", m.ID, "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var serr *service.MeetingServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "generate_draft", serr.Operation)

	stored, err := svc.GetMeeting(ctx, "Acme", m.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.DraftMoM)
}

func TestProjectContext(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, &mocks.MockMinutesGenerator{})

	_, err := svc.CreateProject(ctx, "Acme")
	require.NoError(t, err)

	// Meetings land at 10:01 through 10:08; the project took 10:00.
	ids := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		m, err := svc.CreateMeeting(ctx, "Acme", "Sync")
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}
	for i, id := range ids {
		if i == 2 {
			continue
		}
		_, err := svc.SaveFinal(ctx, "Acme", id, "notes "+id)
		require.NoError(t, err)
	}

	got, err := svc.ProjectContext(ctx, "Acme", ids[7])
	require.NoError(t, err)

	want := "Previous meeting (2024-03-15 10:02):\nnotes " + ids[1] + "\n" +
		"\n" +
		"Previous meeting (2024-03-15 10:04):\nnotes " + ids[3] + "\n" +
		"\n" +
		"Previous meeting (2024-03-15 10:05):\nnotes " + ids[4] + "\n" +
		"\n" +
		"Previous meeting (2024-03-15 10:06):\nnotes " + ids[5] + "\n" +
		"\n" +
		"Previous meeting (2024-03-15 10:07):\nnotes " + ids[6] + "\n"
	assert.Equal(t, want, got)
}

func TestProjectContext_Empty(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, &mocks.MockMinutesGenerator{})

	_, err := svc.CreateProject(ctx, "Acme")
	require.NoError(t, err)
	_, err = svc.CreateMeeting(ctx, "Acme", "Sync")
	require.NoError(t, err)

	got, err := svc.ProjectContext(ctx, "Acme", "")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.ProjectContext(ctx, "Missing", "")
	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestProjectContext_FinalPreferredOverDraft(t *testing.T) {
	ctx := context.Background()
	gen := &mocks.MockMinutesGenerator{Minutes: "draft"}
	svc := newService(t, gen)

	_, err := svc.CreateProject(ctx, "Acme")
	require.NoError(t, err)
	first, err := svc.CreateMeeting(ctx, "Acme", "One")
	require.NoError(t, err)
	_, err = svc.GenerateDraft(ctx, "Acme", first.ID, "t")
	require.NoError(t, err)

	got, err := svc.ProjectContext(ctx, "Acme", "")
	require.NoError(t, err)
	assert.Equal(t, "Previous meeting (2024-03-15 10:01):\ndraft\n", got)

	_, err = svc.SaveFinal(ctx, "Acme", first.ID, "final")
	require.NoError(t, err)
	got, err = svc.ProjectContext(ctx, "Acme", "")
	require.NoError(t, err)
	assert.Equal(t, "Previous meeting (2024-03-15 10:01):\nfinal\n", got)
}

func TestCheckConnectionAndInfo(t *testing.T) {
	gen := &mocks.MockMinutesGenerator{
		Connected:    true,
		ProviderName: "OpenAI",
		ModelList:    []string{"gpt-4o", "gpt-4o-mini"},
	}
	svc := newService(t, gen)

	assert.True(t, svc.CheckConnection(context.Background()))
	provider, models := svc.GeneratorInfo()
	assert.Equal(t, "OpenAI", provider)
	assert.Equal(t, []string{"gpt-4o", "gpt-4o-mini"}, models)

	gen.Connected = false
	assert.False(t, svc.CheckConnection(context.Background()))
}

func TestNewMeetingServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"validation", domain.NewValidationError("f", "bad", domain.ErrInvalidID), service.ErrInvalidInput},
		{"empty transcript", generation.ErrEmptyTranscript, service.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, service.NewMeetingServiceError("op", "msg", tt.err), tt.want)
		})
	}

	assert.NoError(t, service.NewMeetingServiceError("op", "msg", nil))

	err := service.NewMeetingServiceError("op", "msg", errors.New("disk"))
	assert.EqualError(t, err, "meeting service op failed: msg: disk")
}
