package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/mom-agent/internal/api/shared"
	"github.com/phrazzld/mom-agent/internal/minutes"
	"github.com/phrazzld/mom-agent/internal/platform/logger"
	"github.com/phrazzld/mom-agent/internal/service"
)

// Minutes sources accepted by the plain-text endpoint.
const (
	SourceDraft = "draft"
	SourceFinal = "final"
)

// MeetingHandler serves project, meeting and minutes endpoints.
type MeetingHandler struct {
	meetings service.MeetingService
	logger   *slog.Logger
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(meetings service.MeetingService, logger *slog.Logger) *MeetingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MeetingHandler{
		meetings: meetings,
		logger:   logger.With("component", "meeting_handler"),
	}
}

// Routes mounts the handler's endpoints on r.
func (h *MeetingHandler) Routes(r chi.Router) {
	r.Get("/health/llm", h.LLMHealth)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.ListProjects)
		r.Post("/", h.CreateProject)

		r.Route("/{project}", func(r chi.Router) {
			r.Delete("/", h.DeleteProject)
			r.Get("/meetings", h.ListMeetings)
			r.Post("/meetings", h.CreateMeeting)

			r.Route("/meetings/{meetingID}", func(r chi.Router) {
				r.Get("/", h.GetMeeting)
				r.Delete("/", h.DeleteMeeting)
				r.Put("/transcript", h.SaveTranscript)
				r.Post("/minutes", h.GenerateMinutes)
				r.Put("/minutes/final", h.SaveFinalMinutes)
				r.Get("/minutes/plain", h.PlainMinutes)
			})
		})
	})
}

func (h *MeetingHandler) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger)
}

// decode reads and validates a request body, writing a 400 on failure.
func (h *MeetingHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		if MapErrorToStatusCode(err) == http.StatusBadRequest {
			HandleAPIError(w, r, err, "")
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// ListProjects handles GET /api/projects.
func (h *MeetingHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	names, err := h.meetings.ListProjects(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list projects")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ProjectListResponse{Projects: names})
}

// CreateProject handles POST /api/projects.
func (h *MeetingHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}
	project, err := h.meetings.CreateProject(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create project")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, projectToResponse(project))
}

// DeleteProject handles DELETE /api/projects/{project}.
func (h *MeetingHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.meetings.DeleteProject(r.Context(), chi.URLParam(r, "project")); err != nil {
		HandleAPIError(w, r, err, "Failed to delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMeetings handles GET /api/projects/{project}/meetings.
func (h *MeetingHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	list, err := h.meetings.ListMeetings(r.Context(), chi.URLParam(r, "project"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list meetings")
		return
	}
	resp := MeetingListResponse{Meetings: make([]MeetingSummary, 0, len(list))}
	for _, m := range list {
		resp.Meetings = append(resp.Meetings, meetingToSummary(m))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateMeeting handles POST /api/projects/{project}/meetings.
func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req CreateMeetingRequest
	if !h.decode(w, r, &req) {
		return
	}
	meeting, err := h.meetings.CreateMeeting(r.Context(), chi.URLParam(r, "project"), req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create meeting")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, meetingToResponse(meeting))
}

// GetMeeting handles GET /api/projects/{project}/meetings/{meetingID}.
func (h *MeetingHandler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	meeting, err := h.meetings.GetMeeting(r.Context(), chi.URLParam(r, "project"), chi.URLParam(r, "meetingID"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load meeting")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, meetingToResponse(meeting))
}

// DeleteMeeting handles DELETE /api/projects/{project}/meetings/{meetingID}.
func (h *MeetingHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	err := h.meetings.DeleteMeeting(r.Context(), chi.URLParam(r, "project"), chi.URLParam(r, "meetingID"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete meeting")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveTranscript handles PUT .../meetings/{meetingID}/transcript.
func (h *MeetingHandler) SaveTranscript(w http.ResponseWriter, r *http.Request) {
	var req TranscriptRequest
	if !h.decode(w, r, &req) {
		return
	}
	meeting, err := h.meetings.SaveTranscript(r.Context(),
		chi.URLParam(r, "project"), chi.URLParam(r, "meetingID"), req.Transcript)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save transcript")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, meetingToResponse(meeting))
}

// GenerateMinutes handles POST .../meetings/{meetingID}/minutes. It blocks
// until every model in the sequence has been tried or one succeeded.
func (h *MeetingHandler) GenerateMinutes(w http.ResponseWriter, r *http.Request) {
	var req TranscriptRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	project, id := chi.URLParam(r, "project"), chi.URLParam(r, "meetingID")

	h.log(r).Info("generating minutes", "project", project, "meeting_id", id)
	meeting, err := h.meetings.GenerateDraft(r.Context(), project, id, req.Transcript)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate minutes")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, meetingToResponse(meeting))
}

// SaveFinalMinutes handles PUT .../meetings/{meetingID}/minutes/final.
func (h *MeetingHandler) SaveFinalMinutes(w http.ResponseWriter, r *http.Request) {
	var req FinalMinutesRequest
	if !h.decode(w, r, &req) {
		return
	}
	meeting, err := h.meetings.SaveFinal(r.Context(),
		chi.URLParam(r, "project"), chi.URLParam(r, "meetingID"), req.Minutes)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save minutes")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, meetingToResponse(meeting))
}

// PlainMinutes handles GET .../meetings/{meetingID}/minutes/plain.
func (h *MeetingHandler) PlainMinutes(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source != "" && source != SourceDraft && source != SourceFinal {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid source: must be draft or final")
		return
	}

	meeting, err := h.meetings.GetMeeting(r.Context(), chi.URLParam(r, "project"), chi.URLParam(r, "meetingID"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load meeting")
		return
	}

	var text string
	switch source {
	case SourceDraft:
		text = meeting.DraftMoM
	case SourceFinal:
		text = meeting.FinalMoM
	default:
		text = meeting.EffectiveMoM()
	}
	shared.RespondWithText(w, r, http.StatusOK, minutes.PlainText(text))
}

// LLMHealth handles GET /api/health/llm.
func (h *MeetingHandler) LLMHealth(w http.ResponseWriter, r *http.Request) {
	ok := h.meetings.CheckConnection(r.Context())
	provider, models := h.meetings.GeneratorInfo()
	if models == nil {
		models = []string{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, LLMHealthResponse{OK: ok, Provider: provider, Models: models})
}
