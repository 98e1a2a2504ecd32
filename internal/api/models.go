package api

import (
	"github.com/phrazzld/mom-agent/internal/domain"
)

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CreateMeetingRequest is the body of POST /api/projects/{project}/meetings.
type CreateMeetingRequest struct {
	Title string `json:"title" validate:"required,max=500"`
}

// TranscriptRequest carries a transcript. For draft generation an empty
// transcript means "use the stored one".
type TranscriptRequest struct {
	Transcript string `json:"transcript"`
}

// FinalMinutesRequest is the body of PUT .../minutes/final.
type FinalMinutesRequest struct {
	Minutes string `json:"minutes" validate:"required"`
}

// ProjectResponse is a created project.
type ProjectResponse struct {
	Name        string `json:"name"`
	CreatedDate string `json:"created_date"`
}

// ProjectListResponse lists project names.
type ProjectListResponse struct {
	Projects []string `json:"projects"`
}

// MeetingSummary is a meeting without its text bodies.
type MeetingSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	HasDraft bool   `json:"has_draft"`
	HasFinal bool   `json:"has_final"`
}

// MeetingListResponse lists meetings, newest first.
type MeetingListResponse struct {
	Meetings []MeetingSummary `json:"meetings"`
}

// MeetingResponse is a full meeting.
type MeetingResponse struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Date       string   `json:"date"`
	Transcript string   `json:"transcript"`
	DraftMoM   string   `json:"draft_mom"`
	FinalMoM   string   `json:"final_mom"`
	Attendees  []string `json:"attendees"`
}

// LLMHealthResponse is the body of GET /api/health/llm.
type LLMHealthResponse struct {
	OK       bool     `json:"ok"`
	Provider string   `json:"provider"`
	Models   []string `json:"models"`
}

func projectToResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{Name: p.Name, CreatedDate: p.CreatedDate}
}

func meetingToSummary(m *domain.Meeting) MeetingSummary {
	return MeetingSummary{
		ID:       m.ID,
		Title:    m.Title,
		Date:     m.Date,
		HasDraft: m.DraftMoM != "",
		HasFinal: m.FinalMoM != "",
	}
}

func meetingToResponse(m *domain.Meeting) MeetingResponse {
	attendees := m.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return MeetingResponse{
		ID:         m.ID,
		Title:      m.Title,
		Date:       m.Date,
		Transcript: m.Transcript,
		DraftMoM:   m.DraftMoM,
		FinalMoM:   m.FinalMoM,
		Attendees:  attendees,
	}
}
