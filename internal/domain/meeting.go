package domain

import (
	"regexp"
	"strings"
	"time"
)

// Layouts used for meeting identifiers and dates on disk.
const (
	MeetingIDLayout   = "20060102_150405"
	MeetingDateLayout = "2006-01-02 15:04"
)

var meetingIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Meeting is a single meeting within a project. Transcript, DraftMoM and
// FinalMoM are opaque text: nothing in the application parses them.
type Meeting struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Date       string   `json:"date"`
	Transcript string   `json:"transcript"`
	DraftMoM   string   `json:"draft_mom"`
	FinalMoM   string   `json:"final_mom"`
	Attendees  []string `json:"attendees"`
}

// NewMeeting creates a Meeting whose ID and date derive from now.
func NewMeeting(title string, now time.Time) (*Meeting, error) {
	m := &Meeting{
		ID:        now.Format(MeetingIDLayout),
		Title:     strings.TrimSpace(title),
		Date:      now.Format(MeetingDateLayout),
		Attendees: []string{},
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks the fields the store relies on.
func (m *Meeting) Validate() error {
	if err := ValidateMeetingID(m.ID); err != nil {
		return err
	}
	if strings.TrimSpace(m.Title) == "" {
		return NewValidationError("meeting title", "cannot be empty", ErrEmptyContent)
	}
	return nil
}

// EffectiveMoM returns the final minutes when present, otherwise the draft.
func (m *Meeting) EffectiveMoM() string {
	if m.FinalMoM != "" {
		return m.FinalMoM
	}
	return m.DraftMoM
}

// HasMoM reports whether any minutes have been generated or written.
func (m *Meeting) HasMoM() bool {
	return m.EffectiveMoM() != ""
}

// ValidateMeetingID rejects IDs that are not safe inside a file name.
func ValidateMeetingID(id string) error {
	if id == "" {
		return NewValidationError("meeting id", "cannot be empty", ErrInvalidID)
	}
	if !meetingIDPattern.MatchString(id) {
		return NewValidationError("meeting id", "has invalid format", ErrInvalidID)
	}
	return nil
}
