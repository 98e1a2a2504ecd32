package minutes

import "strings"

// Placeholder tokens that appear in the skeleton and may be echoed back by
// the model.
const (
	ProjectNamePlaceholder = "{project_name}"
	MeetingDatePlaceholder = "{meeting_date}"
	PreparedByPlaceholder  = "[Name]"
)

const (
	// DateLayout is the layout used for meeting dates inside documents.
	DateLayout = "2006-01-02"

	// DefaultProjectName is used when the caller supplies no project name.
	DefaultProjectName = "Meeting Project"

	// AgentLabel replaces the unfilled "Prepared by" marker.
	AgentLabel = "MoM Agent"

	// Heading is the first line of every generated document.
	Heading = "**Minutes of Meeting**"

	ClientTeam   = "Client Team"
	InternalTeam = "Spikra Team"
)

const skeleton = Heading + `

**Project Name:** ` + ProjectNamePlaceholder + `
**Meeting Date:** ` + MeetingDatePlaceholder + `
**Meeting Attendees:**
-

**Discussion Points:**
1.

**Decisions Made:**
1.

**Action Items:**

**` + ClientTeam + `:**
- [ ]

**` + InternalTeam + `:**
- [ ]

**Prepared by:** ` + PreparedByPlaceholder

// Skeleton returns the fixed markdown template the model is asked to fill.
func Skeleton() string {
	return skeleton
}

// ProjectNameOrDefault returns name, or DefaultProjectName when name is empty.
func ProjectNameOrDefault(name string) string {
	if name == "" {
		return DefaultProjectName
	}
	return name
}

// Substitute replaces every occurrence of the three placeholders.
func Substitute(text, projectName, date string) string {
	r := strings.NewReplacer(
		ProjectNamePlaceholder, ProjectNameOrDefault(projectName),
		MeetingDatePlaceholder, date,
		PreparedByPlaceholder, AgentLabel,
	)
	return r.Replace(text)
}
