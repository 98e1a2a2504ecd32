package generation

import (
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/mom-agent/internal/minutes"
)

// UserPromptPrefix introduces the transcript in the user message.
const UserPromptPrefix = "Please analyze this meeting transcript and generate a structured Minutes of Meeting:"

// ContextLabel introduces the previous meeting context in the system prompt.
const ContextLabel = "Previous meeting context for this project:"

// Prompts is the system and user message pair sent for one generation.
type Prompts struct {
	System string
	User   string
}

// BuildPrompts assembles the prompt pair. The transcript is passed through
// verbatim; no length check is applied.
func BuildPrompts(transcript, projectContext, projectName string, now time.Time) Prompts {
	today := now.Format(minutes.DateLayout)

	var b strings.Builder
	b.WriteString("You are an AI assistant specialized in generating structured Minutes of Meeting (MoM) from meeting transcripts.\n\n")
	b.WriteString("Your task is to analyze the provided meeting transcript and generate a well-structured MoM using the following template:\n\n")
	b.WriteString(minutes.Skeleton())
	b.WriteString("\n\nGuidelines:\n")

	guidelines := []string{
		"Extract key discussion points from the transcript",
		"Identify clear decisions that were made during the meeting",
		"Separate action items between " + minutes.ClientTeam + " and " + minutes.InternalTeam + " based on context",
		"Use all the attendee names mentioned in the transcript",
		"Keep the content concise but comprehensive",
		"Use bullet points and numbered lists for clarity",
		"Replace " + minutes.ProjectNamePlaceholder + " with the actual project name: " + minutes.ProjectNameOrDefault(projectName),
		"Replace " + minutes.MeetingDatePlaceholder + " with today's date: " + today,
		`For "Prepared by", try to identify who might be the meeting organizer/facilitator from the transcript, or use "` + minutes.AgentLabel + `" if unclear`,
	}
	for i, g := range guidelines {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(g)
		b.WriteString("\n")
	}

	if projectContext != "" {
		b.WriteString("\n")
		b.WriteString(ContextLabel)
		b.WriteString(" ")
		b.WriteString(projectContext)
		b.WriteString("\n")
	}

	b.WriteString("\nIMPORTANT:\n")
	b.WriteString(`- Start your response directly with "` + minutes.Heading + `"` + "\n")
	b.WriteString(`- Do NOT include any introductory text like "Here are the Minutes..." or "Based on the transcript..."` + "\n")
	b.WriteString("- Generate the MoM in markdown format following the template structure exactly\n")
	b.WriteString("- Extract real content from the transcript, not placeholder text")

	return Prompts{
		System: b.String(),
		User:   UserPromptPrefix + "\n\n" + transcript,
	}
}
