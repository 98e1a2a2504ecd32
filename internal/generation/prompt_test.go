package generation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/mom-agent/internal/generation"
	"github.com/phrazzld/mom-agent/internal/minutes"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func TestBuildPrompts_DateAndTranscript(t *testing.T) {
	transcript := "Alice: we ship on Friday.\nBob: agreed."

	p := generation.BuildPrompts(transcript, "", "", fixedNow)

	assert.Contains(t, p.System, "2024-03-15")
	assert.True(t, strings.HasSuffix(p.User, transcript))
	assert.True(t, strings.HasPrefix(p.User, generation.UserPromptPrefix+"\n\n"))
	assert.Contains(t, p.System, minutes.DefaultProjectName)
	assert.NotContains(t, p.System, generation.ContextLabel)
}

func TestBuildPrompts_IncludesSkeletonAndGuidelines(t *testing.T) {
	p := generation.BuildPrompts("x", "", "Apollo", fixedNow)

	assert.Contains(t, p.System, minutes.Skeleton())
	assert.Contains(t, p.System, "1. Extract key discussion points from the transcript")
	assert.Contains(t, p.System, "3. Separate action items between Client Team and Spikra Team based on context")
	assert.Contains(t, p.System, "7. Replace {project_name} with the actual project name: Apollo")
	assert.Contains(t, p.System, "8. Replace {meeting_date} with today's date: 2024-03-15")
	assert.Contains(t, p.System, `use "MoM Agent" if unclear`)
	assert.Contains(t, p.System, `Start your response directly with "**Minutes of Meeting**"`)
}

func TestBuildPrompts_ProjectContext(t *testing.T) {
	p := generation.BuildPrompts("x", "Previous meeting (2024-03-01 09:00):\nkickoff", "Apollo", fixedNow)

	assert.Contains(t, p.System, generation.ContextLabel+" Previous meeting (2024-03-01 09:00):\nkickoff")

	ctxIdx := strings.Index(p.System, generation.ContextLabel)
	importantIdx := strings.Index(p.System, "IMPORTANT:")
	assert.Less(t, ctxIdx, importantIdx)
}

func TestBuildPrompts_LongTranscriptPassedVerbatim(t *testing.T) {
	long := strings.Repeat("word ", 50000)
	p := generation.BuildPrompts(long, "", "", fixedNow)
	assert.Equal(t, generation.UserPromptPrefix+"\n\n"+long, p.User)
}
