package minutes_test

import (
	"testing"

	"github.com/phrazzld/mom-agent/internal/minutes"
	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "bold", in: "**Project Name:** Apollo", want: "Project Name: Apollo"},
		{name: "italic", in: "an *important* point", want: "an important point"},
		{name: "open checkbox", in: "- [ ] Send deck", want: "• Send deck"},
		{name: "closed checkbox", in: "- [x] Book room", want: "• Book room"},
		{name: "bullets", in: "- Alice\n- Bob", want: "• Alice\n• Bob"},
		{name: "numbered kept", in: "1. First\n2. Second", want: "1. First\n2. Second"},
		{name: "trimmed", in: "\n\n**Minutes of Meeting**\n\n", want: "Minutes of Meeting"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, minutes.PlainText(tc.in))
		})
	}
}
