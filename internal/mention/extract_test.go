package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no mentions",
			text: "just a plain note about the phone screen",
			want: nil,
		},
		{
			name: "single mention",
			text: "ping @alice about this",
			want: []string{"alice"},
		},
		{
			name: "repeated mentions are deduplicated",
			text: "@alice @alice @bob",
			want: []string{"alice", "bob"},
		},
		{
			name: "case variants collapse to one username",
			text: "@Alice and @aLiCe again",
			want: []string{"alice"},
		},
		{
			name: "hyphen and underscore are part of the token",
			text: "cc @mary-jane and @john_doe",
			want: []string{"mary-jane", "john_doe"},
		},
		{
			name: "punctuation terminates the token",
			text: "thanks @alice, and @bob.",
			want: []string{"alice", "bob"},
		},
		{
			name: "email-like text still matches the local mention",
			text: "reach me at hr@acme before Friday",
			want: []string{"acme"},
		},
		{
			name: "bare at sign",
			text: "meet @ noon",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}
