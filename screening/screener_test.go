package screening

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stage-lab/errors"
)

func TestScreener_Screen(t *testing.T) {
	req := require.New(t)
	blocklist := []string{"BADGER", "SNAKE", "MUSHROOM"}
	screener, err := NewScreener(blocklist)
	req.NoError(err)

	tests := []struct {
		name    string
		payload string
		blocked bool
	}{
		{
			name:    "Clean payload",
			payload: "HELLO",
			blocked: false,
		},
		{
			name:    "Exact blocked word",
			payload: "BADGER",
			blocked: true,
		},
		{
			name:    "Blocked word embedded in a longer payload",
			payload: "HELLOSNAKEWORLD",
			blocked: true,
		},
		{
			name:    "Concatenation forming a blocked word",
			payload: "MUSHROOMS",
			blocked: true,
		},
		{
			name:    "Prefix of a blocked word is not blocked",
			payload: "BADGE",
			blocked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := screener.Screen(tt.payload)
			if tt.blocked {
				require.ErrorIs(t, err, errors.ErrBlockedContent)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
