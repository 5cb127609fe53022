package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stage-lab/errors"
)

func TestBlocklistLoader_LoadAll(t *testing.T) {
	req := require.New(t)
	loader := NewBlocklistLoader(blocklistFolder)

	data, err := loader.LoadAll("blocklist")
	req.NoError(err)

	// One category per embedded file
	req.Contains(data.Categories, "en")
	req.Contains(data.Categories, "fr")

	// Entries are upper-cased and unique
	req.Contains(data.Words, "DAMN")
	req.Contains(data.Words, "MERDE")
	seen := make(map[string]struct{})
	for _, w := range data.Words {
		_, dup := seen[w]
		req.False(dup, "duplicate word %q", w)
		seen[w] = struct{}{}
	}
}

func TestBlocklistLoader_MissingDirectory(t *testing.T) {
	req := require.New(t)
	loader := NewBlocklistLoader(blocklistFolder)

	_, err := loader.LoadAll("nope")
	req.Error(err)
	req.NotErrorIs(err, errors.ErrEmptyWords)
}
