package participant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stage-lab/domain"
	stageerrors "stage-lab/errors"
	"stage-lab/runtime"
)

func TestListen_RegistersAndDetaches(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry()

	// Given a function listener attached to the registry
	id, detach, err := Listen(registry, func(ctx context.Context, sender domain.Identifier, w domain.Word) error {
		return nil
	})
	req.NoError(err)
	req.False(id.IsZero())

	listener, ok := registry.Lookup(id)
	req.True(ok)
	req.NoError(listener.Receive(context.Background(), domain.NewIdentifier(), domain.MustWord("HELLO")))

	// When detaching
	req.NoError(detach())

	// Then the handle is gone and a second detach reports it
	_, ok = registry.Lookup(id)
	req.False(ok)
	req.ErrorIs(detach(), stageerrors.ErrNotRegistered)
}
