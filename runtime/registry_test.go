package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stage-lab/domain"
	"stage-lab/errors"
)

type Sink struct {
}

func (s Sink) Receive(ctx context.Context, sender domain.Identifier, w domain.Word) error {
	return nil
}

func TestRegistry_Register_Then_Lookup(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id := domain.NewIdentifier()
	sink := Sink{}

	// Given no listener is registered
	req.Empty(registry.ListActive())

	// When a listener registers
	req.NoError(registry.Register(id, sink))

	// Then it resolves under its identifier
	listener, ok := registry.Lookup(id)
	req.True(ok)
	req.Equal(sink, listener)

	req.Len(registry.ListActive(), 1)
	req.Contains(registry.ListActive(), id)
}

func TestRegistry_Register_RejectsLiveIdentifier(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id := domain.NewIdentifier()

	// Given an identifier with a live handle
	req.NoError(registry.Register(id, Sink{}))

	// When a second registration uses the same identifier
	err := registry.Register(id, Sink{})

	// Then the policy is reject, never replace
	req.ErrorIs(err, errors.ErrAlreadyRegistered)

	listener, ok := registry.Lookup(id)
	req.True(ok)
	req.Equal(Sink{}, listener)
}

func TestRegistry_Unregister(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id := domain.NewIdentifier()

	// Given a registered listener
	req.NoError(registry.Register(id, Sink{}))

	// When it unregisters
	req.NoError(registry.Unregister(id))

	// Then the identifier resolves to nothing
	_, ok := registry.Lookup(id)
	req.False(ok)
	req.Empty(registry.ListActive())

	// And the identifier can re-enter the registry
	req.NoError(registry.Register(id, Sink{}))
}

func TestRegistry_Unregister_AbsentIdentifier(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	err := registry.Unregister(domain.NewIdentifier())
	req.ErrorIs(err, errors.ErrNotRegistered)
}

func TestRegistry_Lookup_AbsenceIsNotAnError(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	listener, ok := registry.Lookup(domain.NewIdentifier())
	req.False(ok)
	req.Nil(listener)
}

func TestRegistry_ListActive_SnapshotSemantics(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id1 := domain.NewIdentifier()
	id2 := domain.NewIdentifier()
	req.NoError(registry.Register(id1, Sink{}))
	req.NoError(registry.Register(id2, Sink{}))

	// Given a snapshot taken before a mutation
	snapshot := registry.ListActive()
	req.Len(snapshot, 2)

	// When the registry mutates afterwards
	req.NoError(registry.Unregister(id1))

	// Then the snapshot still reflects the earlier point in time
	req.Len(snapshot, 2)
	req.Len(registry.ListActive(), 1)
}
