package participant

import (
	"context"

	"stage-lab/contract"
	"stage-lab/domain"
)

// FuncListener adapts a plain function to the contract.Listener interface.
type FuncListener func(ctx context.Context, sender domain.Identifier, w domain.Word) error

func (f FuncListener) Receive(ctx context.Context, sender domain.Identifier, w domain.Word) error {
	return f(ctx, sender, w)
}

// Listen registers fn under a fresh identifier and returns that identifier
// together with a detach function. The detach function is idempotent-enough
// for shutdown paths: unregistering an already-removed identifier reports
// ErrNotRegistered, which callers on a teardown path may ignore.
//
// This is the scoped-resource replacement for weak-reference cleanup:
// acquire the registration on start, guarantee the release on the shutdown
// path, and the registry never leaks a handle.
func Listen(registry contract.IRegistry, fn FuncListener) (domain.Identifier, func() error, error) {
	id := domain.NewIdentifier()
	if err := registry.Register(id, fn); err != nil {
		return domain.Identifier{}, nil, err
	}

	detach := func() error {
		return registry.Unregister(id)
	}
	return id, detach, nil
}
