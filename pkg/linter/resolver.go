package linter

import (
	"context"

	"github.com/pkg/errors"

	"github.com/nsxbet/changelog-linter/pkg/types"
)

// Resolver loads a changelog by location.
type Resolver interface {
	Load(ctx context.Context, location string) (*types.ChangeLog, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, location string) (*types.ChangeLog, error)

func (f ResolverFunc) Load(ctx context.Context, location string) (*types.ChangeLog, error) {
	return f(ctx, location)
}

// MapResolver serves changelogs from memory.
type MapResolver map[string]*types.ChangeLog

func (m MapResolver) Load(_ context.Context, location string) (*types.ChangeLog, error) {
	cl, ok := m[location]
	if !ok {
		return nil, errors.Errorf("changelog %q not found", location)
	}
	return cl, nil
}
