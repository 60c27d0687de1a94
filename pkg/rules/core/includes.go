package core

import (
	"github.com/nsxbet/changelog-linter/pkg/advisor"
)

// NoDuplicateIncludesRule fails the run when a changelog location is walked a
// second time. It records every location it sees in the run's visited set.
type NoDuplicateIncludesRule struct{}

func (*NoDuplicateIncludesRule) Name() string { return "no-duplicate-includes" }

func (*NoDuplicateIncludesRule) Description() string {
	return "A changelog file must not be included more than once"
}

func (*NoDuplicateIncludesRule) CheckInclude(ctx *advisor.Context, location string, visited advisor.Visited) error {
	if !visited.Visit(location) {
		return nil
	}
	return &advisor.DuplicateIncludeError{
		Location: location,
		Message:  ctx.Message("Changelog file '%s' was included more than once", location),
	}
}
