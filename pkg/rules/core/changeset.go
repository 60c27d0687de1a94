package core

import (
	"strings"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/types"
)

// HasCommentRule requires every changeset to carry a comment.
type HasCommentRule struct{}

func (*HasCommentRule) Name() string { return "has-comment" }

func (*HasCommentRule) Description() string { return "Changesets must have a comment" }

func (*HasCommentRule) CheckChangeSet(ctx *advisor.Context, changeSet *types.ChangeSet) ([]*advisor.Violation, error) {
	if strings.TrimSpace(changeSet.Comment) != "" {
		return nil, nil
	}
	return []*advisor.Violation{ctx.Violation("Changeset '%s' must have a comment", changeSet.ID)}, nil
}

// HasContextRule requires every changeset to declare a context. With a
// pattern, the context must also match it.
type HasContextRule struct{}

func (*HasContextRule) Name() string { return "has-context" }

func (*HasContextRule) Description() string { return "Changesets must have a context" }

func (*HasContextRule) CheckChangeSet(ctx *advisor.Context, changeSet *types.ChangeSet) ([]*advisor.Violation, error) {
	context := strings.TrimSpace(changeSet.Context)
	if context == "" {
		return []*advisor.Violation{ctx.Violation("Changeset '%s' must have a context", changeSet.ID)}, nil
	}
	resolved, err := ctx.Pattern(nil)
	if err != nil {
		return nil, err
	}
	ok, err := ctx.MatchPattern(resolved, context)
	if err != nil || ok {
		return nil, err
	}
	return []*advisor.Violation{ctx.Violation("Changeset '%s' context '%s' must follow pattern '%s'", changeSet.ID, context, resolved)}, nil
}
