package core

import (
	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/types"
)

const noPreconditionsMessage = "Preconditions are not allowed in this project"

// NoPreconditionsRule rejects preconditions on changelogs and changesets.
type NoPreconditionsRule struct{}

func (*NoPreconditionsRule) Name() string { return "no-preconditions" }

func (*NoPreconditionsRule) Description() string {
	return "Changelogs and changesets must not declare preconditions"
}

func (*NoPreconditionsRule) CheckChangeLog(ctx *advisor.Context, changeLog *types.ChangeLog) ([]*advisor.Violation, error) {
	if len(changeLog.Preconditions) == 0 {
		return nil, nil
	}
	return []*advisor.Violation{ctx.Violation(noPreconditionsMessage)}, nil
}

func (*NoPreconditionsRule) CheckChangeSet(ctx *advisor.Context, changeSet *types.ChangeSet) ([]*advisor.Violation, error) {
	if len(changeSet.Preconditions) == 0 {
		return nil, nil
	}
	return []*advisor.Violation{ctx.Violation(noPreconditionsMessage)}, nil
}
