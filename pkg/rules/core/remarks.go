package core

import (
	"strings"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/types"
)

// RemarksRequiredRule requires createTable to carry remarks.
type RemarksRequiredRule struct{}

func (*RemarksRequiredRule) Name() string { return "create-table-remarks" }

func (*RemarksRequiredRule) Description() string {
	return "createTable must contain a remarks attribute"
}

func (*RemarksRequiredRule) Supports(change types.Change) bool {
	_, ok := change.(*types.CreateTable)
	return ok
}

func (*RemarksRequiredRule) CheckChange(ctx *advisor.Context, change types.Change) ([]*advisor.Violation, error) {
	ct := change.(*types.CreateTable)
	if strings.TrimSpace(ct.Remarks) != "" {
		return nil, nil
	}
	table := ct.TableName
	return []*advisor.Violation{ctx.Violation("Create table must contain remark attribute", table)}, nil
}
