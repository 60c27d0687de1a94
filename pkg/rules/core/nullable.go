package core

import (
	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/types"
)

// NullableConstraintRule requires every new column to state whether it is
// nullable. An explicit false is as good as an explicit true.
type NullableConstraintRule struct{}

func (*NullableConstraintRule) Name() string { return "create-column-nullable-constraint" }

func (*NullableConstraintRule) Description() string {
	return "Columns added by createTable or addColumn must specify a nullable constraint"
}

func (*NullableConstraintRule) Supports(change types.Change) bool {
	switch change.(type) {
	case *types.CreateTable, *types.AddColumn:
		return true
	}
	return false
}

func (*NullableConstraintRule) CheckColumn(ctx *advisor.Context, _ types.Change, column *types.Column) ([]*advisor.Violation, error) {
	if column == nil {
		return nil, nil
	}
	if column.Constraints != nil && column.Constraints.Nullable != nil {
		return nil, nil
	}
	return []*advisor.Violation{
		ctx.Violation("Add column '%s' must specify nullable constraint", displayName(column.Name)),
	}, nil
}

func displayName(name string) string {
	if name == "" {
		return advisor.MissingName
	}
	return name
}
