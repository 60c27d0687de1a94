// Package core holds the built-in changelog rules. Importing it registers
// them with the default advisor registry:
//
//	import _ "github.com/nsxbet/changelog-linter/pkg/rules/core"
package core

import (
	"github.com/nsxbet/changelog-linter/pkg/advisor"
)

// All returns the built-in rules in registration order.
func All() []advisor.Rule {
	return []advisor.Rule{
		&NoDuplicateIncludesRule{},
		&SchemaNameRule{},
		&NoPreconditionsRule{},
		&HasCommentRule{},
		&HasContextRule{},
		&RemarksRequiredRule{},
		&NullableConstraintRule{},
		ObjectNameRule,
		&ObjectNameLengthRule{},
		PrimaryKeyNameRule,
		TableNameRule,
		ForeignKeyNameRule,
		UniqueConstraintNameRule,
		CreateIndexNameRule,
	}
}

// RegisterAll adds the built-in rules to registry.
func RegisterAll(registry *advisor.Registry) {
	for _, rule := range All() {
		registry.Register(rule)
	}
}

func init() {
	RegisterAll(advisor.DefaultRegistry())
}
