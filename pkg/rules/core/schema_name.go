package core

import (
	"github.com/nsxbet/changelog-linter/pkg/advisor"
)

// SchemaNameRule checks every schemaName value in a document against the
// configured pattern. Without a pattern the rule does not apply.
type SchemaNameRule struct{}

func (*SchemaNameRule) Name() string { return "schema-name" }

func (*SchemaNameRule) Description() string {
	return "Schema names must use a property token instead of a literal name"
}

func (*SchemaNameRule) CheckValue(ctx *advisor.Context, value string) ([]*advisor.Violation, error) {
	resolved, err := ctx.Pattern(nil)
	if err != nil {
		return nil, err
	}
	if resolved == "" {
		return nil, nil
	}
	ok, err := ctx.MatchPattern(resolved, value)
	if err != nil || ok {
		return nil, err
	}
	return []*advisor.Violation{ctx.Violation("Must use schema name token, not %s", value, resolved)}, nil
}
