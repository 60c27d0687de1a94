package core

import (
	"strconv"
	"unicode/utf8"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/types"
)

// NameFunc extracts the object names a naming rule checks from a change.
// ok is false for changes the rule does not apply to.
type NameFunc func(change types.Change) (names []string, ok bool)

// NamingPatternRule checks object names against the configured pattern.
// A missing name always fails; present names fail when a pattern is
// configured and they do not match it. All failing names of one change are
// reported together in a single violation.
type NamingPatternRule struct {
	name           string
	description    string
	defaultMessage string
	names          NameFunc
}

// NewNamingPatternRule builds a naming rule. defaultMessage receives the
// joined names and then the resolved pattern.
func NewNamingPatternRule(name, description, defaultMessage string, names NameFunc) *NamingPatternRule {
	return &NamingPatternRule{
		name:           name,
		description:    description,
		defaultMessage: defaultMessage,
		names:          names,
	}
}

func (r *NamingPatternRule) Name() string        { return r.name }
func (r *NamingPatternRule) Description() string { return r.description }

func (r *NamingPatternRule) Supports(change types.Change) bool {
	_, ok := r.names(change)
	return ok
}

func (r *NamingPatternRule) CheckChange(ctx *advisor.Context, change types.Change) ([]*advisor.Violation, error) {
	names, _ := r.names(change)
	if len(names) == 0 {
		return nil, nil
	}
	resolved, err := ctx.Pattern(change)
	if err != nil {
		return nil, err
	}

	var failing []string
	for _, name := range names {
		if name == "" {
			failing = append(failing, name)
			continue
		}
		ok, err := ctx.MatchPattern(resolved, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			failing = append(failing, name)
		}
	}
	if len(failing) == 0 {
		return nil, nil
	}
	return []*advisor.Violation{ctx.Violation(r.defaultMessage, advisor.JoinNames(failing), resolved)}, nil
}

// ObjectNameLengthRule limits the length of the names object-name checks.
type ObjectNameLengthRule struct{}

func (*ObjectNameLengthRule) Name() string { return "object-name-length" }

func (*ObjectNameLengthRule) Description() string {
	return "Object names must not be longer than maxLength characters"
}

func (*ObjectNameLengthRule) Supports(change types.Change) bool {
	_, ok := objectNames(change)
	return ok
}

func (*ObjectNameLengthRule) CheckChange(ctx *advisor.Context, change types.Change) ([]*advisor.Violation, error) {
	limit := ctx.Config.MaxLength()
	if limit <= 0 {
		return nil, nil
	}
	names, _ := objectNames(change)
	var long []string
	for _, name := range names {
		if utf8.RuneCountInString(name) > limit {
			long = append(long, name)
		}
	}
	if len(long) == 0 {
		return nil, nil
	}
	return []*advisor.Violation{
		ctx.Violation("Object name '%s' name must be less than %s characters", advisor.JoinNames(long), strconv.Itoa(limit)),
	}, nil
}

func columnNames(columns []*types.Column) []string {
	names := make([]string, 0, len(columns))
	for _, col := range columns {
		if col == nil {
			continue
		}
		names = append(names, col.Name)
	}
	return names
}

func objectNames(change types.Change) ([]string, bool) {
	switch c := change.(type) {
	case *types.AddColumn:
		return columnNames(c.Columns), true
	case *types.CreateTable:
		return columnNames(c.Columns), true
	case *types.AddForeignKeyConstraint:
		return []string{c.ConstraintName}, true
	case *types.AddPrimaryKey:
		return []string{c.ConstraintName}, true
	case *types.AddUniqueConstraint:
		return []string{c.ConstraintName}, true
	case *types.MergeColumns:
		return []string{c.FinalColumnName}, true
	case *types.RenameColumn:
		return []string{c.NewColumnName}, true
	case *types.RenameView:
		return []string{c.NewViewName}, true
	case *types.CreateView:
		return []string{c.ViewName}, true
	case *types.CreateIndex:
		return []string{c.IndexName}, true
	}
	return nil, false
}

func primaryKeyNames(change types.Change) ([]string, bool) {
	switch c := change.(type) {
	case *types.AddPrimaryKey:
		return []string{c.ConstraintName}, true
	case *types.CreateTable:
		var names []string
		for _, col := range c.Columns {
			if col != nil && col.Constraints.IsPrimaryKey() {
				names = append(names, col.Constraints.PrimaryKeyName)
			}
		}
		return names, true
	}
	return nil, false
}

func tableNames(change types.Change) ([]string, bool) {
	switch c := change.(type) {
	case *types.CreateTable:
		return []string{c.TableName}, true
	case *types.RenameTable:
		return []string{c.NewTableName}, true
	}
	return nil, false
}

func foreignKeyNames(change types.Change) ([]string, bool) {
	if c, ok := change.(*types.AddForeignKeyConstraint); ok {
		return []string{c.ConstraintName}, true
	}
	return nil, false
}

func uniqueConstraintNames(change types.Change) ([]string, bool) {
	if c, ok := change.(*types.AddUniqueConstraint); ok {
		return []string{c.ConstraintName}, true
	}
	return nil, false
}

func indexNames(change types.Change) ([]string, bool) {
	if c, ok := change.(*types.CreateIndex); ok {
		return []string{c.IndexName}, true
	}
	return nil, false
}

// Naming rules.
var (
	ObjectNameRule = NewNamingPatternRule(
		"object-name",
		"Names of created or renamed objects must follow a pattern",
		"Object name '%s' must follow pattern '%s'",
		objectNames,
	)
	PrimaryKeyNameRule = NewNamingPatternRule(
		"primary-key-name",
		"Primary keys must be named and follow a pattern",
		"Primary key name %s is missing or does not follow pattern '%s'",
		primaryKeyNames,
	)
	TableNameRule = NewNamingPatternRule(
		"table-name",
		"Table names must follow a pattern",
		"Table name '%s' must follow pattern '%s'",
		tableNames,
	)
	ForeignKeyNameRule = NewNamingPatternRule(
		"foreign-key-name",
		"Foreign keys must be named and follow a pattern",
		"Foreign key name '%s' is missing or does not follow pattern '%s'",
		foreignKeyNames,
	)
	UniqueConstraintNameRule = NewNamingPatternRule(
		"unique-constraint-name",
		"Unique constraints must be named and follow a pattern",
		"Unique constraint name '%s' is missing or does not follow pattern '%s'",
		uniqueConstraintNames,
	)
	CreateIndexNameRule = NewNamingPatternRule(
		"create-index-name",
		"Indexes must be named and follow a pattern",
		"Index name '%s' is missing or does not follow pattern '%s'",
		indexNames,
	)
)
