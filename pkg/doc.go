// Package pkg provides lint functionality for Liquibase changelogs in Go applications.
//
// Changelog Linter checks changelogs against configurable naming and
// structure rules before they reach a database.
//
// # Package Structure
//
// The pkg directory contains several specialized packages:
//
//   - linter: High-level API that walks changelogs and their includes (recommended starting point)
//   - advisor: Rule interfaces, registry, runner and error taxonomy
//   - rules/core: The built-in rules
//   - config: Rule configuration loading, layering and validation
//   - pattern: Naming patterns with dynamic value substitution
//   - changelog: YAML and JSON changelog reader
//   - types: The changelog model
//   - report: Text, JSON and YAML reports
//   - logger: Logging abstraction layer
//
// # Getting Started
//
//	import (
//	    "github.com/nsxbet/changelog-linter/pkg/changelog"
//	    "github.com/nsxbet/changelog-linter/pkg/linter"
//	)
//
//	func main() {
//	    l := linter.New(linter.WithResolver(changelog.NewLoader()))
//	    result, err := l.LintLocation(context.Background(), "db/changelog.yaml")
//	    // Process results...
//	}
//
// # Rules
//
// Changelog rules: no-preconditions, no-duplicate-includes, schema-name
//
// Changeset rules: no-preconditions, has-comment, has-context
//
// Change rules:
//   - create-table-remarks
//   - create-column-nullable-constraint
//   - object-name, object-name-length
//   - table-name, primary-key-name, foreign-key-name
//   - unique-constraint-name, create-index-name
//
// # Configuration
//
// Rules are configured in lqlint.json, lqlint.yaml or .lqlint.yaml files,
// layered over the bundled defaults:
//
//	rules:
//	  create-table-remarks: true
//	  primary-key-name:
//	    pattern: "^{{value}}_PK$"
//	    dynamicValue: tableName
//
// A rule only runs when it is configured and enabled.
//
// # Custom Rules
//
// Implement one or more scope interfaces of the advisor package and register
// the rule:
//
//	type authorRule struct{}
//
//	func (*authorRule) Name() string        { return "lower-case-author" }
//	func (*authorRule) Description() string { return "Authors must be lower case" }
//
//	func (*authorRule) CheckChangeSet(ctx *advisor.Context, cs *types.ChangeSet) ([]*advisor.Violation, error) {
//	    // Validation logic
//	}
//
//	func init() {
//	    advisor.Register(&authorRule{})
//	}
//
// # Error Handling
//
// Lint distinguishes between:
//   - Violations (returned in Result)
//   - Fatal errors: configuration errors, duplicate includes, include cycles and rule failures
//
// A fatal error aborts the walk and no partial result is returned.
//
// # Thread Safety
//
// Linter instances are safe for concurrent use and can be reused.
package pkg
