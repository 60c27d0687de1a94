package linter

import (
	"fmt"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
)

// Result is the outcome of linting one changelog and everything it includes.
type Result struct {
	// Location of the root changelog.
	Location string `json:"location" yaml:"location"`

	// Pass is true when no violation was found.
	Pass bool `json:"pass" yaml:"pass"`

	// Violations in walk order. Empty when Pass is true.
	Violations []*advisor.Violation `json:"violations" yaml:"violations"`

	// Summary provides aggregate counts about the walk.
	Summary Summary `json:"summary" yaml:"summary"`
}

// Summary provides aggregate counts about a lint run.
type Summary struct {
	// Violations is the number of violations found.
	Violations int `json:"violations" yaml:"violations"`

	// ChangeLogs is the number of changelogs walked, the root included.
	ChangeLogs int `json:"changeLogs" yaml:"changeLogs"`

	// ChangeSets is the number of changesets checked.
	ChangeSets int `json:"changeSets" yaml:"changeSets"`

	// Changes is the number of changes checked.
	Changes int `json:"changes" yaml:"changes"`
}

// HasViolations returns true if the run found any violation.
//
// This is useful for CI pipelines that should fail on violations:
//
//	if result.HasViolations() {
//	    os.Exit(1)
//	}
func (r *Result) HasViolations() bool {
	return len(r.Violations) > 0
}

// String returns a one-line summary of the result.
//
// Example output:
//
//	db/changelog.yaml: FAIL, 2 violations (1 changelogs, 3 changesets, 5 changes)
func (r *Result) String() string {
	status := "PASS"
	if !r.Pass {
		status = "FAIL"
	}
	return fmt.Sprintf(
		"%s: %s, %d violations (%d changelogs, %d changesets, %d changes)",
		r.Location,
		status,
		r.Summary.Violations,
		r.Summary.ChangeLogs,
		r.Summary.ChangeSets,
		r.Summary.Changes,
	)
}

// FilterByRule returns the violations reported by the named rule.
//
//	missing := result.FilterByRule("create-table-remarks")
func (r *Result) FilterByRule(rule string) []*advisor.Violation {
	filtered := make([]*advisor.Violation, 0)
	for _, v := range r.Violations {
		if v.Rule == rule {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
