package advisor

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/nsxbet/changelog-linter/pkg/config"
)

// ConfigError is a fatal configuration error naming the offending rule.
type ConfigError = config.Error

// DuplicateIncludeError aborts a run when a changelog location is walked twice
// while duplicate include checking is enabled.
type DuplicateIncludeError struct {
	Location string
	Message  string
}

func (e *DuplicateIncludeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("changelog file %q was included more than once", e.Location)
}

// InternalError wraps an unexpected failure inside a rule.
type InternalError struct {
	Rule string
	Err  error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("rule %q failed: %v", e.Rule, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// IncludeCycleError reports changelogs that include each other. Chain starts
// and ends with the same location.
type IncludeCycleError struct {
	Chain []string
}

func (e *IncludeCycleError) Error() string {
	return "changelog include cycle: " + strings.Join(e.Chain, " -> ")
}

// IsFatal reports whether err is one of the errors that abort a run.
func IsFatal(err error) bool {
	return CodeOf(err) != Ok
}

// CodeOf maps an error to its code.
func CodeOf(err error) Code {
	if err == nil {
		return Ok
	}
	var (
		cfgErr   *ConfigError
		dupErr   *DuplicateIncludeError
		cycleErr *IncludeCycleError
	)
	switch {
	case errors.As(err, &dupErr):
		return DuplicateInclude
	case errors.As(err, &cycleErr):
		return IncludeCycle
	case errors.As(err, &cfgErr):
		return Configuration
	}
	return Internal
}
