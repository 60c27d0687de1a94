package advisor

import (
	"github.com/nsxbet/changelog-linter/pkg/config"
	"github.com/nsxbet/changelog-linter/pkg/pattern"
	"github.com/nsxbet/changelog-linter/pkg/types"
)

// MissingName stands in for an object name that was not given.
const MissingName = "<missing>"

// Violation is one reported instance of non-compliance.
type Violation struct {
	Rule      string `json:"rule" yaml:"rule"`
	Message   string `json:"message" yaml:"message"`
	ChangeLog string `json:"changeLog,omitempty" yaml:"changeLog,omitempty"`
	ChangeSet string `json:"changeSet,omitempty" yaml:"changeSet,omitempty"`
}

func (v *Violation) String() string {
	return v.Message
}

// Context is what a rule sees of the run while checking one subject with one
// of its configurations.
type Context struct {
	Rule      string
	Config    *config.RuleConfig
	Matcher   *pattern.Matcher
	ChangeLog *types.ChangeLog
	ChangeSet *types.ChangeSet
}

// Message renders the configured error message, or defaultTemplate when
// none is configured.
func (c *Context) Message(defaultTemplate string, args ...string) string {
	template := defaultTemplate
	if c.Config != nil && c.Config.ErrorMessage() != "" {
		template = c.Config.ErrorMessage()
	}
	return FormatMessage(template, args...)
}

// Violation builds a violation located at the current changelog and changeset.
func (c *Context) Violation(defaultTemplate string, args ...string) *Violation {
	v := &Violation{
		Rule:    c.Rule,
		Message: c.Message(defaultTemplate, args...),
	}
	if c.ChangeLog != nil {
		v.ChangeLog = c.ChangeLog.Location
	}
	if c.ChangeSet != nil {
		v.ChangeSet = c.ChangeSet.ID
	}
	return v
}

// Pattern resolves the configured pattern against subject. It returns "" when
// no pattern is configured.
func (c *Context) Pattern(subject pattern.Subject) (string, error) {
	if c.Config == nil || !c.Config.HasPattern() {
		return "", nil
	}
	resolved, err := pattern.Resolve(c.Config.Pattern(), c.Config.DynamicValue(), subject)
	if err != nil {
		return "", &config.Error{Rule: c.Rule, Err: err}
	}
	return resolved, nil
}

// MatchPattern reports whether candidate fully matches a pattern returned by
// Pattern. An empty pattern matches everything.
func (c *Context) MatchPattern(resolved, candidate string) (bool, error) {
	if resolved == "" {
		return true, nil
	}
	m := c.Matcher
	if m == nil {
		m = pattern.Default()
	}
	ok, err := m.MatchString(resolved, candidate)
	if err != nil {
		return false, &config.Error{Rule: c.Rule, Err: err}
	}
	return ok, nil
}

// Matches checks candidate against the configured pattern, resolving the
// dynamic value from subject. Without a pattern every candidate matches.
// The resolved pattern is returned for use in messages.
func (c *Context) Matches(subject pattern.Subject, candidate string) (bool, string, error) {
	resolved, err := c.Pattern(subject)
	if err != nil {
		return false, "", err
	}
	ok, err := c.MatchPattern(resolved, candidate)
	return ok, resolved, err
}
