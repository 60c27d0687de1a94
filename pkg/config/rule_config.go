package config

// RuleConfig holds the effective settings of one rule configuration.
// It is immutable once built and is shared by every evaluation in a run.
type RuleConfig struct {
	enabled      bool
	pattern      string
	errorMessage string
	dynamicValue string
	maxLength    int
}

// RuleOption customizes a RuleConfig built with NewRuleConfig.
type RuleOption func(*RuleConfig)

// NewRuleConfig builds a RuleConfig. Rules are enabled unless WithEnabled(false) is given.
//
// Example:
//
//	cfg := config.NewRuleConfig(
//	    config.WithPattern("^{{value}}_PK$"),
//	    config.WithDynamicValue("tableName"),
//	)
func NewRuleConfig(opts ...RuleOption) *RuleConfig {
	c := &RuleConfig{enabled: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithEnabled sets the enabled flag.
func WithEnabled(enabled bool) RuleOption {
	return func(c *RuleConfig) {
		c.enabled = enabled
	}
}

// WithPattern sets the pattern. It may contain the {{value}} placeholder.
func WithPattern(pattern string) RuleOption {
	return func(c *RuleConfig) {
		c.pattern = pattern
	}
}

// WithErrorMessage overrides the rule's default message template.
func WithErrorMessage(message string) RuleOption {
	return func(c *RuleConfig) {
		c.errorMessage = message
	}
}

// WithDynamicValue names the subject attribute substituted into the pattern.
func WithDynamicValue(key string) RuleOption {
	return func(c *RuleConfig) {
		c.dynamicValue = key
	}
}

// WithMaxLength sets the length limit used by length rules.
func WithMaxLength(n int) RuleOption {
	return func(c *RuleConfig) {
		c.maxLength = n
	}
}

func (c *RuleConfig) Enabled() bool        { return c.enabled }
func (c *RuleConfig) Pattern() string      { return c.pattern }
func (c *RuleConfig) HasPattern() bool     { return c.pattern != "" }
func (c *RuleConfig) ErrorMessage() string { return c.errorMessage }
func (c *RuleConfig) DynamicValue() string { return c.dynamicValue }
func (c *RuleConfig) MaxLength() int       { return c.maxLength }
