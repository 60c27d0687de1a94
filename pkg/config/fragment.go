package config

import (
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// RuleFragment is the partial settings of a rule as written in one
// configuration source. Nil fields were not set by that source.
type RuleFragment struct {
	Enabled      *bool   `koanf:"enabled"`
	Pattern      *string `koanf:"pattern"`
	ErrorMessage *string `koanf:"errorMessage"`
	DynamicValue *string `koanf:"dynamicValue"`
	MaxLength    *int    `koanf:"maxLength"`
}

// Merge returns f overlaid with the fields set in later.
// Fields left unset in later keep the value from f.
func (f RuleFragment) Merge(later RuleFragment) RuleFragment {
	if later.Enabled != nil {
		f.Enabled = later.Enabled
	}
	if later.Pattern != nil {
		f.Pattern = later.Pattern
	}
	if later.ErrorMessage != nil {
		f.ErrorMessage = later.ErrorMessage
	}
	if later.DynamicValue != nil {
		f.DynamicValue = later.DynamicValue
	}
	if later.MaxLength != nil {
		f.MaxLength = later.MaxLength
	}
	return f
}

// Build turns the fragment into an immutable RuleConfig.
func (f RuleFragment) Build() *RuleConfig {
	c := NewRuleConfig()
	if f.Enabled != nil {
		c.enabled = *f.Enabled
	}
	if f.Pattern != nil {
		c.pattern = *f.Pattern
	}
	if f.ErrorMessage != nil {
		c.errorMessage = *f.ErrorMessage
	}
	if f.DynamicValue != nil {
		c.dynamicValue = *f.DynamicValue
	}
	if f.MaxLength != nil {
		c.maxLength = *f.MaxLength
	}
	return c
}

// ruleEntry is the value of one rule name in one source: either a single
// configuration or a list of configurations.
type ruleEntry struct {
	list      bool
	fragments []RuleFragment
	source    string
}

func decodeEntry(source, rule string, raw interface{}) (ruleEntry, error) {
	entry := ruleEntry{source: source}
	switch v := raw.(type) {
	case []interface{}:
		entry.list = true
		for i, item := range v {
			frag, err := decodeFragment(item)
			if err != nil {
				return entry, &Error{Source: source, Rule: rule, Err: errors.Wrapf(err, "item %d", i)}
			}
			entry.fragments = append(entry.fragments, frag)
		}
	default:
		frag, err := decodeFragment(v)
		if err != nil {
			return entry, &Error{Source: source, Rule: rule, Err: err}
		}
		entry.fragments = []RuleFragment{frag}
	}
	return entry, nil
}

func decodeFragment(raw interface{}) (RuleFragment, error) {
	var frag RuleFragment
	switch v := raw.(type) {
	case nil:
		return frag, nil
	case bool:
		frag.Enabled = &v
		return frag, nil
	case map[string]interface{}:
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:     "koanf",
			ErrorUnused: true,
			Result:      &frag,
		})
		if err != nil {
			return frag, err
		}
		if err := decoder.Decode(v); err != nil {
			return frag, err
		}
		return frag, nil
	default:
		return frag, errors.Errorf("expected a mapping, a boolean or a list, got %T", raw)
	}
}

// mergeEntry combines an earlier and a later entry for the same rule.
// Single configurations merge field by field. A later list replaces an earlier
// list as a whole, since list items cannot be paired up unambiguously.
// Mixing the two forms is rejected.
func mergeEntry(rule string, earlier, later ruleEntry) (ruleEntry, error) {
	switch {
	case !earlier.list && !later.list:
		merged := earlier.fragments[0].Merge(later.fragments[0])
		return ruleEntry{fragments: []RuleFragment{merged}, source: later.source}, nil
	case earlier.list && later.list:
		slog.Debug("Rule configuration list replaced", "rule", rule, "by", later.source, "was", earlier.source)
		return later, nil
	default:
		return ruleEntry{}, &Error{
			Source: later.source,
			Rule:   rule,
			Err: errors.Errorf(
				"cannot merge a %s with the %s from %s",
				entryForm(later), entryForm(earlier), earlier.source,
			),
		}
	}
}

func entryForm(e ruleEntry) string {
	if e.list {
		return "list of configurations"
	}
	return "single configuration"
}
