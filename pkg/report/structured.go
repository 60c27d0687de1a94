package report

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/changelog-linter/pkg/linter"
)

// JSONReporter writes an indented JSON Document.
type JSONReporter struct{}

func (*JSONReporter) Report(w io.Writer, results []*linter.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(results)); err != nil {
		return errors.Wrap(err, "failed to encode JSON report")
	}
	return nil
}

// YAMLReporter writes a YAML Document.
type YAMLReporter struct{}

func (*YAMLReporter) Report(w io.Writer, results []*linter.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(results)); err != nil {
		return errors.Wrap(err, "failed to encode YAML report")
	}
	return enc.Close()
}
