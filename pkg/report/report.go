// Package report renders lint results.
package report

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/nsxbet/changelog-linter/pkg/linter"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// Reporter writes the results of one invocation.
type Reporter interface {
	Report(w io.Writer, results []*linter.Result) error
}

// New returns the reporter for format.
func New(format Format) (Reporter, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatText, "":
		return &TextReporter{}, nil
	case FormatJSON:
		return &JSONReporter{}, nil
	case FormatYAML:
		return &YAMLReporter{}, nil
	}
	return nil, errors.Errorf("unsupported output format %q", format)
}

// Document is the structured form of a report.
type Document struct {
	Pass    bool             `json:"pass" yaml:"pass"`
	Results []*linter.Result `json:"results" yaml:"results"`
}

// NewDocument builds a Document. It passes only when every result passes.
func NewDocument(results []*linter.Result) *Document {
	doc := &Document{Pass: true, Results: results}
	if doc.Results == nil {
		doc.Results = []*linter.Result{}
	}
	for _, r := range results {
		if !r.Pass {
			doc.Pass = false
		}
	}
	return doc
}
