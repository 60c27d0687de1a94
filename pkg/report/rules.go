package report

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/config"
)

// RulesTable writes the registered rules with their state under cfg.
func RulesTable(w io.Writer, registry *advisor.Registry, cfg *config.Config) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Scope", "Enabled", "Pattern", "Description"})

	for _, rule := range registry.Rules() {
		var scopes []string
		for _, s := range advisor.Scopes(rule) {
			scopes = append(scopes, s.String())
		}
		var patterns []string
		for _, rc := range cfg.Rule(rule.Name()) {
			if rc.HasPattern() {
				patterns = append(patterns, rc.Pattern())
			}
		}
		t.AppendRow(table.Row{
			rule.Name(),
			strings.Join(scopes, ","),
			cfg.Enabled(rule.Name()),
			strings.Join(patterns, "\n"),
			rule.Description(),
		})
	}
	t.Render()
}
