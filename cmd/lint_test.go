package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/config"
	"github.com/nsxbet/changelog-linter/pkg/logger"
)

func TestLintCommand(t *testing.T) {
	dir := t.TempDir()
	changeLog := filepath.Join(dir, "changelog.yaml")
	require.NoError(t, os.WriteFile(changeLog, []byte(`
databaseChangeLog:
  - changeSet:
      id: 1
      author: dev
      changes:
        - createTable:
            tableName: ORDERS
            columns:
              - column:
                  name: ID
                  constraints:
                    nullable: false
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lqlint.yaml"), []byte(`
rules:
  create-table-remarks: true
`), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"lint", "--no-defaults", "--no-color", "--search-dir", dir, "-o", "json", changeLog})

	err := Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errLintFailed))
	assert.Contains(t, out.String(), `"rule": "create-table-remarks"`)
	assert.Contains(t, out.String(), `"pass": false`)
}

func TestWarnUnregistered(t *testing.T) {
	var buf bytes.Buffer
	previous := log
	log = logger.NewWithWriter(&buf, slog.LevelWarn)
	defer func() { log = previous }()

	cfg := config.New(map[string][]*config.RuleConfig{
		"create-table-remarks": {config.NewRuleConfig()},
		"no-such-rule":         {config.NewRuleConfig()},
	})
	warnUnregistered(cfg, advisor.DefaultRegistry())

	out := buf.String()
	assert.Contains(t, out, "Configured rule is not registered")
	assert.Contains(t, out, "rule=no-such-rule")
	assert.NotContains(t, out, "create-table-remarks")
}
