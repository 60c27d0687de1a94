package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/config"
	"github.com/nsxbet/changelog-linter/pkg/report"
	_ "github.com/nsxbet/changelog-linter/pkg/rules/core"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rules and their effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configSources()...)
		if err != nil {
			return err
		}
		warnUnregistered(cfg, advisor.DefaultRegistry())
		report.RulesTable(cmd.OutOrStdout(), advisor.DefaultRegistry(), cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
