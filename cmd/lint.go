package cmd

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/changelog"
	"github.com/nsxbet/changelog-linter/pkg/config"
	"github.com/nsxbet/changelog-linter/pkg/linter"
	"github.com/nsxbet/changelog-linter/pkg/report"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <changelog>...",
	Short: "Lint changelogs against the configured rules",
	Long: `Lint one or more root changelogs (YAML or JSON) and every changelog they
include. Each root changelog is linted independently.

The command exits with a non-zero status when any changelog has violations
or when linting cannot complete, for example on an invalid configuration
or a changelog included twice.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringP("output", "o", string(report.FormatText), "output format (text, json, yaml)")
	_ = viper.BindPFlag("output", lintCmd.Flags().Lookup("output"))
}

func runLint(cmd *cobra.Command, args []string) error {
	log.Debug("Starting lint command", "args", args)

	reporter, err := report.New(report.Format(viper.GetString("output")))
	if err != nil {
		return err
	}

	loader := config.NewLoader(configSources()...)
	cfg, err := loader.Get()
	if err != nil {
		return err
	}
	warnUnregistered(cfg, advisor.DefaultRegistry())

	l := linter.New(
		linter.WithLoader(loader),
		linter.WithResolver(changelog.NewLoader()),
	)

	results := make([]*linter.Result, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, location := range args {
		i, location := i, location
		g.Go(func() error {
			result, err := l.LintLocation(ctx, location)
			if err != nil {
				return errors.Wrapf(err, "failed to lint %s", location)
			}
			log.Info("Linted changelog", "result", result.String())
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := reporter.Report(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	for _, result := range results {
		if !result.Pass {
			return errLintFailed
		}
	}
	return nil
}
