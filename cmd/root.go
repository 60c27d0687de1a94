package cmd

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/config"
	"github.com/nsxbet/changelog-linter/pkg/logger"
)

var settingsFile string

// log is the command logger. Library packages log through the slog default,
// which PersistentPreRun points at the same handler.
var log logger.Interface = logger.New()

// errLintFailed signals that at least one changelog has violations. The
// report already describes them, so Execute does not log it.
var errLintFailed = errors.New("lint failed")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "changelog-linter",
	Short: "A lint tool for Liquibase changelogs",
	Long: `Changelog Linter checks Liquibase changelogs against configurable
rules before they are applied to a database.

Rules are configured in lqlint.json, lqlint.yaml or .lqlint.yaml files and
layered on top of the bundled defaults.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if viper.GetBool("debug") {
			level = slog.LevelDebug
		} else if viper.GetBool("verbose") {
			level = slog.LevelInfo
		}
		l := logger.NewWithLevel(level)
		slog.SetDefault(l.GetSlogLogger())
		log = l

		if viper.GetBool("no-color") {
			color.NoColor = true
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errLintFailed) {
		code := advisor.CodeOf(err)
		log.Error("changelog-linter failed", logger.Error(err), logger.Code(int(code)), "kind", code.String())
	}
	return err
}

func init() {
	cobra.OnInitialize(initSettings)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&settingsFile, "settings", "", "CLI settings file (default is $HOME/.changelog-linter.yaml)")
	flags.Bool("verbose", false, "enable verbose output")
	flags.Bool("debug", false, "enable debug output")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringSliceP("config", "c", nil, "rule configuration file, may be repeated; applied after discovered files")
	flags.StringSlice("search-dir", []string{"."}, "directories searched for lqlint configuration files")
	flags.Bool("no-defaults", false, "do not apply the bundled default rule configuration")

	// Bind flags to viper
	for _, name := range []string{"verbose", "debug", "no-color", "config", "search-dir", "no-defaults"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initSettings reads in the settings file and ENV variables if set.
func initSettings() {
	if settingsFile != "" {
		viper.SetConfigFile(settingsFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".changelog-linter")
	}

	viper.SetEnvPrefix("CHANGELOG_LINTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if settingsFile != "" || !errors.As(err, &notFound) {
			cobra.CheckErr(errors.Wrap(err, "failed to read settings file"))
		}
		return
	}
	slog.Debug("Using settings file", "file", viper.ConfigFileUsed())
}

// configSources returns the rule configuration sources in precedence order:
// bundled defaults, discovered files, then explicit files.
func configSources() []config.Source {
	var sources []config.Source
	if !viper.GetBool("no-defaults") {
		sources = append(sources, config.DefaultSource())
	}
	sources = append(sources, config.Discover(viper.GetStringSlice("search-dir")...)...)
	for _, path := range viper.GetStringSlice("config") {
		sources = append(sources, config.FileSource(path))
	}
	return sources
}

// warnUnregistered warns about configured rules that no registered rule
// implements. Such entries are kept but never run.
func warnUnregistered(cfg *config.Config, registry *advisor.Registry) {
	for _, name := range cfg.RuleNames() {
		if _, ok := registry.Lookup(name); !ok {
			log.Warn("Configured rule is not registered", "rule", name, "sources", cfg.Sources())
		}
	}
}
