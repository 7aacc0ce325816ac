package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/routekit/routetpl/internal/lint"
)

// Version is the tool version, checked against the config's
// min_version constraint.
const Version = "1.0.0"

var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:     "routelint",
	Short:   "routelint checks route templates for grammar violations",
	Version: Version,

	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `routelint parses route templates such as "{controller}/{action}/{id?}"
and reports grammar violations: mismatched braces, consecutive
separators or parameters, misplaced optional and catch-all parameters,
conflicting parameter modifiers and duplicate parameter names.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.routelint.yaml or .routelint.toml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
}

// loadConfig loads the configured or default config file. A missing
// default file is not an error.
func loadConfig() (*lint.Config, error) {
	path := cfgFile
	if path == "" {
		for _, candidate := range []string{".routelint.yaml", ".routelint.toml"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return &lint.Config{}, nil
		}
	}
	cfg, err := lint.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckToolVersion(Version); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "routelint: %s: %v\n", msg, err)
}
