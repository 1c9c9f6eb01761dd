// Stackshift - Switch Stack Migration Tool
//
// A CLI tool for migrating interface configuration between heterogeneous
// switch hardware:
//   - Reads interface configuration from old switches (SSH, Telnet fallback)
//   - Reinterprets vendor naming dialects into a neutral model
//   - Renumbers interfaces for a target stack topology
//   - Aggregates multiple physical switches into one logical stack
//   - Regenerates a complete configuration script for the replacement stack
//
// Typical flow:
//
//	stackshift stack process -f inventory.yaml          # step 1: collect
//	stackshift generate --stack BLD-A --sysname SW-A \
//	  --ip 10.0.0.10 --gateway 10.0.0.1                 # step 2: render
//
// Alternative, device-free flow from a port-mapping sheet:
//
//	stackshift layer3 -f mappings.csv --sysname SW-A \
//	  --ip 10.0.0.10 --gateway 10.0.0.1
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackshift-net/stackshift/pkg/session"
	"github.com/stackshift-net/stackshift/pkg/settings"
	"github.com/stackshift-net/stackshift/pkg/util"
	"github.com/stackshift-net/stackshift/pkg/version"
)

var (
	// Global option flags
	verbose    bool
	jsonOutput bool

	// Global state
	cfg *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "stackshift",
	Short:         "Switch Stack Migration Tool",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Stackshift migrates interface configuration from old switches onto a
replacement stack: extract, aggregate, renumber, and regenerate.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		util.SetLogOutput(cmd.ErrOrStderr())
		if verbose {
			if err := util.SetLogLevel("debug"); err != nil {
				return err
			}
		}

		var err error
		cfg, err = settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings from environment: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("stackshift", version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output machine-readable JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(stackCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(layer3Cmd)
}

// sessionStore picks the stack session backend: Redis when configured,
// local files otherwise.
func sessionStore() session.Store {
	if cfg.RedisAddr != "" {
		util.Debugf("using redis session store at %s", cfg.RedisAddr)
		return session.NewRedisStore(cfg.RedisAddr)
	}
	return session.NewFileStore(cfg.SessionDir)
}
