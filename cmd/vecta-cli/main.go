// Command vecta-cli is a thin command-line front end over pkg/vecta,
// grounded on the teacher's cmd/warren/main.go root-command shape: one
// cobra root command, persistent connection flags, logging initialized
// once via cobra.OnInitialize before any subcommand runs.
package main

import (
	"fmt"
	"os"

	"github.com/cuemby/vecta-go/pkg/vlog"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "vecta-cli",
	Short:   "vecta-cli talks to a Vecta server over the same client the SDK uses",
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("vecta-cli version %s\nCommit: %s\n", Version, Commit))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("server", "", "Server base URL, e.g. http://localhost:8080 (overrides the active profile)")
	rootCmd.PersistentFlags().String("grpc-addr", "", "RPC data-plane address (overrides the active profile)")
	rootCmd.PersistentFlags().String("api-key", "", "Static API key (overrides the active profile)")
	rootCmd.PersistentFlags().String("profile", "", "Named connection profile from ~/.vecta/config.yaml (defaults to the active profile)")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(roleCmd)
	rootCmd.AddCommand(replicationCmd)
	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(aliasCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	vlog.Init(vlog.Config{
		Level:      vlog.Level(logLevel),
		JSONOutput: logJSON,
	})
}
