package main

import (
	"fmt"
	"os"

	"github.com/aretw0/envchecker"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "envchecker",
	Short: "envchecker validates environment variables against a schema",
	Long: `envchecker checks that every variable declared in envchecker.config.yaml is present
and well-formed before your application starts. Running it without a subcommand is the same as "envchecker check".`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", envchecker.DefaultConfigFile, "Path to the schema file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}
