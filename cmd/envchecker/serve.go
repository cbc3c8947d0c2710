package main

import (
	"fmt"
	"os"

	"github.com/aretw0/envchecker/internal/cli"
	"github.com/aretw0/envchecker/internal/logging"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP validation API",
	Long:  `Exposes POST /v1/validate, GET /v1/check (the server's own schema and environment), /healthz and /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		port, _ := cmd.Flags().GetString("port")
		logLevel, _ := cmd.Flags().GetString("log-level")
		logFormat, _ := cmd.Flags().GetString("log-format")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		err := cli.RunServe(sigCtx, cli.ServeOptions{
			Port:       port,
			ConfigPath: configPath,
			Debug:      debug,
			LogLevel:   logLevel,
			LogFormat:  logging.Format(logFormat),
		})
		if err != nil {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
		if sig := sigCtx.Signal(); sig != nil {
			fmt.Printf("Server stopped (signal: %v)\n", sig)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("log-level", "info", "Log level: debug, info, warn or error")
	serveCmd.Flags().String("log-format", string(logging.FormatText), "Log format: text or json")
}
