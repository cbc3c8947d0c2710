package main

import (
	"fmt"
	"os"

	"github.com/aretw0/envchecker/internal/cli"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the environment against the schema",
	Long:  `Loads the schema, layers dotenv files, Redis and the process environment, and reports every missing or invalid variable.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		verbose, _ := cmd.Flags().GetBool("verbose")
		envFiles, _ := cmd.Flags().GetStringArray("env-file")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		redisKey, _ := cmd.Flags().GetString("redis-key")
		format, _ := cmd.Flags().GetString("format")
		watchMode, _ := cmd.Flags().GetBool("watch")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		code, err := cli.Execute(sigCtx, cli.CheckOptions{
			ConfigPath: configPath,
			Verbose:    verbose,
			EnvFiles:   envFiles,
			RedisAddr:  redisAddr,
			RedisKey:   redisKey,
			Format:     format,
			Watch:      watchMode,
			Debug:      debug,
		}, os.Stdout)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(cli.ExitFailure)
		}
		if code != cli.ExitOK {
			os.Exit(code)
		}
	},
}

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("verbose", "v", false, "Print validated values (sensitive values are masked)")
	cmd.Flags().StringArray("env-file", nil, "Dotenv file layered under the process environment (repeatable)")
	cmd.Flags().String("redis-addr", "", "Redis address holding environment snapshots")
	cmd.Flags().String("redis-key", "default", "Name of the environment hash to read from Redis")
	cmd.Flags().String("format", cli.FormatText, "Output format: text or json")
	cmd.Flags().BoolP("watch", "w", false, "Re-validate when the schema or env files change")
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addCheckFlags(checkCmd)

	// 'check' is the default command.
	addCheckFlags(rootCmd)
	rootCmd.Run = checkCmd.Run
}
