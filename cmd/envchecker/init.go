package main

import (
	"fmt"
	"os"

	"github.com/aretw0/envchecker/internal/cli"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a starter schema and .env.example",
	Long:  `Writes envchecker.config.yaml and .env.example into the target directory. Existing files are never overwritten.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		if err := cli.RunInit(dir, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
