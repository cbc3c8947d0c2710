package main

import (
	"fmt"
	"os"

	"github.com/aretw0/envchecker/internal/cli"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Render the schema as a markdown reference",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		title, _ := cmd.Flags().GetString("title")
		raw, _ := cmd.Flags().GetBool("raw")

		if err := cli.RunDocs(cli.DocsOptions{ConfigPath: configPath, Title: title, Raw: raw}, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.Flags().String("title", "", "Document title")
	docsCmd.Flags().Bool("raw", false, "Print plain markdown even on a terminal")
}
