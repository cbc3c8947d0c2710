package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/envchecker"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of envchecker",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("envchecker version %s\n", strings.TrimSpace(envchecker.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
