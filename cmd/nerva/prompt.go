package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CaptainMig/nerva-v8/internal/extract"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the system instruction sent with every scenario",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), extract.SystemPrompt)
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
