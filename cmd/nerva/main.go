// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nerva CLI. It serves the signal
// extractor over HTTP and runs one-shot extractions from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CaptainMig/nerva-v8/internal/secrets"
	"github.com/CaptainMig/nerva-v8/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the nerva CLI.
var rootCmd = &cobra.Command{
	Use:   "nerva",
	Short: "Extract normalized decision signals from free-text scenarios",
	Long: `nerva reads a natural-language scenario and asks a completion model for
eight normalized signals: urgency, strategy, risk, support, stability,
irreversibility, stakes, and time_pressure, each between 0 and 1, plus a
short reasoning string.

Use "nerva serve" to expose POST /api/extract over HTTP, or "nerva extract"
for a one-shot extraction.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if names := s.Names(); len(names) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", names)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults(viper.GetViper())

	def := types.DefaultExtractorConfig()
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./nerva.yaml or ~/.config/nerva/nerva.yaml)")
	flags.String("model", def.Model, "completion model identifier")
	flags.Float64("temperature", def.Temperature, "sampling temperature")
	flags.String("range-policy", string(def.RangePolicy), "out-of-range signal handling: reject, clamp, or passthrough")

	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("temperature", flags.Lookup("temperature"))
	_ = viper.BindPFlag("range_policy", flags.Lookup("range-policy"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nerva")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nerva"))
		}
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
