package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CaptainMig/nerva-v8/internal/extract"
	"github.com/CaptainMig/nerva-v8/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extractor over HTTP",
	Long: `Serve exposes POST /api/extract, which accepts {"scenario": "..."} and
returns the signal vector as JSON. Errors are JSON objects of the form
{"error": kind, "details": ...}. Any origin may call the endpoint unless
server.allowed_origin is set. GET /health reports liveness.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}

	ex, err := extract.NewFromConfig(cfg.Extractor)
	if err != nil {
		return err
	}
	if cfg.Extractor.APIKey == "" {
		fmt.Fprintln(os.Stderr, "warning: no API key configured (OPENAI_API_KEY or .secrets/openai-api-key); extractions will fail with configuration_error")
	}
	fmt.Fprintf(os.Stderr, "Model: %s (temperature %.2f, range policy %s)\n",
		ex.Model(), cfg.Extractor.Temperature, cfg.Extractor.RangePolicy)

	return server.Run(cmd.Context(), cfg.Server, server.NewRouter(ex, cfg.Server))
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "HTTP listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
