// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/CaptainMig/nerva-v8/internal/extract"
	"github.com/CaptainMig/nerva-v8/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [scenario...]",
	Short: "Extract the signal vector for one scenario",
	Long: `Extract sends one scenario to the completion model and prints the
resulting signal vector. The scenario comes from the arguments, from --file,
or from standard input, in that order of preference.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	format, _ := cmd.Flags().GetString("format")

	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}

	scenario, err := readScenario(args, file, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := loadConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}
	ex, err := extract.NewFromConfig(cfg.Extractor)
	if err != nil {
		return err
	}

	vec, err := ex.Extract(cmd.Context(), scenario)
	if err != nil {
		return fmt.Errorf("%s: %w", extract.KindOf(err), err)
	}
	return writeVector(cmd.OutOrStdout(), vec, format)
}

// readScenario joins args when present, otherwise reads file, otherwise
// reads stdin.
func readScenario(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading scenario file %s: %w", file, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading scenario from stdin: %w", err)
	}
	return string(data), nil
}

// writeVector prints vec as indented JSON or as YAML.
func writeVector(w io.Writer, vec types.SignalVector, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(vec, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(vec)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling signal vector: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func init() {
	extractCmd.Flags().String("file", "", "read the scenario from this file")
	extractCmd.Flags().String("format", "json", "output format: json or yaml")

	rootCmd.AddCommand(extractCmd)
}
