//go:build mage

// Package main contains Mage build targets for nerva developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "nerva"
	cmdPkg  = "./cmd/nerva"
)

// Build compiles the CLI binary into bin/. The version is taken from
// NERVA_VERSION when set.
func Build() error {
	mg.Deps(Vet)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)

	version := os.Getenv("NERVA_VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := "-X main.version=" + version

	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the full test suite with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Serve builds the binary and starts the HTTP server on the default address.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve")
}

// Prompt prints the system instruction the extractor sends with every scenario.
func Prompt() error {
	return sh.RunV("go", "run", cmdPkg, "prompt")
}

// Clean removes build output.
func Clean() error {
	fmt.Println("Removing", binDir)
	return sh.Rm(binDir)
}
