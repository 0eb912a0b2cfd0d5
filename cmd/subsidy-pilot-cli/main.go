// Package main is the entry point for the subsidy-pilot-cli application.
// It initializes the root command and registers the sub-commands (scan,
// change detection, training export) for the CLI, then executes the
// command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "subsidy_pilot_service/cmd/subsidy-pilot-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "subsidy-pilot-cli",
		Short: "Farm subsidy pilot operations CLI tool",
		Long: `subsidy-pilot-cli is a command-line tool for operating the subsidy pilot
service from a terminal. It scans local files for malware before manual
uploads, runs a one-off change detection sweep over the registered open-data
sources, and exports accepted review corrections as a training dataset.

Commands that touch the database or blob storage read the worker
configuration file; pass it with --config or set CONFIG_PATH.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitScanCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize scan commands: %w", err)
	}

	if err := commands.InitDocumentCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize document commands: %w", err)
	}

	if err := commands.InitDetectCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize detect commands: %w", err)
	}

	if err := commands.InitTrainingCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize training commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
