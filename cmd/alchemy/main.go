// Package main is the entry point for the alchemy application.
// It initializes the root command and registers the database management
// sub-commands for the CLI, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/Harshal6927/advanced-alchemy/cmd/alchemy/internal/commands"

	"github.com/spf13/cobra"

	// Registers the demo application's models with the default registry so
	// that schema commands operate on them.
	_ "github.com/Harshal6927/advanced-alchemy/internal/demo"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "alchemy",
		Short: "Database management CLI tool",
		Long: `alchemy is a command-line tool for managing the database behind an application.
Supports creating the tables of all registered models, dropping and truncating
existing tables, and inspecting the active configuration.

Commands read their settings from a YAML config file (--config flag). The
database DSN in that file must point at the instance you want to manage.`,
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
	// Register database commands
	if err := commands.InitDatabaseCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize database commands: %w", err)
	}

	// Register the version command
	commands.InitVersionCommand(rootCmd)

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
