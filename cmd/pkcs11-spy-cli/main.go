// Package main is the entry point for the pkcs11-spy-cli application.
// It initializes the root command, registers the spy sub-commands (operations, lookup,
// probe, events) and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/MGTheTrain/pkcs11-spy/cmd/pkcs11-spy-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "pkcs11-spy-cli",
		Short: "PKCS#11 call tracing tool",
		Long: `pkcs11-spy-cli loads a PKCS#11 module behind a tracing proxy and records every
call with its arguments, results and return value.

The module and the trace destination are resolved in this order:
- the --module / --output flags
- the PKCS11SPY / PKCS11SPY_OUTPUT environment variables
- spy.module / spy.output in the config file (--config or PKCS11SPY_CONFIG)
- opensc-pkcs11.so and stderr`,
	}

	if err := commands.InitSpyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
