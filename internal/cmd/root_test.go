package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

// TestRootSubcommands tests that all top-level commands are registered
func TestRootSubcommands(t *testing.T) {
	subcommands := map[string]bool{
		"auth":          false,
		"apply":         false,
		"books":         false,
		"earnings":      false,
		"stats":         false,
		"notifications": false,
		"profile":       false,
		"dashboard":     false,
		"version":       false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, exists := subcommands[cmd.Name()]; exists {
			subcommands[cmd.Name()] = true
		}
	}

	for name, found := range subcommands {
		if !found {
			t.Errorf("subcommand '%s' not found on root command", name)
		}
	}
}

// TestRootPersistentFlags tests the global flags
func TestRootPersistentFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("persistent flag 'verbose' not found")
	}
	if rootCmd.PersistentFlags().Lookup("output") == nil {
		t.Error("persistent flag 'output' not found")
	}
}

func findSubcommand(t *testing.T, parent *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range parent.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	t.Fatalf("subcommand '%s' not found on %s", name, parent.Name())
	return nil
}
