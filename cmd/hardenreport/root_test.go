package main

import (
	"testing"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "hardenreport" {
			t.Errorf("expected use 'hardenreport', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		subcommands := cmd.Commands()
		if len(subcommands) == 0 {
			t.Error("expected subcommands")
		}

		hasSummary := false
		hasChart := false
		hasCompare := false
		hasHistory := false
		for _, sub := range subcommands {
			switch sub.Name() {
			case "summary":
				hasSummary = true
			case "chart":
				hasChart = true
			case "compare":
				hasCompare = true
			case "history":
				hasHistory = true
			}
		}
		if !hasSummary {
			t.Error("expected summary subcommand")
		}
		if !hasChart {
			t.Error("expected chart subcommand")
		}
		if !hasCompare {
			t.Error("expected compare subcommand")
		}
		if !hasHistory {
			t.Error("expected history subcommand")
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("default logger is non-nil", func(t *testing.T) {
		t.Parallel()
		if setupLogger(false) == nil {
			t.Error("setupLogger(false) returned nil")
		}
	})

	t.Run("verbose logger is non-nil", func(t *testing.T) {
		t.Parallel()
		if setupLogger(true) == nil {
			t.Error("setupLogger(true) returned nil")
		}
	})
}
