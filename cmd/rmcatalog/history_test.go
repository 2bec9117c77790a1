package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/config"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/database"
)

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("missing log prints a hint", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--db-dir", t.TempDir()})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "No saved snapshots found.") {
			t.Errorf("expected empty-log hint, got %q", out.String())
		}
	})

	t.Run("unknown snapshot id", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		db, err := database.Open(dbDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		_ = db.Close()

		cmd := NewHistoryCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"no-such-id", "--db-dir", dbDir})

		if err := cmd.Execute(); !errors.Is(err, database.ErrSnapshotNotFound) {
			t.Errorf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("json and markdown together", func(t *testing.T) {
		t.Parallel()

		cmd := NewHistoryCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--db-dir", t.TempDir(), "-j", "-m"})

		if err := cmd.Execute(); !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("too many arguments", func(t *testing.T) {
		t.Parallel()

		cmd := NewHistoryCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"a", "b"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected argument error")
		}
	})
}
