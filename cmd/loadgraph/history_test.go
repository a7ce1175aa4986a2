package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/loadgraph/internal/database"
)

// executeHistory runs the history command with args and returns stdout.
func executeHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"history"}, args...))

	err := root.Execute()
	return out.String(), err
}

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	if cmd.Use != "history" {
		t.Errorf("expected use 'history', got %q", cmd.Use)
	}

	flag := cmd.Flags().Lookup("limit")
	if flag == nil {
		t.Fatal("expected limit flag")
	}
	if flag.DefValue != "20" {
		t.Errorf("expected default limit 20, got %q", flag.DefValue)
	}
	for _, name := range []string{"verify", "json", "db-dir", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

// TestHistoryCmd tests listing and verifying stored generations.
func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("missing database", func(t *testing.T) {
		t.Parallel()

		_, err := executeHistory(t, "--db-dir", filepath.Join(t.TempDir(), "none"))
		if err == nil || !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected database not found error, got %v", err)
		}
	})

	t.Run("verify needs two generations", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		if _, err := executeRoot(t, "-o", t.TempDir(), "--dpi", "40", "--history", "--db-dir", dbDir); err != nil {
			t.Fatalf("generation failed: %v", err)
		}

		_, err := executeHistory(t, "--db-dir", dbDir, "--verify")
		if !errors.Is(err, database.ErrNotEnoughHistory) {
			t.Errorf("expected ErrNotEnoughHistory, got %v", err)
		}
	})

	t.Run("list and verify after two generations", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		for i := 0; i < 2; i++ {
			if _, err := executeRoot(t, "-o", t.TempDir(), "--dpi", "40", "--history", "--db-dir", dbDir); err != nil {
				t.Fatalf("generation failed: %v", err)
			}
		}

		out, err := executeHistory(t, "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Generations (2):") {
			t.Errorf("expected two generations listed, got:\n%s", out)
		}

		out, err = executeHistory(t, "--db-dir", dbDir, "--json", "-n", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var records []database.GenerationRecord
		if err := json.Unmarshal([]byte(out), &records); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(records) != 1 || records[0].FigureCount != 4 {
			t.Errorf("unexpected records %+v", records)
		}

		out, err = executeHistory(t, "--db-dir", dbDir, "--verify")
		if err != nil {
			t.Fatalf("expected identical generations, got %v", err)
		}
		if !strings.Contains(out, "✅ Figure metadata is identical.") {
			t.Errorf("unexpected verify output:\n%s", out)
		}
	})
}

// TestWriteHistoryEmpty tests the message for an empty database.
func TestWriteHistoryEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := writeHistory(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No generations found") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestShortDigest(t *testing.T) {
	t.Parallel()

	if got := shortDigest("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("expected 0123456789ab, got %q", got)
	}
	if got := shortDigest("abc"); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}
