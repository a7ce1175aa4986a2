package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// TestPathHandler_ShortensHome tests that home directory prefixes are replaced.
func TestPathHandler_ShortensHome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "file under home", value: "/home/alice/graficos/01.png", want: "path=~/graficos/01.png"},
		{name: "home itself", value: "/home/alice", want: "path=~"},
		{name: "sibling with common prefix", value: "/home/alicex/data", want: "path=/home/alicex/data"},
		{name: "outside home", value: "/tmp/graficos", want: "path=/tmp/graficos"},
		{name: "relative path", value: "graficos", want: "path=graficos"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, Options{Verbose: true, Home: "/home/alice"})
			logger.Info("written", "path", tt.value)

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in output: %s", tt.want, buf.String())
			}
		})
	}
}

// TestPathHandler_MasksCredentials tests that credential keys are masked.
func TestPathHandler_MasksCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{name: "password", key: "password", value: "hunter2", wantMask: true},
		{name: "db password", key: "DB_PASSWORD", value: "hunter2", wantMask: true},
		{name: "token", key: "api_token", value: "abc123", wantMask: true},
		{name: "authorization", key: "Authorization", value: "Bearer x", wantMask: true},
		{name: "digest is kept", key: "digest", value: strings.Repeat("ab", 32), wantMask: false},
		{name: "figure is kept", key: "figure", value: "02-escalabilidade", wantMask: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, Options{Verbose: true})
			logger.Info("test message", tt.key, tt.value)

			output := buf.String()
			if tt.wantMask {
				if strings.Contains(output, tt.value) {
					t.Errorf("expected value %q to be masked: %s", tt.value, output)
				}
				if !strings.Contains(output, MaskValue) {
					t.Errorf("expected mask value in output: %s", output)
				}
			} else if !strings.Contains(output, tt.value) {
				t.Errorf("expected value %q in output: %s", tt.value, output)
			}
		})
	}
}

// TestNewLogger_Levels tests the verbose switch.
func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		verbose    bool
		level      slog.Level
		shouldShow bool
	}{
		{name: "debug shown in verbose mode", verbose: true, level: slog.LevelDebug, shouldShow: true},
		{name: "debug hidden by default", verbose: false, level: slog.LevelDebug, shouldShow: false},
		{name: "info hidden by default", verbose: false, level: slog.LevelInfo, shouldShow: false},
		{name: "warn shown by default", verbose: false, level: slog.LevelWarn, shouldShow: true},
		{name: "error shown by default", verbose: false, level: slog.LevelError, shouldShow: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, Options{Verbose: tt.verbose})
			const msg = "test_unique_message_12345"
			logger.Log(context.Background(), tt.level, msg)

			hasMessage := strings.Contains(buf.String(), msg)
			if tt.shouldShow != hasMessage {
				t.Errorf("expected shown=%v, output: %s", tt.shouldShow, buf.String())
			}
		})
	}
}

// TestNewLogger_JSON tests JSON output.
func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, Options{JSON: true, Home: "/home/alice"})
	logger.Warn("figure written", "path", "/home/alice/graficos/a.png", "password", "x")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if rec["path"] != "~/graficos/a.png" {
		t.Errorf("unexpected path %v", rec["path"])
	}
	if rec["password"] != MaskValue {
		t.Errorf("expected masked password, got %v", rec["password"])
	}
}

// TestPathHandler_WithAttrsAndGroup tests that derived loggers keep rewriting.
func TestPathHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, Options{Verbose: true, Home: "/home/alice"})
	logger.With("db", "/home/alice/.local/share/loadgraph/loadgraph.db").
		WithGroup("step").
		Info("saved", "token", "abc", "name", "history")

	output := buf.String()
	if !strings.Contains(output, "db=~/.local/share/loadgraph/loadgraph.db") {
		t.Errorf("expected shortened db path: %s", output)
	}
	if strings.Contains(output, "abc") {
		t.Errorf("expected grouped token to be masked: %s", output)
	}
	if !strings.Contains(output, "step.name=history") {
		t.Errorf("expected grouped attribute: %s", output)
	}
}

// TestNewPathHandler_NilHandler tests the nil handler fallback.
func TestNewPathHandler_NilHandler(t *testing.T) {
	t.Parallel()

	h := NewPathHandler(nil, "")
	if h.handler == nil {
		t.Error("expected default handler to be used")
	}
}
