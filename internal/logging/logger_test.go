package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONToFile(t *testing.T) {
	dir := t.TempDir()

	log, err := New(dir, LevelDebug)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.WithComponent("controller").WithAgent("a1").Info("task assigned", "task_id", "t1", "score", 0.75)
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "qfox.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	var entry map[string]any
	line := strings.TrimSpace(string(data))
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, line)
	}
	if entry["msg"] != "task assigned" {
		t.Errorf("msg = %v, want 'task assigned'", entry["msg"])
	}
	if entry["component"] != "controller" {
		t.Errorf("component = %v, want controller", entry["component"])
	}
	if entry["agent_id"] != "a1" {
		t.Errorf("agent_id = %v, want a1", entry["agent_id"])
	}
	if entry["task_id"] != "t1" {
		t.Errorf("task_id = %v, want t1", entry["task_id"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestChildLoggersDoNotMutateParent(t *testing.T) {
	dir := t.TempDir()
	log, err := New(dir, LevelInfo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = log.Close() }()

	child := log.WithTask("t1")
	if len(log.attrs) != 0 {
		t.Errorf("parent attrs = %v after deriving child, want none", log.attrs)
	}
	if len(child.attrs) != 1 {
		t.Errorf("child attrs = %v, want one", child.attrs)
	}

	grandchild := child.With("round", 3, "phase", "assign")
	if len(grandchild.attrs) != 3 {
		t.Errorf("grandchild attrs = %v, want three", grandchild.attrs)
	}
	if len(child.attrs) != 1 {
		t.Error("deriving a grandchild mutated the child")
	}
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	// Must not panic and must be closable.
	log.Debug("ignored")
	log.Info("ignored", "k", "v")
	log.Error("ignored")
	if err := log.Close(); err != nil {
		t.Errorf("Close() on nop logger = %v, want nil", err)
	}
}

func TestValidLevels(t *testing.T) {
	levels := ValidLevels()
	if len(levels) != 4 {
		t.Errorf("ValidLevels() returned %d levels, want 4", len(levels))
	}
}
