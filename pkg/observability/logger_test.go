package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestJSONLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOptions(LoggerOptions{Level: "debug", Format: "json", Out: &buf})

	log.Info("checked",
		String("file", "a.js"),
		Int("problems", 2),
		Bool("fixed", true),
		Duration("took", 1500*time.Millisecond),
		Err(errors.New("boom")),
	)

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	entry := lines[0]
	if entry["message"] != "checked" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["file"] != "a.js" {
		t.Errorf("file = %v", entry["file"])
	}
	if entry["problems"] != float64(2) {
		t.Errorf("problems = %v", entry["problems"])
	}
	if entry["fixed"] != true {
		t.Errorf("fixed = %v", entry["fixed"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v", entry["error"])
	}
	if _, ok := entry["took"]; !ok {
		t.Error("missing took field")
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOptions(LoggerOptions{Level: "warn", Format: "json", Out: &buf})

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Error("shown")

	if lines := decodeLines(t, &buf); len(lines) != 2 {
		t.Errorf("expected 2 lines at warn level, got %d", len(lines))
	}
}

func TestLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOptions(LoggerOptions{Level: "loud", Format: "json", Out: &buf})

	log.Debug("hidden")
	log.Info("shown")

	if lines := decodeLines(t, &buf); len(lines) != 1 {
		t.Errorf("expected 1 line, got %d", len(lines))
	}
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOptions(LoggerOptions{Format: "json", Out: &buf}).
		With(String("component", "runner"))

	log.Info("start")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["component"] != "runner" {
		t.Errorf("With field missing: %v", lines)
	}
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOptions(LoggerOptions{Format: "console", Out: &buf, NoColor: true})

	log.Info("checked", String("file", "a.js"))

	out := buf.String()
	if !strings.Contains(out, "checked") || !strings.Contains(out, "file=a.js") {
		t.Errorf("unexpected console output: %q", out)
	}
}

func TestNopLogger(t *testing.T) {
	log := NopLogger()
	log.Info("nothing")
	log.With(String("k", "v")).Error("nothing")
}
