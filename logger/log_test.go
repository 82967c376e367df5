package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/buildkite/orffinder/logger"
)

func TestConsoleLogger(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}
	exitCode := 0

	printer := logger.NewTextPrinter(b)
	printer.Colors = false

	l := logger.NewConsoleLogger(printer, func(c int) {
		exitCode = c
	})
	l.SetLevel(logger.INFO)

	l.Debug("Debug %q", "ABAB")
	l.Info("Info %q", "ABAB")
	l.Warn("Warn %q", "ABAB")
	l.Error("Error %q", "ABAB")
	l.Fatal("Fatal %q", "ABAB")

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("bad number of lines, got %d", len(lines))
	}

	for i, want := range []string{`Info "ABAB"`, `Warn "ABAB"`, `Error "ABAB"`, `Fatal "ABAB"`} {
		if !strings.HasSuffix(lines[i], want) {
			t.Errorf("line %d bad, got %q, want suffix %q", i, lines[i], want)
		}
	}

	if exitCode != 1 {
		t.Fatalf("exit code bad, got %d", exitCode)
	}
}

func TestConsoleLoggerWithFields(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}
	printer := logger.NewTextPrinter(b)
	printer.Colors = false

	l := logger.NewConsoleLogger(printer, func(int) {})
	withStart := l.WithFields(logger.StringField("start", "AB"))
	withStart.WithFields(logger.IntField("results", 3)).Notice("query done")
	l.Notice("plain")

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("bad number of lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "query done start=AB results=3") {
		t.Errorf("line 0 bad, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "plain") {
		t.Errorf("line 1 bad, got %q", lines[1])
	}
}

func TestTextPrinter(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}

	printer := logger.NewTextPrinter(b)
	printer.Colors = false

	printer.Print(logger.INFO, "genome indexed", logger.Fields{logger.StringField("alphabet", "ABCD")})

	if msg := b.String(); !strings.HasSuffix(msg, "genome indexed alphabet=ABCD\n") {
		t.Fatalf("bad message, got %q", msg)
	}
}

func TestJSONPrinter(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}

	printer := logger.NewJSONPrinter(b)
	printer.Print(logger.INFO, "genome indexed", logger.Fields{logger.StringField("alphabet", "ABCD")})

	var results map[string]any
	if err := json.Unmarshal(b.Bytes(), &results); err != nil {
		t.Fatalf("bad json: %v", err)
	}

	for key, want := range map[string]string{
		"alphabet": "ABCD",
		"msg":      "genome indexed",
		"level":    "INFO",
	} {
		if val, ok := results[key]; !ok || val != want {
			t.Errorf("bad %s, got %v want %q", key, val, want)
		}
	}

	if val, ok := results["ts"]; !ok || val == "" {
		t.Fatalf("bad ts, got %v", val)
	}
}

func TestJSONPrinterSpecialCharacters(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}

	printer := logger.NewJSONPrinter(b)
	printer.Print(logger.INFO, "\x1b", logger.Fields{logger.StringField("key", "val")})

	var results map[string]any
	if err := json.Unmarshal(b.Bytes(), &results); err != nil {
		t.Fatalf("bad json: %v", err)
	}
}

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	for s, want := range map[string]logger.Level{
		"debug":  logger.DEBUG,
		"INFO":   logger.INFO,
		"notice": logger.NOTICE,
		"Warn":   logger.WARN,
		"error":  logger.ERROR,
		"fatal":  logger.FATAL,
	} {
		got, err := logger.LevelFromString(s)
		if err != nil {
			t.Errorf("LevelFromString(%q) error = %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("LevelFromString(%q) = %v, want %v", s, got, want)
		}
	}

	if _, err := logger.LevelFromString("llama"); err == nil {
		t.Errorf("LevelFromString(%q) error = nil, want error", "llama")
	}
}
