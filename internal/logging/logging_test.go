package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"":        logrus.InfoLevel,
		"INFO":    logrus.InfoLevel,
		" warn ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("ParseLevel(loud) returned nil error")
	}
}

func TestNew_WritesTextLinesAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", &buf)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hidden")
	logger.WithField("id", "rochefort-8").Warn("fetch detail failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	for _, want := range []string{"level=warning", `msg="fetch detail failed"`, "id=rochefort-8"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("log output contains color codes: %q", out)
	}
}

func TestOpen_CreatesDirsAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "beerdex", "beerdex.log")

	for i := 0; i < 2; i++ {
		logger, closer, err := Open(path, "info")
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		logger.Info("started")
		if err := closer.Close(); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := strings.Count(string(data), "msg=started"); got != 2 {
		t.Fatalf("log has %d started lines, want 2:\n%s", got, data)
	}
}

func TestOpen_Errors(t *testing.T) {
	if _, _, err := Open("  ", "info"); err == nil {
		t.Fatalf("Open with empty path returned nil error")
	}
	path := filepath.Join(t.TempDir(), "beerdex.log")
	if _, _, err := Open(path, "chatty"); err == nil {
		t.Fatalf("Open with bad level returned nil error")
	}
}
