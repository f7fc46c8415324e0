package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLoggerQuietByDefault(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(Options{Writer: buf})
	log.Info("hidden", nil)
	log.Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	log.Warn("shown", map[string]interface{}{"user_id": "u1"})
	if !strings.Contains(buf.String(), "shown") || !strings.Contains(buf.String(), "user_id=u1") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestLoggerVerboseIncludesDebugAndErrors(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(Options{Writer: buf, Verbose: true})
	log.Debug("polling", map[string]interface{}{"b": 2, "a": 1})
	log.Error("fetch failed", errors.New("boom"), nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if strings.Index(lines[0], "a=1") > strings.Index(lines[0], "b=2") {
		t.Fatalf("fields should be sorted: %q", lines[0])
	}
	if !strings.Contains(lines[1], "error=boom") {
		t.Fatalf("missing error attr: %q", lines[1])
	}
}

func TestJournalKey(t *testing.T) {
	if got := journalKey("user.id-x"); got != "USER_ID_X" {
		t.Fatalf("journalKey = %q", got)
	}
}
