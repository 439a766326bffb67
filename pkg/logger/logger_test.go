package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitAndLevelString(t *testing.T) {
	Init("debug", "production")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARN", "production")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("Error", "production")
	if got := LevelString(); got != "error" {
		t.Fatalf("LevelString() = %q, want %q", got, "error")
	}
	Init("nonsense", "production")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLevelFiltering(t *testing.T) {
	// capture output by replacing the package logger
	var buf bytes.Buffer
	mu.Lock()
	orig := log
	log = zerolog.New(&buf).Level(zerolog.WarnLevel)
	mu.Unlock()
	defer func() {
		mu.Lock()
		log = orig
		mu.Unlock()
	}()

	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Errorf("error-msg")

	out := buf.String()
	if strings.Contains(out, "debug-msg") {
		t.Fatalf("debug messages should be suppressed at warn level")
	}
	if strings.Contains(out, "info-msg") {
		t.Fatalf("info messages should be suppressed at warn level")
	}
	if !strings.Contains(out, "warn-msg") {
		t.Fatalf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "error-msg") {
		t.Fatalf("error message missing: %q", out)
	}
}

func TestFormattingThroughAllLevels(t *testing.T) {
	var buf bytes.Buffer
	mu.Lock()
	orig := log
	log = zerolog.New(&buf).Level(zerolog.DebugLevel)
	mu.Unlock()
	defer func() {
		mu.Lock()
		log = orig
		mu.Unlock()
	}()

	Debugf("d=%d", 1)
	Infof("i=%d", 2)
	Warnf("w=%d", 3)
	Errorf("e=%d", 4)
	Info("plain")

	out := buf.String()
	for _, want := range []string{"d=1", "i=2", "w=3", "e=4", "plain"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %q", want, out)
		}
	}
}
