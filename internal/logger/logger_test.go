package logger

import (
	"bytes"
	"os"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestDebug_SilentByDefault(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden message")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestDebug_VerboseEnabled(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("value is %d", 42)

	if got := buf.String(); got != "[DEBUG] value is 42\n" {
		t.Errorf("unexpected debug output: %q", got)
	}
}

func TestInfoWarnSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("info message")
	Warn("warn message")
	Section("Sync")

	got := buf.String()
	want := "[INFO] info message\n[WARN] warn message\n\n=== Sync ===\n"
	if got != want {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestIsVerbose(t *testing.T) {
	defer reset()

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be enabled")
	}
	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be disabled")
	}
}

func TestConcurrentAccess(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(i int) {
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
	// Test passes if no race conditions
}
