package logger_test

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"

	"clientfn.dev/clientfn/internal/adapters/logger"
)

func TestLoggerWritesMessages(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Info("bootstrap written")
	lg.Warn("transpile degraded")

	out := buf.String()
	for _, want := range []string{"INFO", "bootstrap written", "WARN", "transpile degraded"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got: %s", want, out)
		}
	}
}

func TestLoggerSuppressesDebugByDefault(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Debug("handler toggle up to date")
	if buf.Len() != 0 {
		t.Errorf("debug message emitted at default level: %s", buf.String())
	}

	lg.SetLevel(slog.LevelDebug)
	lg.Debug("handler toggle up to date")
	if !strings.Contains(buf.String(), "handler toggle up to date") {
		t.Errorf("debug message missing after SetLevel, got: %s", buf.String())
	}
}

func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Error(os.ErrPermission)

	out := buf.String()
	if !strings.Contains(out, "ERROR") {
		t.Errorf("output missing level, got: %s", out)
	}
	if !strings.Contains(out, "permission denied") {
		t.Errorf("output missing error text, got: %s", out)
	}
}
