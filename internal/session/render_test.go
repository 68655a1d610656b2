package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogSurface_LogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	surface := LogSurface{Log: zerolog.New(&buf)}

	surface.Attach()
	surface.Detach()

	out := buf.String()
	if !strings.Contains(out, "render surface attached") {
		t.Errorf("attach not logged: %q", out)
	}
	if !strings.Contains(out, "render surface detached") {
		t.Errorf("detach not logged: %q", out)
	}
}
