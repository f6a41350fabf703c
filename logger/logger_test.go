package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("component", "import").Msg("commit finished")

	out := buf.String()
	if !strings.Contains(out, "commit finished") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "import") {
		t.Errorf("output missing field: %q", out)
	}
}

func TestFromContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	ctxLog := FromContext(ctx)
	ctxLog.Info().Msg("from context")

	if !strings.Contains(buf.String(), "from context") {
		t.Error("logger from context did not write to the stored writer")
	}
}

func TestFromContextFallback(t *testing.T) {
	// Must not panic on a bare context.
	FromContext(context.Background())
}
