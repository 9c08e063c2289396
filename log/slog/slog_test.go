package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unkn0wn-root/mapkv/logging"
)

func TestLogAttrsSorted(t *testing.T) {
	var buf bytes.Buffer
	h := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug})
	l := Logger{L: stdslog.New(h)}

	l.Debug("evicted", logging.Fields{"z": 1, "a": "x"})

	out := buf.String()
	assert.Contains(t, out, "msg=evicted")
	assert.Contains(t, out, "a=x")
	assert.Less(t, strings.Index(out, "a=x"), strings.Index(out, "z=1"), "attrs not sorted: %q", out)
}

func TestDisabledLevelSkipped(t *testing.T) {
	var buf bytes.Buffer
	h := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelWarn})
	l := Logger{L: stdslog.New(h)}

	l.Info("quiet", nil)
	assert.Zero(t, buf.Len())
}
