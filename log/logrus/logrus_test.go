package logrus

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/mapkv/logging"
)

func TestFieldsAndComponent(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := New(base, "mapstore")

	l.Info("cleared", logging.Fields{"namespace": "user"})

	e := hook.LastEntry()
	require.NotNil(t, e, "no entry logged")
	assert.Equal(t, logrus.InfoLevel, e.Level)
	assert.Equal(t, "cleared", e.Message)
	assert.Equal(t, "mapstore", e.Data["component"])
	assert.Equal(t, "user", e.Data["namespace"])
}

func TestNoFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	l := New(base, "")
	l.Error("x", nil)
	require.Len(t, hook.Entries, 1)
	assert.Empty(t, hook.LastEntry().Data)
}
