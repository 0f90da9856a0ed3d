package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsystemLoggerIsShared(t *testing.T) {
	a := GetSubsystemLogger("serial")
	b := GetSubsystemLogger("serial")
	assert.Same(t, a, b)
	assert.NotSame(t, a, GetSubsystemLogger("dispatch"))
}

func TestSetOutputRebuildsSubsystemLoggers(t *testing.T) {
	l := GetSubsystemLogger("mode")

	var buf bytes.Buffer
	SetOutput(&buf, false)
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}, false) })

	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"subsystem":"mode"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestSetLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	require.NoError(t, SetLevel(" WARN "))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	require.NoError(t, SetLevel(""))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	assert.Error(t, SetLevel("loud"))
}
