package status_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostkey/ghostkey/internal/status"
)

func readAttr(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(b)
}

func TestLEDPatterns(t *testing.T) {
	dir := t.TempDir()
	led := status.NewLED(dir)

	require.NoError(t, led.Set(status.PatternBusy))
	assert.Equal(t, "timer", readAttr(t, dir, "trigger"))
	assert.Equal(t, "100", readAttr(t, dir, "delay_on"))
	assert.Equal(t, "100", readAttr(t, dir, "delay_off"))

	require.NoError(t, led.Set(status.PatternDone))
	assert.Equal(t, "none", readAttr(t, dir, "trigger"))
	assert.Equal(t, "1", readAttr(t, dir, "brightness"))

	require.NoError(t, led.Set(status.PatternOff))
	assert.Equal(t, "0", readAttr(t, dir, "brightness"))
}

func TestLEDDisabled(t *testing.T) {
	assert.NoError(t, status.NewLED("").Set(status.PatternError))

	var led *status.LED
	assert.NoError(t, led.Set(status.PatternArmed))
}
