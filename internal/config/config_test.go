package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostkey/ghostkey/internal/config"
)

func writeCfg(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "device.cfg")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadDeviceConfigMissingFile(t *testing.T) {
	o, err := config.LoadDeviceConfig(filepath.Join(t.TempDir(), "device.cfg"))
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), o)
}

func TestLoadDeviceConfig(t *testing.T) {
	p := writeCfg(t, `
# comment line
script_mode = custom
typing_delay_ms = 30
layout_independent = yes
autorun=1
initial_delay_ms = 2000
repeat_count = 3
debug = true
`)

	o, err := config.LoadDeviceConfig(p)
	require.NoError(t, err)

	assert.Equal(t, config.ModeCustom, o.ScriptMode)
	assert.Equal(t, 30*time.Millisecond, o.TypingDelay)
	assert.True(t, o.LayoutIndependent)
	assert.True(t, o.Autorun)
	assert.Equal(t, 2*time.Second, o.InitialDelay)
	assert.Equal(t, 3, o.RepeatCount)
	assert.True(t, o.Debug)
}

func TestLoadDeviceConfigMalformedLinesSkipped(t *testing.T) {
	p := writeCfg(t, `
this line has no equals
typing_delay_ms = not-a-number
repeat_count = -5
script_mode = klingon
unknown_key = whatever
autorun = on
`)

	o, err := config.LoadDeviceConfig(p)
	require.NoError(t, err)

	// Bad values leave defaults in place; the good line still applies.
	assert.Equal(t, config.ModeDucky, o.ScriptMode)
	assert.Equal(t, time.Duration(0), o.TypingDelay)
	assert.Equal(t, 0, o.RepeatCount)
	assert.True(t, o.Autorun)
}

func TestLoadDeviceConfigBoolForms(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		o, err := config.LoadDeviceConfig(writeCfg(t, "debug="+v))
		require.NoError(t, err)
		assert.True(t, o.Debug, "value %q", v)
	}
	for _, v := range []string{"0", "false", "no", "off", "maybe"} {
		o, err := config.LoadDeviceConfig(writeCfg(t, "debug="+v))
		require.NoError(t, err)
		assert.False(t, o.Debug, "value %q", v)
	}
}
