package hid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostkey/ghostkey/internal/hid"
	"github.com/ghostkey/ghostkey/internal/keymap"
)

func TestRecorderEvents(t *testing.T) {
	r := hid.NewRecorder()

	require.NoError(t, r.Press(keymap.KeyLeftCtrl))
	require.NoError(t, r.Press(keymap.KeyC))
	assert.Equal(t, []uint8{keymap.KeyLeftCtrl, keymap.KeyC}, r.Down())

	require.NoError(t, r.ReleaseAll())
	assert.Empty(t, r.Down())

	require.NoError(t, r.WriteLiteral('x'))

	want := []hid.Event{
		{Kind: hid.EventPress, Code: keymap.KeyLeftCtrl},
		{Kind: hid.EventPress, Code: keymap.KeyC},
		{Kind: hid.EventReleaseAll},
		{Kind: hid.EventWrite, Char: 'x'},
	}
	assert.Equal(t, want, r.Events)
}

func TestRecorderDownIsCopy(t *testing.T) {
	r := hid.NewRecorder()
	require.NoError(t, r.Press(keymap.KeyA))

	down := r.Down()
	down[0] = 0xFF
	assert.Equal(t, []uint8{keymap.KeyA}, r.Down())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "press(0x04)", hid.Event{Kind: hid.EventPress, Code: keymap.KeyA}.String())
	assert.Equal(t, "release-all", hid.Event{Kind: hid.EventReleaseAll}.String())
	assert.Equal(t, `write("a")`, hid.Event{Kind: hid.EventWrite, Char: 'a'}.String())
}
