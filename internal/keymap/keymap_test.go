package keymap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ghostkey/ghostkey/internal/keymap"
)

func TestCharCoverage(t *testing.T) {
	covered := "abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"1234567890" +
		`!@#$%^&*()-_=+[{]}\|;:'"` + "`" + `~,<.>/? `

	for i := 0; i < len(covered); i++ {
		c := covered[i]
		_, ok := keymap.Char(c)
		assert.True(t, ok, "expected %q to be mapped", string(c))
	}
}

func TestCharUnmapped(t *testing.T) {
	for _, c := range []byte{'\n', '\r', '\t', 0x00, 0x1B, 0x7F, 0xE9} {
		_, ok := keymap.Char(c)
		assert.False(t, ok, "expected 0x%02x to be unmapped", c)
	}
}

func TestCharShiftPairs(t *testing.T) {
	tests := []struct {
		name      string
		plain     byte
		shifted   byte
		sameCode  bool
		wantShift bool
	}{
		{name: "letter case", plain: 'a', shifted: 'A', sameCode: true, wantShift: true},
		{name: "digit and bang", plain: '1', shifted: '!', sameCode: true, wantShift: true},
		{name: "digit zero and paren", plain: '0', shifted: ')', sameCode: true, wantShift: true},
		{name: "minus and underscore", plain: '-', shifted: '_', sameCode: true, wantShift: true},
		{name: "semicolon and colon", plain: ';', shifted: ':', sameCode: true, wantShift: true},
		{name: "slash and question", plain: '/', shifted: '?', sameCode: true, wantShift: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, ok := keymap.Char(tt.plain)
			assert.True(t, ok)
			assert.False(t, plain.Shift)

			shifted, ok := keymap.Char(tt.shifted)
			assert.True(t, ok)
			assert.Equal(t, tt.wantShift, shifted.Shift)
			if tt.sameCode {
				assert.Equal(t, plain.Code, shifted.Code)
			}
		})
	}
}

func TestCharDistinctZero(t *testing.T) {
	zero, _ := keymap.Char('0')
	nine, _ := keymap.Char('9')
	assert.Equal(t, uint8(keymap.Key0), zero.Code)
	assert.Equal(t, uint8(keymap.Key9), nine.Code)
	assert.NotEqual(t, zero.Code, nine.Code)
}

func TestNamedAliases(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"ESC", "ESCAPE"},
		{"UP", "UPARROW"},
		{"DOWN", "DOWNARROW"},
		{"LEFT", "LEFTARROW"},
		{"RIGHT", "RIGHTARROW"},
		{"PAUSE", "BREAK"},
		{"CTRL", "CONTROL"},
		{"GUI", "WINDOWS"},
	}
	for _, tt := range tests {
		t.Run(tt.a+"="+tt.b, func(t *testing.T) {
			a, ok := keymap.Named(tt.a)
			assert.True(t, ok)
			b, ok := keymap.Named(tt.b)
			assert.True(t, ok)
			assert.Equal(t, a, b)
		})
	}

	_, ok := keymap.Named("HYPERDRIVE")
	assert.False(t, ok)
}

func TestModifierBits(t *testing.T) {
	assert.Equal(t, uint8(keymap.ModLeftCtrl), keymap.ModifierBit(keymap.KeyLeftCtrl))
	assert.Equal(t, uint8(keymap.ModLeftShift), keymap.ModifierBit(keymap.KeyLeftShift))
	assert.Equal(t, uint8(keymap.ModLeftAlt), keymap.ModifierBit(keymap.KeyLeftAlt))
	assert.Equal(t, uint8(keymap.ModLeftGUI), keymap.ModifierBit(keymap.KeyLeftGUI))
	assert.Equal(t, uint8(0), keymap.ModifierBit(keymap.KeyA))

	assert.True(t, keymap.IsModifier(keymap.KeyLeftGUI))
	assert.False(t, keymap.IsModifier(keymap.KeyEnter))
}
