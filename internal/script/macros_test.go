package script_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ghostkey/ghostkey/internal/hid"
	"github.com/ghostkey/ghostkey/internal/keymap"
	"github.com/ghostkey/ghostkey/internal/script"
)

func TestMacrosCustomDialectOnly(t *testing.T) {
	for _, name := range []string{"RUN", "ADMIN", "MINIMIZE", "KILLALL", "SHOWDESKTOP"} {
		sum, rec, _ := runScript(t, script.Config{}, name)
		assert.Equal(t, 1, sum.Executed, "%s in the space dialect", name)
		assert.Empty(t, rec.Events, "%s in the space dialect", name)
	}
}

func TestMacroRun(t *testing.T) {
	_, rec, clk := runScript(t, script.Config{Dialect: script.DialectCustom}, "RUN")

	want := []hid.Event{
		{Kind: hid.EventPress, Code: keymap.KeyLeftGUI},
		{Kind: hid.EventPress, Code: keymap.KeyR},
		{Kind: hid.EventReleaseAll},
	}
	assert.Equal(t, want, rec.Events)
	assert.Contains(t, clk.Slept, time.Second)
}

func TestMacroMinimize(t *testing.T) {
	_, rec, _ := runScript(t, script.Config{Dialect: script.DialectCustom}, "MINIMIZE")

	want := []hid.Event{
		{Kind: hid.EventPress, Code: keymap.KeyLeftGUI},
		{Kind: hid.EventPress, Code: keymap.KeyLeftShift},
		{Kind: hid.EventPress, Code: keymap.KeyM},
		{Kind: hid.EventReleaseAll},
	}
	assert.Equal(t, want, rec.Events)
}

func TestMacroKillApp(t *testing.T) {
	_, rec, _ := runScript(t, script.Config{Dialect: script.DialectCustom}, "KILLAPP")

	want := []hid.Event{
		{Kind: hid.EventPress, Code: keymap.KeyLeftAlt},
		{Kind: hid.EventPress, Code: keymap.KeyF4},
		{Kind: hid.EventReleaseAll},
	}
	assert.Equal(t, want, rec.Events)
}

func TestMacroOpenProgramTypesName(t *testing.T) {
	_, rec, _ := runScript(t, script.Config{Dialect: script.DialectCustom}, "OPENCMD")

	// Run dialog first, then the program name, then Enter.
	var text []byte
	var enterPresses int
	for _, ev := range rec.Events {
		switch {
		case ev.Kind == hid.EventWrite:
			text = append(text, ev.Char)
		case ev.Kind == hid.EventPress && ev.Code == keymap.KeyEnter:
			enterPresses++
		}
	}
	assert.Equal(t, "cmd", string(text))
	assert.Equal(t, 1, enterPresses)
	assert.Equal(t, hid.EventPress, rec.Events[0].Kind)
	assert.Equal(t, uint8(keymap.KeyLeftGUI), rec.Events[0].Code)
}

func TestMacroSaveNotepadRequiresName(t *testing.T) {
	_, rec, _ := runScript(t, script.Config{Dialect: script.DialectCustom}, "SAVENOTEPAD:")
	assert.Empty(t, rec.Events)

	_, rec, _ = runScript(t, script.Config{Dialect: script.DialectCustom}, "SAVENOTEPAD:notes.txt")
	want := []hid.Event{
		{Kind: hid.EventPress, Code: keymap.KeyLeftCtrl},
		{Kind: hid.EventPress, Code: keymap.KeyS},
		{Kind: hid.EventReleaseAll},
	}
	assert.Equal(t, want, rec.Events[:3])

	var text []byte
	for _, ev := range rec.Events {
		if ev.Kind == hid.EventWrite {
			text = append(text, ev.Char)
		}
	}
	assert.Equal(t, "notes.txt", string(text))
}

func TestMacroDownloadArity(t *testing.T) {
	_, rec, _ := runScript(t, script.Config{Dialect: script.DialectCustom}, "DOWNLOAD:onlyurl")
	assert.Empty(t, rec.Events)

	_, rec, _ = runScript(t, script.Config{Dialect: script.DialectCustom},
		"DOWNLOAD:http://example.com/a.bin C:\\a.bin")
	assert.NotEmpty(t, rec.Events)
}
