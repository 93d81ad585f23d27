package script

import (
	"time"

	"github.com/ghostkey/ghostkey/internal/clock"
	"github.com/ghostkey/ghostkey/internal/hid"
	"github.com/ghostkey/ghostkey/internal/keymap"
)

// Combo is one modifier+key emission request. The zero Primary means the
// modifiers are tapped on their own.
type Combo struct {
	Ctrl, Shift, Alt, Gui bool

	Primary uint8
}

// Emitter sequences every key emission through the same state machine:
// press modifiers (fixed order), dwell, press primary, hold, release-all,
// settle. No path skips the release-all step, so the host can never be left
// with stuck keys.
type Emitter struct {
	sink hid.Sink
	clk  clock.Sleeper
	t    Timing
}

func NewEmitter(sink hid.Sink, clk clock.Sleeper, t Timing) *Emitter {
	return &Emitter{sink: sink, clk: clk, t: t}
}

// Combo emits a full modifier+key sequence. Modifiers go down in a stable
// Ctrl, Shift, Alt, Gui order; Shift combos dwell longer before the primary
// because hosts debounce the shift state.
func (e *Emitter) Combo(c Combo) error {
	dwell := e.t.ModDwell
	if c.Shift {
		dwell = e.t.ShiftDwell
	}
	for _, m := range c.modifiers() {
		if err := e.sink.Press(m); err != nil {
			return err
		}
	}
	e.clk.Sleep(dwell)
	if c.Primary != 0 {
		if err := e.sink.Press(c.Primary); err != nil {
			return err
		}
	}
	e.clk.Sleep(e.t.CharHold)
	if err := e.sink.ReleaseAll(); err != nil {
		return err
	}
	e.clk.Sleep(e.t.Settle)
	return nil
}

func (c Combo) modifiers() []uint8 {
	mods := make([]uint8, 0, 4)
	if c.Ctrl {
		mods = append(mods, keymap.KeyLeftCtrl)
	}
	if c.Shift {
		mods = append(mods, keymap.KeyLeftShift)
	}
	if c.Alt {
		mods = append(mods, keymap.KeyLeftAlt)
	}
	if c.Gui {
		mods = append(mods, keymap.KeyLeftGUI)
	}
	return mods
}

// Tap presses a single key, holds it, then releases everything.
func (e *Emitter) Tap(code uint8, hold, settle time.Duration) error {
	if err := e.sink.Press(code); err != nil {
		return err
	}
	e.clk.Sleep(hold)
	if err := e.sink.ReleaseAll(); err != nil {
		return err
	}
	e.clk.Sleep(settle)
	return nil
}

// maxChordKeys caps how many tokens of a `+`-combination are pressed.
// Extra tokens are dropped silently.
const maxChordKeys = 5

// Chord presses every key of a multi-key combination before one combined
// release-all. Boot-protocol hosts see all keys down simultaneously.
func (e *Emitter) Chord(codes []uint8) error {
	if len(codes) > maxChordKeys {
		codes = codes[:maxChordKeys]
	}
	for _, code := range codes {
		if err := e.sink.Press(code); err != nil {
			return err
		}
	}
	e.clk.Sleep(e.t.CharHold)
	if err := e.sink.ReleaseAll(); err != nil {
		return err
	}
	e.clk.Sleep(e.t.Settle)
	return nil
}

// Char types one character layout-independently: optional Shift, mapped
// keycode, hold, release-all, settle. Unmapped characters are skipped
// without error; the keycode map's coverage gap is deliberate.
func (e *Emitter) Char(c byte) error {
	entry, ok := keymap.Char(c)
	if !ok {
		return nil
	}
	if entry.Shift {
		if err := e.sink.Press(keymap.KeyLeftShift); err != nil {
			return err
		}
		e.clk.Sleep(e.t.ShiftDwell)
	}
	if err := e.sink.Press(entry.Code); err != nil {
		return err
	}
	e.clk.Sleep(e.t.CharHold)
	if err := e.sink.ReleaseAll(); err != nil {
		return err
	}
	e.clk.Sleep(e.t.Settle)
	return nil
}

// TypeText types a string with the given strategy. gap is the pause between
// characters; pass 0 to use the mode's own default.
func (e *Emitter) TypeText(text string, mode TypingMode, gap time.Duration) error {
	if gap == 0 && mode != ModeNative {
		gap = e.t.CharGap
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch mode {
		case ModeLayoutIndependent:
			if err := e.Char(c); err != nil {
				return err
			}
		default:
			if err := e.sink.WriteLiteral(c); err != nil {
				return err
			}
		}
		e.clk.Sleep(gap)
	}
	return nil
}

// TypeLine types text then presses Enter, settling first so slow hosts do
// not drop the line terminator.
func (e *Emitter) TypeLine(text string, mode TypingMode, gap time.Duration) error {
	if err := e.TypeText(text, mode, gap); err != nil {
		return err
	}
	e.clk.Sleep(e.t.LineSettle)
	return e.Tap(keymap.KeyEnter, e.t.KeyHold, e.t.Settle)
}
