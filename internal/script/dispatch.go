package script

import (
	"strconv"
	"strings"
	"time"

	"github.com/ghostkey/ghostkey/internal/keymap"
)

type handler func(en *Engine, cmd Command) error

// navKeys are the editing/navigation keys that need the longer hold; hosts
// under load drop short taps of these.
var navKeys = map[uint8]bool{
	keymap.KeyBackspace: true,
	keymap.KeyDelete:    true,
	keymap.KeyEnd:       true,
	keymap.KeyHome:      true,
	keymap.KeyInsert:    true,
	keymap.KeyPageUp:    true,
	keymap.KeyPageDown:  true,
	keymap.KeyUp:        true,
	keymap.KeyDown:      true,
	keymap.KeyLeft:      true,
	keymap.KeyRight:     true,
}

// buildTable wires every recognized command name to its handler. Built once
// per engine; dispatch is a single map lookup.
func buildTable() map[string]handler {
	t := map[string]handler{
		// Timing
		"DELAY":         handleDelay,
		"DEFAULTDELAY":  handleDefaultDelay,
		"DEFAULT_DELAY": handleDefaultDelay,

		// Literal typing
		"STRING":   handleString,
		"STRINGLN": handleStringLn,
		"TYPE":     handleString,
		"TYPELINE": handleStringLn,
		"TYPESOFT": handleTypeSoft,

		// Modifier + key
		"CTRL":    modifierHandler(Combo{Ctrl: true}),
		"CONTROL": modifierHandler(Combo{Ctrl: true}),
		"SHIFT":   handleShift,
		"ALT":     modifierHandler(Combo{Alt: true}),
		"GUI":     modifierHandler(Combo{Gui: true}),
		"WINDOWS": modifierHandler(Combo{Gui: true}),

		// Script control
		"REPEAT": handleRepeat,
	}

	// Single named keys, excluding the modifier tokens handled above.
	for _, name := range []string{
		"ENTER", "RETURN", "SPACE", "BACKSPACE", "TAB", "CAPSLOCK",
		"DELETE", "DEL", "END", "ESC", "ESCAPE", "HOME", "INSERT",
		"PAGEUP", "PAGEDOWN", "PRINTSCREEN", "PAUSE", "BREAK",
		"UP", "UPARROW", "DOWN", "DOWNARROW",
		"LEFT", "LEFTARROW", "RIGHT", "RIGHTARROW",
		"F1", "F2", "F3", "F4", "F5", "F6",
		"F7", "F8", "F9", "F10", "F11", "F12",
	} {
		code, ok := keymap.Named(name)
		if !ok {
			continue
		}
		t[name] = namedKeyHandler(code)
	}

	for name, h := range macroTable() {
		t[name] = h
	}
	return t
}

func namedKeyHandler(code uint8) handler {
	return func(en *Engine, _ Command) error {
		hold, settle := en.timing.KeyHold, en.timing.Settle
		if navKeys[code] {
			hold, settle = en.timing.NavHold, en.timing.NavSettle
		}
		return en.emit.Tap(code, hold, settle)
	}
}

func handleDelay(en *Engine, cmd Command) error {
	ms, err := strconv.Atoi(strings.TrimSpace(cmd.Params))
	if err != nil || ms < 0 {
		return nil
	}
	en.clk.Sleep(time.Duration(ms) * time.Millisecond)
	return nil
}

func handleDefaultDelay(en *Engine, cmd Command) error {
	ms, err := strconv.Atoi(strings.TrimSpace(cmd.Params))
	if err != nil || ms < 0 {
		return nil
	}
	en.sess.DefaultDelay = time.Duration(ms) * time.Millisecond
	return nil
}

func handleString(en *Engine, cmd Command) error {
	return en.emit.TypeText(cmd.Params, en.sess.Mode, 0)
}

func handleStringLn(en *Engine, cmd Command) error {
	return en.emit.TypeLine(cmd.Params, en.sess.Mode, 0)
}

func handleTypeSoft(en *Engine, cmd Command) error {
	return en.emit.TypeText(cmd.Params, en.sess.Mode, en.typingDelay)
}

// handleRepeat arms the whole-script repeat loop. In-script REPEAT 0 means
// one extra pass, unlike the boot-level repeat count where 0 disables
// repeating entirely; the two conventions are intentionally not unified.
func handleRepeat(en *Engine, cmd Command) error {
	n, err := strconv.Atoi(strings.TrimSpace(cmd.Params))
	if err != nil {
		return nil
	}
	if n <= 0 {
		n = 1
	}
	en.sess.RepeatEnabled = true
	en.sess.RepeatCount = n
	return nil
}

func modifierHandler(base Combo) handler {
	return func(en *Engine, cmd Command) error {
		c := base
		c.Primary = resolvePrimary(cmd.Params)
		return en.emit.Combo(c)
	}
}

// handleShift keeps the dialect's shortcut: SHIFT with a lowercase letter in
// a mode that permits literal writes synthesizes the uppercase character as
// one atomic write instead of running the modifier sequence. This shortcut
// exists for SHIFT only and must not be generalized to other modifiers.
func handleShift(en *Engine, cmd Command) error {
	p := cmd.Params
	if len(p) == 1 && p[0] >= 'a' && p[0] <= 'z' && en.sess.Mode != ModeLayoutIndependent {
		return en.sink.WriteLiteral(p[0] - 'a' + 'A')
	}
	c := Combo{Shift: true, Primary: resolvePrimary(p)}
	return en.emit.Combo(c)
}

// resolvePrimary turns a modifier-command parameter into a usage code:
// empty means modifier alone, one character goes through the keycode map,
// anything else is tried as a named key. Unresolvable parameters degrade to
// a modifier-only combo rather than failing the line.
func resolvePrimary(param string) uint8 {
	param = strings.TrimSpace(param)
	if param == "" {
		return 0
	}
	if len(param) == 1 {
		if e, ok := keymap.Char(param[0]); ok {
			return e.Code
		}
		return 0
	}
	if code, ok := keymap.Named(strings.ToUpper(param)); ok {
		return code
	}
	return 0
}

// resolveChord splits a `+` combination line into up to five key tokens.
// Tokens that resolve to nothing are dropped.
func resolveChord(name string) []uint8 {
	tokens := strings.Split(name, "+")
	if len(tokens) > maxChordKeys {
		tokens = tokens[:maxChordKeys]
	}
	codes := make([]uint8, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if code, ok := keymap.Named(strings.ToUpper(tok)); ok {
			codes = append(codes, code)
			continue
		}
		if len(tok) == 1 {
			if e, ok := keymap.Char(tok[0]); ok {
				codes = append(codes, e.Code)
			}
		}
	}
	return codes
}
