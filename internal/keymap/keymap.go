// Package keymap holds the static US-layout translation tables used for
// layout-independent typing: printable character to (HID usage code, shift)
// and named key token to HID usage code.
package keymap

// HID usage codes (USB HID Keyboard/Keypad usage page). These go over the
// wire in reports, so the values are fixed by the HID spec, not by us.
const (
	// Letters A-Z
	KeyA = 0x04
	KeyB = 0x05
	KeyC = 0x06
	KeyD = 0x07
	KeyE = 0x08
	KeyF = 0x09
	KeyG = 0x0A
	KeyH = 0x0B
	KeyI = 0x0C
	KeyJ = 0x0D
	KeyK = 0x0E
	KeyL = 0x0F
	KeyM = 0x10
	KeyN = 0x11
	KeyO = 0x12
	KeyP = 0x13
	KeyQ = 0x14
	KeyR = 0x15
	KeyS = 0x16
	KeyT = 0x17
	KeyU = 0x18
	KeyV = 0x19
	KeyW = 0x1A
	KeyX = 0x1B
	KeyY = 0x1C
	KeyZ = 0x1D

	// Numbers 1-0 (top row)
	Key1 = 0x1E
	Key2 = 0x1F
	Key3 = 0x20
	Key4 = 0x21
	Key5 = 0x22
	Key6 = 0x23
	Key7 = 0x24
	Key8 = 0x25
	Key9 = 0x26
	Key0 = 0x27

	// Special keys
	KeyEnter      = 0x28
	KeyEscape     = 0x29
	KeyBackspace  = 0x2A
	KeyTab        = 0x2B
	KeySpace      = 0x2C
	KeyMinus      = 0x2D // - and _
	KeyEqual      = 0x2E // = and +
	KeyLeftBrace  = 0x2F // [ and {
	KeyRightBrace = 0x30 // ] and }
	KeyBackslash  = 0x31 // \ and |
	KeySemicolon  = 0x33 // ; and :
	KeyApostrophe = 0x34 // ' and "
	KeyGrave      = 0x35 // ` and ~
	KeyComma      = 0x36 // , and <
	KeyPeriod     = 0x37 // . and >
	KeySlash      = 0x38 // / and ?
	KeyCapsLock   = 0x39

	// Function keys
	KeyF1  = 0x3A
	KeyF2  = 0x3B
	KeyF3  = 0x3C
	KeyF4  = 0x3D
	KeyF5  = 0x3E
	KeyF6  = 0x3F
	KeyF7  = 0x40
	KeyF8  = 0x41
	KeyF9  = 0x42
	KeyF10 = 0x43
	KeyF11 = 0x44
	KeyF12 = 0x45

	// Control keys
	KeyPrintScreen = 0x46
	KeyScrollLock  = 0x47
	KeyPause       = 0x48
	KeyInsert      = 0x49
	KeyHome        = 0x4A
	KeyPageUp      = 0x4B
	KeyDelete      = 0x4C
	KeyEnd         = 0x4D
	KeyPageDown    = 0x4E

	// Arrow keys
	KeyRight = 0x4F
	KeyLeft  = 0x50
	KeyDown  = 0x51
	KeyUp    = 0x52

	// Modifier keys. These are real usage codes; boot-protocol sinks fold
	// them into the modifier byte of the report instead of the key array.
	KeyLeftCtrl  = 0xE0
	KeyLeftShift = 0xE1
	KeyLeftAlt   = 0xE2
	KeyLeftGUI   = 0xE3
)

// Modifier bitmasks for the first byte of a boot keyboard report.
const (
	ModLeftCtrl  = 0x01
	ModLeftShift = 0x02
	ModLeftAlt   = 0x04
	ModLeftGUI   = 0x08 // Windows/Command key
)

// IsModifier reports whether a usage code is in the modifier range.
func IsModifier(code uint8) bool {
	return code >= 0xE0 && code <= 0xE7
}

// ModifierBit returns the report bitmask for a modifier usage code, or 0.
func ModifierBit(code uint8) uint8 {
	if !IsModifier(code) {
		return 0
	}
	return 1 << (code - 0xE0)
}

// Entry is one keycode-map row: the usage code for a character and whether
// Shift must be held to produce it on a US layout.
type Entry struct {
	Code  uint8
	Shift bool
}

// charTable covers exactly the characters the injector types
// layout-independently: letters, digits, and the US punctuation set.
// Everything else (newlines and tabs included) is deliberately unmapped and
// skipped by the emission layer.
var charTable = map[byte]Entry{
	// Lowercase letters
	'a': {KeyA, false}, 'b': {KeyB, false}, 'c': {KeyC, false}, 'd': {KeyD, false},
	'e': {KeyE, false}, 'f': {KeyF, false}, 'g': {KeyG, false}, 'h': {KeyH, false},
	'i': {KeyI, false}, 'j': {KeyJ, false}, 'k': {KeyK, false}, 'l': {KeyL, false},
	'm': {KeyM, false}, 'n': {KeyN, false}, 'o': {KeyO, false}, 'p': {KeyP, false},
	'q': {KeyQ, false}, 'r': {KeyR, false}, 's': {KeyS, false}, 't': {KeyT, false},
	'u': {KeyU, false}, 'v': {KeyV, false}, 'w': {KeyW, false}, 'x': {KeyX, false},
	'y': {KeyY, false}, 'z': {KeyZ, false},

	// Uppercase letters (same keys, shifted)
	'A': {KeyA, true}, 'B': {KeyB, true}, 'C': {KeyC, true}, 'D': {KeyD, true},
	'E': {KeyE, true}, 'F': {KeyF, true}, 'G': {KeyG, true}, 'H': {KeyH, true},
	'I': {KeyI, true}, 'J': {KeyJ, true}, 'K': {KeyK, true}, 'L': {KeyL, true},
	'M': {KeyM, true}, 'N': {KeyN, true}, 'O': {KeyO, true}, 'P': {KeyP, true},
	'Q': {KeyQ, true}, 'R': {KeyR, true}, 'S': {KeyS, true}, 'T': {KeyT, true},
	'U': {KeyU, true}, 'V': {KeyV, true}, 'W': {KeyW, true}, 'X': {KeyX, true},
	'Y': {KeyY, true}, 'Z': {KeyZ, true},

	// Numbers (top row)
	'1': {Key1, false}, '2': {Key2, false}, '3': {Key3, false}, '4': {Key4, false},
	'5': {Key5, false}, '6': {Key6, false}, '7': {Key7, false}, '8': {Key8, false},
	'9': {Key9, false}, '0': {Key0, false},

	// Shifted number row symbols
	'!': {Key1, true}, '@': {Key2, true}, '#': {Key3, true}, '$': {Key4, true},
	'%': {Key5, true}, '^': {Key6, true}, '&': {Key7, true}, '*': {Key8, true},
	'(': {Key9, true}, ')': {Key0, true},

	// Unshifted symbols
	'-':  {KeyMinus, false},
	'=':  {KeyEqual, false},
	'[':  {KeyLeftBrace, false},
	']':  {KeyRightBrace, false},
	'\\': {KeyBackslash, false},
	';':  {KeySemicolon, false},
	'\'': {KeyApostrophe, false},
	'`':  {KeyGrave, false},
	',':  {KeyComma, false},
	'.':  {KeyPeriod, false},
	'/':  {KeySlash, false},

	// Shifted symbols
	'_': {KeyMinus, true},
	'+': {KeyEqual, true},
	'{': {KeyLeftBrace, true},
	'}': {KeyRightBrace, true},
	'|': {KeyBackslash, true},
	':': {KeySemicolon, true},
	'"': {KeyApostrophe, true},
	'~': {KeyGrave, true},
	'<': {KeyComma, true},
	'>': {KeyPeriod, true},
	'?': {KeySlash, true},

	' ': {KeySpace, false},
}

// Char translates a printable character into its US-layout keycode entry.
// The second return value is false for anything outside the documented set.
func Char(c byte) (Entry, bool) {
	e, ok := charTable[c]
	return e, ok
}

// namedTable maps script key tokens (already upper-cased) to usage codes.
var namedTable = map[string]uint8{
	"ENTER":       KeyEnter,
	"RETURN":      KeyEnter,
	"ESC":         KeyEscape,
	"ESCAPE":      KeyEscape,
	"BACKSPACE":   KeyBackspace,
	"TAB":         KeyTab,
	"SPACE":       KeySpace,
	"CAPSLOCK":    KeyCapsLock,
	"DELETE":      KeyDelete,
	"DEL":         KeyDelete,
	"END":         KeyEnd,
	"HOME":        KeyHome,
	"INSERT":      KeyInsert,
	"PAGEUP":      KeyPageUp,
	"PAGEDOWN":    KeyPageDown,
	"PRINTSCREEN": KeyPrintScreen,
	"PAUSE":       KeyPause,
	"BREAK":       KeyPause,
	"UP":          KeyUp,
	"UPARROW":     KeyUp,
	"DOWN":        KeyDown,
	"DOWNARROW":   KeyDown,
	"LEFT":        KeyLeft,
	"LEFTARROW":   KeyLeft,
	"RIGHT":       KeyRight,
	"RIGHTARROW":  KeyRight,

	"F1": KeyF1, "F2": KeyF2, "F3": KeyF3, "F4": KeyF4,
	"F5": KeyF5, "F6": KeyF6, "F7": KeyF7, "F8": KeyF8,
	"F9": KeyF9, "F10": KeyF10, "F11": KeyF11, "F12": KeyF12,

	"CTRL":    KeyLeftCtrl,
	"CONTROL": KeyLeftCtrl,
	"SHIFT":   KeyLeftShift,
	"ALT":     KeyLeftAlt,
	"GUI":     KeyLeftGUI,
	"WINDOWS": KeyLeftGUI,
}

// Named translates an upper-cased key token into its usage code.
func Named(name string) (uint8, bool) {
	code, ok := namedTable[name]
	return code, ok
}
