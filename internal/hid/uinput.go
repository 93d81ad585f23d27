//go:build linux

package hid

import (
	"fmt"

	evdev "github.com/holoplot/go-evdev"

	"github.com/ghostkey/ghostkey/internal/keymap"
)

// usageToEvdev translates the HID usage codes the interpreter emits into
// Linux input event codes for the uinput sink.
var usageToEvdev = map[uint8]evdev.EvCode{
	keymap.KeyA: evdev.KEY_A, keymap.KeyB: evdev.KEY_B, keymap.KeyC: evdev.KEY_C,
	keymap.KeyD: evdev.KEY_D, keymap.KeyE: evdev.KEY_E, keymap.KeyF: evdev.KEY_F,
	keymap.KeyG: evdev.KEY_G, keymap.KeyH: evdev.KEY_H, keymap.KeyI: evdev.KEY_I,
	keymap.KeyJ: evdev.KEY_J, keymap.KeyK: evdev.KEY_K, keymap.KeyL: evdev.KEY_L,
	keymap.KeyM: evdev.KEY_M, keymap.KeyN: evdev.KEY_N, keymap.KeyO: evdev.KEY_O,
	keymap.KeyP: evdev.KEY_P, keymap.KeyQ: evdev.KEY_Q, keymap.KeyR: evdev.KEY_R,
	keymap.KeyS: evdev.KEY_S, keymap.KeyT: evdev.KEY_T, keymap.KeyU: evdev.KEY_U,
	keymap.KeyV: evdev.KEY_V, keymap.KeyW: evdev.KEY_W, keymap.KeyX: evdev.KEY_X,
	keymap.KeyY: evdev.KEY_Y, keymap.KeyZ: evdev.KEY_Z,

	keymap.Key1: evdev.KEY_1, keymap.Key2: evdev.KEY_2, keymap.Key3: evdev.KEY_3,
	keymap.Key4: evdev.KEY_4, keymap.Key5: evdev.KEY_5, keymap.Key6: evdev.KEY_6,
	keymap.Key7: evdev.KEY_7, keymap.Key8: evdev.KEY_8, keymap.Key9: evdev.KEY_9,
	keymap.Key0: evdev.KEY_0,

	keymap.KeyEnter:      evdev.KEY_ENTER,
	keymap.KeyEscape:     evdev.KEY_ESC,
	keymap.KeyBackspace:  evdev.KEY_BACKSPACE,
	keymap.KeyTab:        evdev.KEY_TAB,
	keymap.KeySpace:      evdev.KEY_SPACE,
	keymap.KeyMinus:      evdev.KEY_MINUS,
	keymap.KeyEqual:      evdev.KEY_EQUAL,
	keymap.KeyLeftBrace:  evdev.KEY_LEFTBRACE,
	keymap.KeyRightBrace: evdev.KEY_RIGHTBRACE,
	keymap.KeyBackslash:  evdev.KEY_BACKSLASH,
	keymap.KeySemicolon:  evdev.KEY_SEMICOLON,
	keymap.KeyApostrophe: evdev.KEY_APOSTROPHE,
	keymap.KeyGrave:      evdev.KEY_GRAVE,
	keymap.KeyComma:      evdev.KEY_COMMA,
	keymap.KeyPeriod:     evdev.KEY_DOT,
	keymap.KeySlash:      evdev.KEY_SLASH,
	keymap.KeyCapsLock:   evdev.KEY_CAPSLOCK,

	keymap.KeyF1: evdev.KEY_F1, keymap.KeyF2: evdev.KEY_F2,
	keymap.KeyF3: evdev.KEY_F3, keymap.KeyF4: evdev.KEY_F4,
	keymap.KeyF5: evdev.KEY_F5, keymap.KeyF6: evdev.KEY_F6,
	keymap.KeyF7: evdev.KEY_F7, keymap.KeyF8: evdev.KEY_F8,
	keymap.KeyF9: evdev.KEY_F9, keymap.KeyF10: evdev.KEY_F10,
	keymap.KeyF11: evdev.KEY_F11, keymap.KeyF12: evdev.KEY_F12,

	keymap.KeyPrintScreen: evdev.KEY_SYSRQ,
	keymap.KeyScrollLock:  evdev.KEY_SCROLLLOCK,
	keymap.KeyPause:       evdev.KEY_PAUSE,
	keymap.KeyInsert:      evdev.KEY_INSERT,
	keymap.KeyHome:        evdev.KEY_HOME,
	keymap.KeyPageUp:      evdev.KEY_PAGEUP,
	keymap.KeyDelete:      evdev.KEY_DELETE,
	keymap.KeyEnd:         evdev.KEY_END,
	keymap.KeyPageDown:    evdev.KEY_PAGEDOWN,
	keymap.KeyRight:       evdev.KEY_RIGHT,
	keymap.KeyLeft:        evdev.KEY_LEFT,
	keymap.KeyDown:        evdev.KEY_DOWN,
	keymap.KeyUp:          evdev.KEY_UP,

	keymap.KeyLeftCtrl:  evdev.KEY_LEFTCTRL,
	keymap.KeyLeftShift: evdev.KEY_LEFTSHIFT,
	keymap.KeyLeftAlt:   evdev.KEY_LEFTALT,
	keymap.KeyLeftGUI:   evdev.KEY_LEFTMETA,
}

// Uinput injects into the local machine through a virtual evdev keyboard.
// Useful for dry-running payloads without gadget hardware attached.
type Uinput struct {
	dev  *evdev.InputDevice
	down []evdev.EvCode
}

// OpenUinput creates the virtual keyboard device.
func OpenUinput() (*Uinput, error) {
	codes := make([]evdev.EvCode, 0, len(usageToEvdev))
	for _, c := range usageToEvdev {
		codes = append(codes, c)
	}
	id := evdev.InputID{
		BusType: uint16(evdev.BUS_VIRTUAL),
		Vendor:  0x1d6b,
		Product: 0x0104,
		Version: 1,
	}
	dev, err := evdev.CreateDevice("ghostkey", id, map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: codes,
	})
	if err != nil {
		return nil, fmt.Errorf("create uinput device: %w", err)
	}
	return &Uinput{dev: dev}, nil
}

func (u *Uinput) Close() error {
	return u.dev.Close()
}

func (u *Uinput) Press(code uint8) error {
	ev, ok := usageToEvdev[code]
	if !ok {
		return nil
	}
	if err := u.writeKey(ev, 1); err != nil {
		return err
	}
	u.down = append(u.down, ev)
	return u.syn()
}

func (u *Uinput) ReleaseAll() error {
	// Release in reverse press order so modifiers go up last.
	for i := len(u.down) - 1; i >= 0; i-- {
		if err := u.writeKey(u.down[i], 0); err != nil {
			return err
		}
	}
	u.down = nil
	return u.syn()
}

func (u *Uinput) WriteLiteral(c byte) error {
	e, ok := literalEntry(c)
	if !ok {
		return nil
	}
	ev, ok := usageToEvdev[e.Code]
	if !ok {
		return nil
	}
	if e.Shift {
		if err := u.writeKey(evdev.KEY_LEFTSHIFT, 1); err != nil {
			return err
		}
	}
	if err := u.writeKey(ev, 1); err != nil {
		return err
	}
	if err := u.writeKey(ev, 0); err != nil {
		return err
	}
	if e.Shift {
		if err := u.writeKey(evdev.KEY_LEFTSHIFT, 0); err != nil {
			return err
		}
	}
	return u.syn()
}

func (u *Uinput) writeKey(code evdev.EvCode, value int32) error {
	return u.dev.WriteOne(&evdev.InputEvent{
		Type:  evdev.EV_KEY,
		Code:  code,
		Value: value,
	})
}

func (u *Uinput) syn() error {
	return u.dev.WriteOne(&evdev.InputEvent{
		Type: evdev.EV_SYN,
		Code: evdev.SYN_REPORT,
	})
}
