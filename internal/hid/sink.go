// Package hid provides the keyboard emulation sinks the interpreter drives:
// a USB gadget endpoint, a local uinput device, and a recording fake.
package hid

import (
	"fmt"

	"github.com/ghostkey/ghostkey/internal/keymap"
)

// Sink is the keyboard the interpreter types on. Press puts a key (or
// modifier) down and leaves it down, ReleaseAll lifts every pressed key in a
// single atomic step, and WriteLiteral emits one character as an atomic
// press+release relying on host-side ASCII interpretation.
//
// The interpreter never reads keyboard state back.
type Sink interface {
	Press(code uint8) error
	ReleaseAll() error
	WriteLiteral(c byte) error
}

// EventKind classifies recorded sink events.
type EventKind int

const (
	EventPress EventKind = iota
	EventReleaseAll
	EventWrite
)

// Event is one recorded sink call.
type Event struct {
	Kind EventKind
	Code uint8 // Press only
	Char byte  // Write only
}

func (e Event) String() string {
	switch e.Kind {
	case EventPress:
		return fmt.Sprintf("press(0x%02x)", e.Code)
	case EventReleaseAll:
		return "release-all"
	case EventWrite:
		return fmt.Sprintf("write(%q)", string(e.Char))
	}
	return "unknown"
}

// Recorder is a Sink that records every call instead of emitting input.
// It backs the check command's dry runs and the engine tests.
type Recorder struct {
	Events []Event

	down []uint8
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Press(code uint8) error {
	r.Events = append(r.Events, Event{Kind: EventPress, Code: code})
	r.down = append(r.down, code)
	return nil
}

func (r *Recorder) ReleaseAll() error {
	r.Events = append(r.Events, Event{Kind: EventReleaseAll})
	r.down = nil
	return nil
}

func (r *Recorder) WriteLiteral(c byte) error {
	r.Events = append(r.Events, Event{Kind: EventWrite, Char: c})
	return nil
}

// Down returns the keys currently held, in press order.
func (r *Recorder) Down() []uint8 {
	out := make([]uint8, len(r.down))
	copy(out, r.down)
	return out
}

// literalEntry resolves a character for an atomic literal write. Control
// characters that the keycode map deliberately excludes from typing still
// have a literal form (Enter, Tab), matching host-side ASCII handling.
func literalEntry(c byte) (keymap.Entry, bool) {
	switch c {
	case '\n', '\r':
		return keymap.Entry{Code: keymap.KeyEnter}, true
	case '\t':
		return keymap.Entry{Code: keymap.KeyTab}, true
	}
	return keymap.Char(c)
}
