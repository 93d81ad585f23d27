package script

import "time"

// TypingMode selects the strategy used for literal text commands and for
// resolving modifier-combo primaries.
type TypingMode int

const (
	// ModeDirectASCII emits each character as one atomic literal write and
	// relies on the host's own ASCII handling. Layout-sensitive but fast;
	// this is the default unless layout independence is configured.
	ModeDirectASCII TypingMode = iota
	// ModeLayoutIndependent types raw keycodes with explicit shift state
	// through the full press/hold/release sequence, so output is identical
	// regardless of the host layout setting.
	ModeLayoutIndependent
	// ModeNative is the direct strategy without inter-character settling,
	// trusting the host to keep up.
	ModeNative
)

func (m TypingMode) String() string {
	switch m {
	case ModeLayoutIndependent:
		return "layout-independent"
	case ModeNative:
		return "native"
	}
	return "direct-ascii"
}

// Session is the interpreter's mutable state. It is owned exclusively by the
// driver; only the DELAY/DEFAULTDELAY/REPEAT handlers and the driver's
// iteration loop touch it.
type Session struct {
	DefaultDelay  time.Duration
	RepeatEnabled bool
	// RepeatCount is the number of extra passes; 0 means unbounded once
	// repeating is enabled.
	RepeatCount int
	Iteration   int
	Mode        TypingMode
}

// Timing holds the empirically tuned pauses around every emission. The
// values compensate for host-side debouncing and input latency; shrinking
// them drops keystrokes on slow targets.
type Timing struct {
	ShiftDwell time.Duration // after Shift goes down, before the primary
	ModDwell   time.Duration // same for Ctrl/Alt/GUI combos
	CharHold   time.Duration // primary key held during layout-independent typing
	Settle     time.Duration // after release-all
	CharGap    time.Duration // between characters of a string
	KeyHold    time.Duration // plain named keys
	NavHold    time.Duration // navigation/editing keys need longer
	NavSettle  time.Duration
	LineSettle time.Duration // before the trailing Enter of *LN commands
}

// DefaultTiming returns the production timings.
func DefaultTiming() Timing {
	return Timing{
		ShiftDwell: 250 * time.Millisecond,
		ModDwell:   100 * time.Millisecond,
		CharHold:   250 * time.Millisecond,
		Settle:     50 * time.Millisecond,
		CharGap:    20 * time.Millisecond,
		KeyHold:    50 * time.Millisecond,
		NavHold:    200 * time.Millisecond,
		NavSettle:  50 * time.Millisecond,
		LineSettle: 100 * time.Millisecond,
	}
}
