package status

import (
	"fmt"
	"os"
	"path/filepath"
)

// Pattern is a status LED state.
type Pattern int

const (
	PatternOff Pattern = iota
	PatternArmed
	PatternBusy
	PatternDone
	PatternError
)

// LED drives a sysfs LED (/sys/class/leds/<name>) through its trigger and
// timing attributes. The kernel's timer trigger does the blinking, so no
// goroutine is needed. A zero-value LED is a no-op.
type LED struct {
	dir string
}

// NewLED points at a sysfs LED directory. An empty path disables the LED.
func NewLED(dir string) *LED {
	return &LED{dir: dir}
}

// Set switches the LED to the pattern. Errors are returned for the caller
// to log; LED failure never affects script execution.
func (l *LED) Set(p Pattern) error {
	if l == nil || l.dir == "" {
		return nil
	}
	switch p {
	case PatternOff:
		return l.write("trigger", "none", "brightness", "0")
	case PatternArmed:
		// Slow blink while waiting to inject.
		return l.write("trigger", "timer", "delay_on", "1000", "delay_off", "1000")
	case PatternBusy:
		// Fast blink during injection.
		return l.write("trigger", "timer", "delay_on", "100", "delay_off", "100")
	case PatternDone:
		return l.write("trigger", "none", "brightness", "1")
	case PatternError:
		return l.write("trigger", "timer", "delay_on", "50", "delay_off", "450")
	}
	return nil
}

func (l *LED) write(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		p := filepath.Join(l.dir, pairs[i])
		if err := os.WriteFile(p, []byte(pairs[i+1]), 0o644); err != nil {
			return fmt.Errorf("led %s: %w", pairs[i], err)
		}
	}
	return nil
}
