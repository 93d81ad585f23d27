// Package clock abstracts blocking sleeps so script timing can be faked in tests.
package clock

import "time"

// Sleeper blocks the calling goroutine for the requested duration.
// Script execution is single-threaded; every dwell, hold and settle delay
// goes through this interface.
type Sleeper interface {
	Sleep(d time.Duration)
}

// Real sleeps on the wall clock.
type Real struct{}

func (Real) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// Fake records requested sleeps without waiting.
type Fake struct {
	Slept []time.Duration
}

func (f *Fake) Sleep(d time.Duration) {
	f.Slept = append(f.Slept, d)
}

// Total returns the sum of all recorded sleeps.
func (f *Fake) Total() time.Duration {
	var t time.Duration
	for _, d := range f.Slept {
		t += d
	}
	return t
}
