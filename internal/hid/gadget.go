//go:build linux

package hid

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/ghostkey/ghostkey/internal/keymap"
)

// writeBudgetMs bounds how long a report write may wait for the host. If no
// host is reading the gadget endpoint a blocking write would wedge the whole
// interpreter, so we poll for writability first and drop the report instead.
const writeBudgetMs = 5

// reportKeys is the key-array size of a boot protocol report.
const reportKeys = 6

// Gadget types through a USB HID gadget character device (/dev/hidgX) using
// 8-byte boot keyboard reports: modifier byte, reserved byte, six key slots.
type Gadget struct {
	fd   int
	path string

	mods uint8
	keys [reportKeys]uint8
}

// OpenGadget opens the gadget endpoint non-blocking.
func OpenGadget(path string) (*Gadget, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open gadget %s: %w", path, err)
	}
	return &Gadget{fd: fd, path: path}, nil
}

func (g *Gadget) Close() error {
	return unix.Close(g.fd)
}

func (g *Gadget) Press(code uint8) error {
	if bit := keymap.ModifierBit(code); bit != 0 {
		g.mods |= bit
		return g.flush()
	}
	for _, k := range g.keys {
		if k == code {
			return g.flush()
		}
	}
	for i, k := range g.keys {
		if k == 0 {
			g.keys[i] = code
			return g.flush()
		}
	}
	// All six slots taken; boot protocol cannot express more.
	return g.flush()
}

func (g *Gadget) ReleaseAll() error {
	g.mods = 0
	g.keys = [reportKeys]uint8{}
	return g.flush()
}

func (g *Gadget) WriteLiteral(c byte) error {
	e, ok := literalEntry(c)
	if !ok {
		return nil
	}
	var mods uint8
	if e.Shift {
		mods = keymap.ModLeftShift
	}
	report := [8]byte{mods, 0, e.Code}
	if err := g.send(report[:]); err != nil {
		return err
	}
	var empty [8]byte
	return g.send(empty[:])
}

func (g *Gadget) flush() error {
	report := [8]byte{g.mods, 0}
	copy(report[2:], g.keys[:])
	return g.send(report[:])
}

func (g *Gadget) send(report []byte) error {
	fds := []unix.PollFd{{Fd: int32(g.fd), Events: unix.POLLOUT}}
	n, err := unix.Poll(fds, writeBudgetMs)
	if err != nil {
		return fmt.Errorf("poll gadget %s: %w", g.path, err)
	}
	if n == 0 {
		// Host not reading; drop the report rather than block.
		return nil
	}
	if _, err := unix.Write(g.fd, report); err != nil {
		return fmt.Errorf("write gadget %s: %w", g.path, err)
	}
	return nil
}
