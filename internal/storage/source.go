// Package storage accesses the removable card: script files, the script
// priority order, mount bootstrap, and card diagnostics.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ghostkey/ghostkey/internal/clock"
)

var (
	// ErrNoScript means no runnable script file exists on the card.
	ErrNoScript = errors.New("no script file found")
	// ErrNoCard means the card mount never became available.
	ErrNoCard = errors.New("storage not available")
)

// Script file names on the card. The three diagnostic overrides take
// priority over the normal script, in this exact order.
const (
	LayoutTestFile = "layout-test.txt"
	ComboTestFile  = "keycombo-test.txt"
	ShiftTestFile  = "shift-test.txt"
	DuckyFile      = "script.txt"
	CustomFile     = "commands.txt"
)

// DeviceConfigFile is the key=value device configuration on the card.
const DeviceConfigFile = "device.cfg"

// SelectScript resolves which script to run from the card directory:
// layout test > key-combo test > shift test > the dialect's normal script.
// ducky selects script.txt, otherwise commands.txt.
func SelectScript(dir string, ducky bool) (string, error) {
	normal := CustomFile
	if ducky {
		normal = DuckyFile
	}
	for _, name := range []string{LayoutTestFile, ComboTestFile, ShiftTestFile, normal} {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNoScript, dir)
}

// WaitForMount polls until the card directory is readable, sleeping backoff
// between attempts. Storage hardware on cold boot can take a while to
// enumerate; a bounded retry beats failing the run outright.
func WaitForMount(clk clock.Sleeper, dir string, attempts int, backoff time.Duration) error {
	for i := 0; i < attempts; i++ {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			return nil
		}
		if i < attempts-1 {
			clk.Sleep(backoff)
		}
	}
	return fmt.Errorf("%w: %s", ErrNoCard, dir)
}

// FileSource produces the lazy line sequence of one script file. Each
// Lines call reopens the file, which is what the engine's repeat loop needs.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Path() string { return s.path }

// Lines opens the file and returns a line iterator. An open failure is the
// one fatal error class of a run.
func (s *FileSource) Lines() (*LineScanner, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open script %s: %w", s.path, err)
	}
	return &LineScanner{f: f, sc: bufio.NewScanner(f)}, nil
}

// LineScanner adapts bufio.Scanner to the engine's iterator contract.
type LineScanner struct {
	f  *os.File
	sc *bufio.Scanner
}

func (l *LineScanner) Next() bool   { return l.sc.Scan() }
func (l *LineScanner) Text() string { return l.sc.Text() }
func (l *LineScanner) Err() error   { return l.sc.Err() }
func (l *LineScanner) Close() error { return l.f.Close() }
