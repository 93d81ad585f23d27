package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// Diagnostics is the card health report produced by Diagnose.
type Diagnostics struct {
	ReadKBps  float64
	WriteKBps float64
	TotalMB   uint64
	FreeMB    uint64
	Healthy   bool
	Detail    string
}

const (
	diagBlock    = 512
	diagDuration = time.Second
	speedFile    = "speedtest.bin"
	healthFiles  = 3
)

// Diagnose measures read and write throughput, reports capacity, and runs a
// write/read-back verification on the card directory. The test files are
// removed afterwards.
func Diagnose(dir string) (Diagnostics, error) {
	var d Diagnostics

	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return d, fmt.Errorf("%w: %s", ErrNoCard, dir)
	}

	var fs unix.Statfs_t
	if err := unix.Statfs(dir, &fs); err != nil {
		return d, fmt.Errorf("statfs %s: %w", dir, err)
	}
	bs := uint64(fs.Bsize)
	d.TotalMB = fs.Blocks * bs / (1024 * 1024)
	d.FreeMB = fs.Bavail * bs / (1024 * 1024)

	var err error
	if d.WriteKBps, err = writeSpeed(dir); err != nil {
		return d, err
	}
	if d.ReadKBps, err = readSpeed(dir); err != nil {
		return d, err
	}
	d.Healthy, d.Detail = health(dir)
	return d, nil
}

func writeSpeed(dir string) (float64, error) {
	p := filepath.Join(dir, speedFile)
	f, err := os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create speed test file: %w", err)
	}
	defer f.Close()

	buf := make([]byte, diagBlock)
	for i := range buf {
		buf[i] = byte(i)
	}

	var written int64
	start := time.Now()
	for time.Since(start) < diagDuration {
		n, err := f.Write(buf)
		if err != nil {
			return 0, fmt.Errorf("speed test write: %w", err)
		}
		written += int64(n)
	}
	if err := f.Sync(); err != nil {
		return 0, fmt.Errorf("speed test sync: %w", err)
	}
	elapsed := time.Since(start)
	return float64(written) / 1024 / elapsed.Seconds(), nil
}

func readSpeed(dir string) (float64, error) {
	p := filepath.Join(dir, speedFile)
	defer os.Remove(p)

	f, err := os.Open(p)
	if err != nil {
		return 0, fmt.Errorf("open speed test file: %w", err)
	}
	defer f.Close()

	size, err := f.Seek(0, 2)
	if err != nil || size == 0 {
		return 0, fmt.Errorf("speed test file empty")
	}

	buf := make([]byte, diagBlock)
	var read int64
	start := time.Now()
	for time.Since(start) < diagDuration {
		if pos, _ := f.Seek(0, 1); pos+diagBlock > size {
			if _, err := f.Seek(0, 0); err != nil {
				return 0, fmt.Errorf("speed test seek: %w", err)
			}
		}
		n, err := f.Read(buf)
		if err != nil {
			return 0, fmt.Errorf("speed test read: %w", err)
		}
		read += int64(n)
	}
	elapsed := time.Since(start)
	return float64(read) / 1024 / elapsed.Seconds(), nil
}

// health writes a pattern to several files and verifies it reads back
// intact.
func health(dir string) (bool, string) {
	want := make([]byte, diagBlock)
	for i := range want {
		want[i] = byte((i*7 + 13) & 0xFF)
	}

	for i := 0; i < healthFiles; i++ {
		p := filepath.Join(dir, fmt.Sprintf("healthtest%d.bin", i))
		if err := os.WriteFile(p, want, 0o644); err != nil {
			return false, fmt.Sprintf("write error: %v", err)
		}
		got, err := os.ReadFile(p)
		_ = os.Remove(p)
		if err != nil {
			return false, fmt.Sprintf("read error: %v", err)
		}
		if len(got) != len(want) {
			return false, "size mismatch"
		}
		if !bytes.Equal(got, want) {
			return false, "data corruption"
		}
	}
	return true, "good"
}
