// Package config loads the on-card device configuration: a flat key=value
// file read once at startup into an immutable Options snapshot.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ScriptMode names the dialect a script is parsed with.
type ScriptMode string

const (
	ModeDucky  ScriptMode = "ducky"
	ModeCustom ScriptMode = "custom"
)

// Options is the validated configuration snapshot handed to the run
// command. Fields mirror the device.cfg keys.
type Options struct {
	ScriptMode        ScriptMode
	TypingDelay       time.Duration
	LayoutIndependent bool
	Autorun           bool
	InitialDelay      time.Duration
	// RepeatCount is the boot-level repeat count; 0 means do not repeat.
	RepeatCount int
	Debug       bool
}

// Defaults returns the as-built defaults: ducky dialect, direct-ASCII
// typing, no autorun, no repeat.
func Defaults() Options {
	return Options{ScriptMode: ModeDucky}
}

// LoadDeviceConfig parses a device.cfg file. A missing file yields the
// defaults; a malformed line is skipped, not fatal — the device must still
// boot with a half-edited card.
func LoadDeviceConfig(path string) (Options, error) {
	o := Defaults()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return o, nil
		}
		return o, fmt.Errorf("open device config %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "script_mode":
			switch strings.ToLower(value) {
			case "custom":
				o.ScriptMode = ModeCustom
			case "ducky":
				o.ScriptMode = ModeDucky
			}
		case "typing_delay_ms":
			if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
				o.TypingDelay = time.Duration(ms) * time.Millisecond
			}
		case "layout_independent":
			o.LayoutIndependent = parseBool(value)
		case "autorun":
			o.Autorun = parseBool(value)
		case "initial_delay_ms":
			if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
				o.InitialDelay = time.Duration(ms) * time.Millisecond
			}
		case "repeat_count":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				o.RepeatCount = n
			}
		case "debug":
			o.Debug = parseBool(value)
		}
	}
	if err := sc.Err(); err != nil {
		return o, fmt.Errorf("read device config %s: %w", path, err)
	}
	return o, nil
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
