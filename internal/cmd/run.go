package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/term"

	"github.com/ghostkey/ghostkey/internal/clock"
	"github.com/ghostkey/ghostkey/internal/config"
	"github.com/ghostkey/ghostkey/internal/hid"
	"github.com/ghostkey/ghostkey/internal/script"
	"github.com/ghostkey/ghostkey/internal/status"
	"github.com/ghostkey/ghostkey/internal/storage"
)

// Run executes the card's script toward the host.
type Run struct {
	Card   string `help:"Card mount directory holding scripts and device.cfg" default:"/mnt/card" env:"GHOSTKEY_CARD" type:"path"`
	Script string `help:"Run this script file instead of selecting one from the card" type:"path"`
	Sink   string `help:"Keyboard sink" enum:"gadget,uinput,trace" default:"gadget" env:"GHOSTKEY_SINK"`
	Device string `help:"HID gadget character device" default:"/dev/hidg0" env:"GHOSTKEY_DEVICE"`
	LED    string `name:"led" help:"sysfs LED directory for status patterns" env:"GHOSTKEY_LED"`

	MountAttempts int           `help:"Attempts to wait for the card mount" default:"10"`
	MountBackoff  time.Duration `help:"Pause between mount attempts" default:"500ms"`
}

// fileSource adapts storage.FileSource to the engine's Source interface.
type fileSource struct {
	fs *storage.FileSource
}

func (f fileSource) Lines() (script.LineIterator, error) {
	return f.fs.Lines()
}

func (r *Run) Run(logger *slog.Logger) error {
	clk := clock.Real{}
	led := status.NewLED(r.LED)

	if r.Script == "" {
		if err := storage.WaitForMount(clk, r.Card, r.MountAttempts, r.MountBackoff); err != nil {
			_ = led.Set(status.PatternError)
			return err
		}
	}

	opts, err := config.LoadDeviceConfig(filepath.Join(r.Card, storage.DeviceConfigFile))
	if err != nil {
		logger.Warn("device config unreadable, using defaults", "error", err)
		opts = config.Defaults()
	}

	scriptPath := r.Script
	if scriptPath == "" {
		scriptPath, err = storage.SelectScript(r.Card, opts.ScriptMode == config.ModeDucky)
		if err != nil {
			_ = led.Set(status.PatternError)
			return err
		}
	}
	logger.Info("selected script",
		"path", scriptPath,
		"mode", string(opts.ScriptMode),
		"layoutIndependent", opts.LayoutIndependent,
	)

	sink, closeSink, err := r.openSink()
	if err != nil {
		_ = led.Set(status.PatternError)
		return err
	}
	defer closeSink()

	en := script.New(sink, clk, status.NewSlogTracer(logger, opts.Debug), engineConfig(opts))

	if err := led.Set(status.PatternArmed); err != nil {
		logger.Warn("status led unavailable", "error", err)
	}
	if !opts.Autorun && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("Armed. Press Enter to start injection...")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}
	clk.Sleep(opts.InitialDelay)

	_ = led.Set(status.PatternBusy)
	sum, err := en.Run(fileSource{fs: storage.NewFileSource(scriptPath)})
	if err != nil {
		_ = led.Set(status.PatternError)
		logger.Error("script aborted", "error", err)
		return err
	}
	_ = led.Set(status.PatternDone)

	logger.Info("run complete",
		"lines", sum.LinesTotal,
		"executed", sum.Executed,
		"skipped", sum.Skipped,
		"elapsedMs", sum.Elapsed.Milliseconds(),
	)
	return nil
}

func (r *Run) openSink() (hid.Sink, func(), error) {
	switch r.Sink {
	case "uinput":
		u, err := hid.OpenUinput()
		if err != nil {
			return nil, nil, err
		}
		return u, func() { _ = u.Close() }, nil
	case "trace":
		return hid.NewRecorder(), func() {}, nil
	default:
		g, err := hid.OpenGadget(r.Device)
		if err != nil {
			return nil, nil, err
		}
		return g, func() { _ = g.Close() }, nil
	}
}

// engineConfig maps the device options snapshot onto the engine's config.
func engineConfig(opts config.Options) script.Config {
	dialect := script.DialectDucky
	if opts.ScriptMode == config.ModeCustom {
		dialect = script.DialectCustom
	}
	mode := script.ModeDirectASCII
	if opts.LayoutIndependent {
		mode = script.ModeLayoutIndependent
	}
	return script.Config{
		Dialect:     dialect,
		Mode:        mode,
		TypingDelay: opts.TypingDelay,
		RepeatCount: opts.RepeatCount,
	}
}
