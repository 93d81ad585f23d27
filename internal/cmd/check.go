package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ghostkey/ghostkey/internal/clock"
	"github.com/ghostkey/ghostkey/internal/hid"
	"github.com/ghostkey/ghostkey/internal/script"
	"github.com/ghostkey/ghostkey/internal/status"
	"github.com/ghostkey/ghostkey/internal/storage"
)

// Check dry-runs a script against the recording sink and a fake clock, so a
// payload can be validated without hardware and without waiting out its
// delays.
type Check struct {
	Script string `arg:"" help:"Script file to check" type:"path"`
	Mode   string `help:"Dialect to parse with" enum:"ducky,custom" default:"ducky"`

	LayoutIndependent bool `help:"Check with layout-independent typing"`
	Verbose           bool `help:"Print every recorded sink event"`
}

func (c *Check) Run(logger *slog.Logger) error {
	rec := hid.NewRecorder()
	clk := &clock.Fake{}

	dialect := script.DialectDucky
	if c.Mode == "custom" {
		dialect = script.DialectCustom
	}
	mode := script.ModeDirectASCII
	if c.LayoutIndependent {
		mode = script.ModeLayoutIndependent
	}

	en := script.New(rec, clk, status.NewSlogTracer(logger, true), script.Config{
		Dialect: dialect,
		Mode:    mode,
	})

	sum, err := en.Run(fileSource{fs: storage.NewFileSource(c.Script)})
	if err != nil {
		return err
	}

	if c.Verbose {
		for i, ev := range rec.Events {
			fmt.Printf("%4d  %s\n", i+1, ev)
		}
	}

	logger.Info("check complete",
		"lines", sum.LinesTotal,
		"executed", sum.Executed,
		"skipped", sum.Skipped,
		"events", len(rec.Events),
		"simulatedMs", clk.Total().Milliseconds(),
	)
	return nil
}
