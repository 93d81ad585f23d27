package script

import (
	"strings"
	"time"

	"github.com/ghostkey/ghostkey/internal/clock"
	"github.com/ghostkey/ghostkey/internal/hid"
)

// LineIterator yields script lines lazily.
type LineIterator interface {
	Next() bool
	Text() string
	Err() error
	Close() error
}

// Source produces the script, re-openable for whole-script repeats.
type Source interface {
	Lines() (LineIterator, error)
}

// Tracer receives line-level trace events and the end-of-run summary. The
// engine only notifies it, never queries it.
type Tracer interface {
	Line(num int, raw string, command string, executed bool)
	Done(Summary)
}

type nopTracer struct{}

func (nopTracer) Line(int, string, string, bool) {}
func (nopTracer) Done(Summary)                   {}

// Summary is the end-of-run accounting. Counters accumulate across repeat
// passes.
type Summary struct {
	LinesTotal int
	Executed   int
	Skipped    int
	Elapsed    time.Duration
}

// Config is the pre-validated snapshot the engine runs under.
type Config struct {
	Dialect     Dialect
	Mode        TypingMode
	TypingDelay time.Duration // TYPESOFT inter-character gap
	// RepeatCount seeds whole-script repetition from the boot configuration;
	// 0 means run once (unlike the in-script REPEAT command, see handleRepeat).
	RepeatCount int
	Timing      Timing
}

// Engine interprets a script against a keyboard sink. Execution is
// single-threaded and fully synchronous; every timing requirement is a
// blocking sleep on the injected clock.
type Engine struct {
	sink   hid.Sink
	clk    clock.Sleeper
	emit   *Emitter
	tracer Tracer
	table  map[string]handler

	dialect     Dialect
	typingDelay time.Duration
	timing      Timing
	seed        Session

	sess Session
}

// New builds an engine. A nil tracer is replaced with a no-op.
func New(sink hid.Sink, clk clock.Sleeper, tracer Tracer, cfg Config) *Engine {
	if tracer == nil {
		tracer = nopTracer{}
	}
	if cfg.Timing == (Timing{}) {
		cfg.Timing = DefaultTiming()
	}
	seed := Session{Mode: cfg.Mode}
	if cfg.RepeatCount > 0 {
		seed.RepeatEnabled = true
		seed.RepeatCount = cfg.RepeatCount
	}
	return &Engine{
		sink:        sink,
		clk:         clk,
		emit:        NewEmitter(sink, clk, cfg.Timing),
		tracer:      tracer,
		table:       buildTable(),
		dialect:     cfg.Dialect,
		typingDelay: cfg.TypingDelay,
		timing:      cfg.Timing,
		seed:        seed,
	}
}

// Run executes the script to completion, replaying it while repetition is
// active. Only a source failure aborts; malformed lines and unknown
// commands are skipped or no-oped per the error policy.
func (en *Engine) Run(src Source) (Summary, error) {
	en.sess = en.seed
	start := time.Now()
	var sum Summary

	for {
		it, err := src.Lines()
		if err != nil {
			sum.Elapsed = time.Since(start)
			return sum, err
		}
		if err := en.runPass(it, &sum); err != nil {
			_ = it.Close()
			sum.Elapsed = time.Since(start)
			return sum, err
		}
		if err := it.Close(); err != nil {
			sum.Elapsed = time.Since(start)
			return sum, err
		}
		if en.sess.RepeatEnabled &&
			(en.sess.RepeatCount == 0 || en.sess.Iteration < en.sess.RepeatCount) {
			en.sess.Iteration++
			continue
		}
		break
	}

	sum.Elapsed = time.Since(start)
	en.tracer.Done(sum)
	return sum, nil
}

func (en *Engine) runPass(it LineIterator, sum *Summary) error {
	num := 0
	for it.Next() {
		num++
		sum.LinesTotal++
		line := strings.TrimSpace(it.Text())

		if line == "" || IsComment(line, en.dialect) {
			sum.Skipped++
			en.tracer.Line(num, line, "", false)
			continue
		}
		cmd, ok := Parse(line, en.dialect)
		if !ok {
			sum.Skipped++
			en.tracer.Line(num, line, "", false)
			continue
		}
		if err := en.dispatch(cmd); err != nil {
			return err
		}
		// Unknown commands count as executed; the statistics mirror what
		// the interpreter attempted, not what emitted keystrokes.
		sum.Executed++
		en.tracer.Line(num, line, cmd.Name, true)
		en.clk.Sleep(en.sess.DefaultDelay)
	}
	return it.Err()
}

func (en *Engine) dispatch(cmd Command) error {
	if h, ok := en.table[cmd.Name]; ok {
		return h(en, cmd)
	}
	if strings.Contains(cmd.Name, "+") {
		codes := resolveChord(cmd.Name)
		if len(codes) == 0 {
			return nil
		}
		return en.emit.Chord(codes)
	}
	return nil
}

// typeCommand types a program or shell line and submits it with Enter,
// honoring the configured inter-character delay when one is set.
func (en *Engine) typeCommand(text string) error {
	return en.emit.TypeLine(text, en.sess.Mode, en.typingDelay)
}

// Session returns a copy of the current interpreter state, for tests and
// the check command's reporting.
func (en *Engine) Session() Session {
	return en.sess
}
