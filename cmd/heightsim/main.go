package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/heighthop/levels"
	"github.com/milk9111/heighthop/logger"
	"github.com/milk9111/heighthop/sim"
	"go.uber.org/zap"
)

type options struct {
	level   string
	script  string
	ticks   int
	every   int
	format  string
	verbose bool
}

func main() {
	var opts options
	flag.StringVar(&opts.level, "level", "default", "level name in levels/ (basename, .json optional)")
	flag.StringVar(&opts.script, "script", "idle", "input script, e.g. right*30,right+jump,idle*20")
	flag.IntVar(&opts.ticks, "ticks", 0, "pad the script with idle ticks up to this many")
	flag.IntVar(&opts.every, "every", 1, "print every Nth tick")
	flag.StringVar(&opts.format, "format", "table", "output format: table or json")
	flag.BoolVar(&opts.verbose, "v", false, "log height and collision events")
	flag.Parse()

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	if err := logger.InitWithFileConfig(level, logger.FileConfig{}, os.Stderr); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(os.Stdout, opts); err != nil {
		logger.Fatal("heightsim failed", zap.Error(err))
	}
}

func run(out io.Writer, opts options) error {
	if opts.every < 1 {
		return fmt.Errorf("-every must be at least 1, got %d", opts.every)
	}
	w, err := newWriter(out, opts.format)
	if err != nil {
		return err
	}

	lvl, err := levels.Load(opts.level)
	if err != nil {
		return err
	}
	segments, err := sim.ParseScript(opts.script)
	if err != nil {
		return err
	}
	keys := sim.NewScriptedKeys(padScript(segments, opts.ticks))

	s, err := sim.New(context.Background(), lvl, sim.Options{ViewWidth: 960, ViewHeight: 720, Keys: keys})
	if err != nil {
		return err
	}

	events := logger.Named("heightsim")
	if err := w.Write(s.Sample()); err != nil {
		return err
	}
	for !keys.Done() {
		for _, ev := range s.Step(sim.TickDuration) {
			events.Debug("event", zap.Int("tick", s.Tick()), zap.Any("data", ev.Data))
		}
		keys.Advance()
		if s.Tick()%opts.every == 0 {
			if err := w.Write(s.Sample()); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// padScript appends an idle segment so the script runs for at least ticks.
func padScript(segments []sim.Segment, ticks int) []sim.Segment {
	total := 0
	for _, seg := range segments {
		total += seg.Ticks
	}
	if ticks > total {
		segments = append(segments, sim.Segment{Ticks: ticks - total})
	}
	return segments
}
