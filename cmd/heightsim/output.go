package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/milk9111/heighthop/sim"
)

type sampleWriter interface {
	Write(sim.Sample) error
	Flush() error
}

func newWriter(out io.Writer, format string) (sampleWriter, error) {
	switch format {
	case "table":
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "tick\tx\ty\tbase\ttarget\teffective\tjumping\tscale\t")
		return &tableWriter{tw: tw}, nil
	case "json":
		return &jsonWriter{enc: json.NewEncoder(out)}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

type tableWriter struct {
	tw *tabwriter.Writer
}

func (w *tableWriter) Write(s sim.Sample) error {
	_, err := fmt.Fprintf(w.tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.3f\t%v\t%.3f\t\n",
		s.Tick, s.X, s.Y, s.Base, s.Target, s.Effective, s.Jumping, s.Scale)
	return err
}

func (w *tableWriter) Flush() error { return w.tw.Flush() }

type jsonWriter struct {
	enc *json.Encoder
}

func (w *jsonWriter) Write(s sim.Sample) error { return w.enc.Encode(s) }

func (w *jsonWriter) Flush() error { return nil }
