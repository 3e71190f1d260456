package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/milk9111/heighthop/levels"
	"github.com/milk9111/heighthop/prefabs"
)

const maxUndo = 100

// Doc is the level being edited. Every mutation pushes an undo snapshot.
type Doc struct {
	Level *levels.Level
	Path  string
	Dirty bool

	undo [][]prefabs.ObstacleSpec
}

// NewDoc starts an empty level of the given size with the spawn in the
// middle.
func NewDoc(name string, w, h float64) *Doc {
	return &Doc{Level: &levels.Level{
		Name:     name,
		Width:    w,
		Height:   h,
		Spawn:    levels.Point{X: w / 2, Y: h / 2},
		GridSize: levels.DefaultGridSize,
	}}
}

// OpenDoc reads a level file. Scripted obstacles are not expanded so the
// script survives a save.
func OpenDoc(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]
	lvl, err := levels.Parse(name, data)
	if err != nil {
		return nil, err
	}
	return &Doc{Level: lvl, Path: path}, nil
}

func (d *Doc) snapshot() {
	cp := append([]prefabs.ObstacleSpec(nil), d.Level.Obstacles...)
	d.undo = append(d.undo, cp)
	if len(d.undo) > maxUndo {
		d.undo = d.undo[1:]
	}
	d.Dirty = true
}

// Undo restores the obstacle list before the last mutation.
func (d *Doc) Undo() bool {
	if len(d.undo) == 0 {
		return false
	}
	d.Level.Obstacles = d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	d.Dirty = true
	return true
}

func (d *Doc) snap(v float64) float64 {
	g := d.Level.GridSize
	if g <= 0 {
		return v
	}
	return math.Round(v/g) * g
}

// AddRect adds an obstacle spanning two corners snapped to the grid. A
// rectangle that collapses to zero area is rejected and returns -1.
func (d *Doc) AddRect(x0, y0, x1, y1, height float64) int {
	x0, x1 = d.snap(math.Min(x0, x1)), d.snap(math.Max(x0, x1))
	y0, y1 = d.snap(math.Min(y0, y1)), d.snap(math.Max(y0, y1))
	if x1-x0 <= 0 || y1-y0 <= 0 {
		return -1
	}
	d.snapshot()
	d.Level.Obstacles = append(d.Level.Obstacles, prefabs.ObstacleSpec{
		X:      (x0 + x1) / 2,
		Y:      (y0 + y1) / 2,
		W:      x1 - x0,
		H:      y1 - y0,
		Height: height,
	})
	return len(d.Level.Obstacles) - 1
}

// HitTest returns the index of the tallest obstacle under (x, y), later
// entries winning ties, or -1.
func (d *Doc) HitTest(x, y float64) int {
	best := -1
	for i, o := range d.Level.Obstacles {
		if x < o.X-o.W/2 || x > o.X+o.W/2 || y < o.Y-o.H/2 || y > o.Y+o.H/2 {
			continue
		}
		if best < 0 || o.Height >= d.Level.Obstacles[best].Height {
			best = i
		}
	}
	return best
}

func (d *Doc) SetHeight(i int, h float64) error {
	if i < 0 || i >= len(d.Level.Obstacles) {
		return fmt.Errorf("editor: no obstacle %d", i)
	}
	if h < 0 {
		return fmt.Errorf("editor: height %v is negative", h)
	}
	d.snapshot()
	d.Level.Obstacles[i].Height = h
	return nil
}

func (d *Doc) Remove(i int) error {
	if i < 0 || i >= len(d.Level.Obstacles) {
		return fmt.Errorf("editor: no obstacle %d", i)
	}
	d.snapshot()
	d.Level.Obstacles = append(d.Level.Obstacles[:i], d.Level.Obstacles[i+1:]...)
	return nil
}

func (d *Doc) SetSpawn(x, y float64) {
	d.Level.Spawn = levels.Point{
		X: math.Max(0, math.Min(x, d.Level.Width)),
		Y: math.Max(0, math.Min(y, d.Level.Height)),
	}
	d.Dirty = true
}

// Save validates the level by parsing the encoded bytes back, then writes
// them to path, or to the path the doc was opened from when path is empty.
func (d *Doc) Save(path string) error {
	if path == "" {
		path = d.Path
	}
	if path == "" {
		path = filepath.Join("levels", d.Level.Name+".json")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.Level); err != nil {
		return err
	}
	if _, err := levels.Parse(d.Level.Name, buf.Bytes()); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}
	d.Path = path
	d.Dirty = false
	return nil
}
