// Package levels loads obstacle layouts. A level lists its obstacles
// directly, generates them with a layout script, or both.
package levels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"

	"github.com/milk9111/heighthop/height"
	"github.com/milk9111/heighthop/prefabs"
)

var ErrInvalidLevel = errors.New("levels: invalid level")

const DefaultGridSize = 50.0

type Level struct {
	Name       string                 `json:"name"`
	Width      float64                `json:"width"`
	Height     float64                `json:"height"`
	Spawn      Point                  `json:"spawn"`
	Background string                 `json:"background,omitempty"`
	GridSize   float64                `json:"grid_size,omitempty"`
	Obstacles  []prefabs.ObstacleSpec `json:"obstacles,omitempty"`
	Script     string                 `json:"script,omitempty"`
	Params     map[string]any         `json:"params,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Load reads and validates a level by name, e.g. "default".
func Load(name string) (*Level, error) {
	data, err := read(name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(name, data)
}

func Parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = name
	}
	if lvl.GridSize <= 0 {
		lvl.GridSize = DefaultGridSize
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if !(l.Width > 0) || !(l.Height > 0) {
		return fmt.Errorf("%w: %s: size %vx%v", ErrInvalidLevel, l.Name, l.Width, l.Height)
	}
	if l.Spawn.X < 0 || l.Spawn.X > l.Width || l.Spawn.Y < 0 || l.Spawn.Y > l.Height {
		return fmt.Errorf("%w: %s: spawn (%v, %v) outside level", ErrInvalidLevel, l.Name, l.Spawn.X, l.Spawn.Y)
	}
	if l.Background != "" {
		if _, err := prefabs.ParseColor(l.Background); err != nil {
			return fmt.Errorf("%w: %s: background: %v", ErrInvalidLevel, l.Name, err)
		}
	}
	if len(l.Obstacles) == 0 && l.Script == "" {
		return fmt.Errorf("%w: %s: no obstacles and no script", ErrInvalidLevel, l.Name)
	}
	for i, o := range l.Obstacles {
		if _, err := height.NewObstacle(uint64(i+1), o.X, o.Y, o.W, o.H, o.Height); err != nil {
			return fmt.Errorf("levels: %s: obstacle %d: %w", l.Name, i, err)
		}
	}
	return nil
}

// BackgroundColor returns the parsed background, white when unset.
func (l *Level) BackgroundColor() color.NRGBA {
	if c, err := prefabs.ParseColor(l.Background); err == nil {
		return c
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}

// ResolveObstacles returns the listed obstacles followed by the scripted
// ones. Every obstacle is validated; errors name its index in the result.
func (l *Level) ResolveObstacles(ctx context.Context) ([]prefabs.ObstacleSpec, error) {
	out := make([]prefabs.ObstacleSpec, 0, len(l.Obstacles))
	out = append(out, l.Obstacles...)
	if l.Script != "" {
		scripted, err := prefabs.RunLayoutScript(ctx, l.Script, l.Params)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", l.Name, err)
		}
		out = append(out, scripted...)
	}
	for i, o := range out {
		if _, err := height.NewObstacle(uint64(i+1), o.X, o.Y, o.W, o.H, o.Height); err != nil {
			return nil, fmt.Errorf("levels: %s: obstacle %d: %w", l.Name, i, err)
		}
	}
	return out, nil
}
