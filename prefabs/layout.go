package prefabs

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ObstacleSpec is one rectangle of a level layout. X and Y are its center.
type ObstacleSpec struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	W      float64 `json:"w" yaml:"w"`
	H      float64 `json:"h" yaml:"h"`
	Height float64 `json:"height" yaml:"height"`
}

var ErrNoLayout = errors.New("prefabs: script does not define obstacles")

const layoutTimeout = time.Second

// layoutModules are the stdlib modules a layout script may import. Scripts
// only compute geometry, so nothing touching the OS is exposed.
var layoutModules = []string{"math", "text", "enum", "rand"}

// RunLayoutScript runs a tengo script from prefabs/scripts and returns the
// obstacles it leaves in its global "obstacles" array. params is exposed to
// the script as the global "params" map.
func RunLayoutScript(ctx context.Context, name string, params map[string]any) ([]ObstacleSpec, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	return runLayout(ctx, name, src, params)
}

func runLayout(ctx context.Context, name string, src []byte, params map[string]any) ([]ObstacleSpec, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, layoutTimeout)
		defer cancel()
	}
	params = integralParams(params)

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(layoutModules...))
	if err := script.Add("params", params); err != nil {
		return nil, fmt.Errorf("prefabs: script %s: params: %w", name, err)
	}

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("prefabs: run script %s: %w", name, err)
	}

	v := compiled.Get("obstacles")
	if v == nil || v.IsUndefined() {
		return nil, fmt.Errorf("%w: %s", ErrNoLayout, name)
	}
	items, ok := v.Value().([]any)
	if !ok {
		return nil, fmt.Errorf("prefabs: script %s: 'obstacles' must be an array", name)
	}

	out := make([]ObstacleSpec, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("prefabs: script %s: obstacle %d must be a map", name, i)
		}
		var spec ObstacleSpec
		fields := []struct {
			key string
			dst *float64
		}{
			{"x", &spec.X}, {"y", &spec.Y}, {"w", &spec.W}, {"h", &spec.H}, {"height", &spec.Height},
		}
		for _, f := range fields {
			n, ok := toFloat(m[f.key])
			if !ok {
				return nil, fmt.Errorf("prefabs: script %s: obstacle %d: %q must be a number", name, i, f.key)
			}
			*f.dst = n
		}
		out = append(out, spec)
	}
	return out, nil
}

// integralParams converts whole floats to ints so scripts can use them with
// integer-only operators such as %. JSON decodes every number as float64.
func integralParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			out[k] = int64(f)
			continue
		}
		out[k] = v
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
