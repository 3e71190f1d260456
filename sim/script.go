package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/heighthop/ecs/system"
)

var actionNames = map[string]system.Action{
	"left":  system.ActionLeft,
	"right": system.ActionRight,
	"up":    system.ActionUp,
	"down":  system.ActionDown,
	"jump":  system.ActionJump,
}

// Segment holds a set of actions for a number of ticks.
type Segment struct {
	Actions map[system.Action]bool
	Ticks   int
}

// ParseScript parses input such as "right*30,right+jump,idle*60". Each
// comma-separated segment names actions joined by "+" ("idle" for none)
// and an optional tick count after "*", default 1.
func ParseScript(src string) ([]Segment, error) {
	var out []Segment
	for i, part := range strings.Split(src, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		seg := Segment{Actions: map[system.Action]bool{}, Ticks: 1}
		names := part
		if idx := strings.IndexByte(part, '*'); idx >= 0 {
			names = part[:idx]
			n, err := strconv.Atoi(strings.TrimSpace(part[idx+1:]))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("sim: script segment %d: bad tick count in %q", i, part)
			}
			seg.Ticks = n
		}
		for _, name := range strings.Split(names, "+") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "idle" || name == "" {
				continue
			}
			a, ok := actionNames[name]
			if !ok {
				return nil, fmt.Errorf("sim: script segment %d: unknown action %q", i, name)
			}
			seg.Actions[a] = true
		}
		out = append(out, seg)
	}
	return out, nil
}

// ScriptedKeys replays parsed segments as a system.KeySource. Call Advance
// once per tick after the input system has read it.
type ScriptedKeys struct {
	segments []Segment
	seg      int
	tick     int
	prev     map[system.Action]bool
}

func NewScriptedKeys(segments []Segment) *ScriptedKeys {
	return &ScriptedKeys{segments: segments}
}

func (k *ScriptedKeys) current() map[system.Action]bool {
	if k.seg >= len(k.segments) {
		return nil
	}
	return k.segments[k.seg].Actions
}

func (k *ScriptedKeys) Pressed(a system.Action) bool {
	return k.current()[a]
}

// JustPressed is true on the first tick an action is held after a tick in
// which it was not.
func (k *ScriptedKeys) JustPressed(a system.Action) bool {
	return k.current()[a] && !k.prev[a]
}

func (k *ScriptedKeys) Stick() (float64, float64) {
	return 0, 0
}

func (k *ScriptedKeys) Advance() {
	k.prev = k.current()
	if k.seg >= len(k.segments) {
		return
	}
	k.tick++
	if k.tick >= k.segments[k.seg].Ticks {
		k.seg++
		k.tick = 0
	}
}

// Done reports whether every segment has been replayed.
func (k *ScriptedKeys) Done() bool {
	return k.seg >= len(k.segments)
}

// Ticks is the total length of the script.
func (k *ScriptedKeys) Ticks() int {
	n := 0
	for _, s := range k.segments {
		n += s.Ticks
	}
	return n
}
