// Package assets synthesizes the game's sound effects. There are no audio
// files; every effect is a short generated tone.
package assets

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// Context returns the shared audio context. ebiten allows only one per
// process, so it is created on first use.
func Context() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// Tone returns 16-bit stereo little-endian PCM for a sine sweep from f0 to
// f1 Hz that fades out linearly over d.
func Tone(f0, f1 float64, d time.Duration, volume float64) []byte {
	n := int(d.Seconds() * SampleRate)
	if n <= 0 {
		return nil
	}
	volume = math.Min(math.Max(volume, 0), 1)
	out := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := f0 + (f1-f0)*t
		phase += 2 * math.Pi * freq / SampleRate
		v := int16(math.Sin(phase) * (1 - t) * volume * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}

type Sound int

const (
	SoundJump Sound = iota
	SoundLand
	SoundBlocked
)

// Sounds holds the generated effects.
type Sounds struct {
	pcm   map[Sound][]byte
	Muted bool
}

func NewSounds() *Sounds {
	return &Sounds{pcm: map[Sound][]byte{
		SoundJump:    Tone(330, 660, 120*time.Millisecond, 0.25),
		SoundLand:    Tone(220, 110, 90*time.Millisecond, 0.3),
		SoundBlocked: Tone(90, 70, 60*time.Millisecond, 0.3),
	}}
}

// Play starts the effect and returns immediately.
func (s *Sounds) Play(sound Sound) {
	if s == nil || s.Muted {
		return
	}
	pcm, ok := s.pcm[sound]
	if !ok || len(pcm) == 0 {
		return
	}
	p := Context().NewPlayerFromBytes(pcm)
	p.Play()
}
