package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/heighthop/ecs/component"
)

var images = map[string]*ebiten.Image{}

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

// SpriteImage returns the generated image for a sprite, building and
// caching it on first use. Sprites with the same shape, size and color
// share one image.
func SpriteImage(s *component.Sprite) *ebiten.Image {
	if s == nil {
		return nil
	}
	key := spriteKey(s)
	if img := GetImage(key); img != nil {
		return img
	}

	var img *ebiten.Image
	switch s.Shape {
	case component.SpriteCircle:
		img = newCircleImage(s.Radius, s.Color)
	default:
		img = newRectImage(s.Width, s.Height, s.Color)
	}
	RegisterImage(key, img)
	return img
}

func spriteKey(s *component.Sprite) string {
	c := s.Color
	switch s.Shape {
	case component.SpriteCircle:
		return fmt.Sprintf("circle:%g:%02x%02x%02x%02x", s.Radius, c.R, c.G, c.B, c.A)
	default:
		return fmt.Sprintf("rect:%gx%g:%02x%02x%02x%02x", s.Width, s.Height, c.R, c.G, c.B, c.A)
	}
}
