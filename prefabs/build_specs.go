package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// PlayerComponentSpec tunes the movement integrator. Zero values fall back
// to the motion package defaults.
type PlayerComponentSpec struct {
	Acceleration float64 `yaml:"acceleration"`
	Drag         float64 `yaml:"drag"`
	MaxSpeed     float64 `yaml:"max_speed"`
}

// HeightComponentSpec tunes the height state. Pointer fields distinguish
// an explicit zero from an omitted value.
type HeightComponentSpec struct {
	AdjustRate     *float64 `yaml:"adjust_rate"`
	JumpRise       *float64 `yaml:"jump_rise"`
	JumpDurationMS *float64 `yaml:"jump_duration_ms"`
	PassMargin     *float64 `yaml:"pass_margin"`
	ScaleFactor    *float64 `yaml:"scale_factor"`
	BaseScale      *float64 `yaml:"base_scale"`
	MaxHeight      *float64 `yaml:"max_height"`
	StartHeight    float64  `yaml:"start_height"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Shape   string     `yaml:"shape"`
	Width   float64    `yaml:"width"`
	Height  float64    `yaml:"height"`
	Radius  float64    `yaml:"radius"`
	Color   *YAMLColor `yaml:"color"`
	OriginX float64    `yaml:"origin_x"`
	OriginY float64    `yaml:"origin_y"`
	Label   string     `yaml:"label"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type PhysicsBodyComponentSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
}

// ObstacleComponentSpec is the height tag of an obstacle. Extents come
// from the level, not the prefab.
type ObstacleComponentSpec struct {
	Height float64 `yaml:"height"`
}
