package light

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Affects all fragments uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypeAmbient represents a constant base illumination applied to every
	// fragment regardless of surface orientation.
	LightTypeAmbient
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	direction [3]float32
	color     [3]float32
	intensity float32
	enabled   bool
}

// Light defines the interface for a light source in the scene.
//
// Lights are scene-level entities marshaled into the per-frame shading
// uniform. Type-specific properties (e.g. direction for directional lights)
// return zero values when not applicable.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional or ambient)
	Type() LightType

	// Direction returns the normalized direction of the light.
	// Meaningless for ambient lights.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled returns whether the light contributes to shading.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the light contributes to shading.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light with the provided options.
// Defaults to an enabled white directional light pointing straight down.
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: LightTypeDirectional,
		direction: [3]float32{0, -1, 0},
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
		enabled:   true,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
