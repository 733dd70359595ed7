package light

import "math"

// LightBuilderOption is a functional option for configuring a Light.
// Use the With* functions to create options.
type LightBuilderOption func(*lightImpl)

// WithType sets the kind of light source.
//
// Parameters:
//   - t: the light type (directional or ambient)
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithType(t LightType) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightType = t
	}
}

// WithDirection sets the light direction. The vector is normalized before
// being stored; a zero vector is ignored.
//
// Parameters:
//   - x, y, z: direction components
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		length := float32(math.Sqrt(float64(x*x + y*y + z*z)))
		if length == 0 {
			return
		}
		l.direction = [3]float32{x / length, y / length, z / length}
	}
}

// WithColor sets the RGB color of the light.
//
// Parameters:
//   - r, g, b: color components in [0, 1]
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithIntensity sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}
