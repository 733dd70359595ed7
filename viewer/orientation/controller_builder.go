package orientation

import "github.com/charmbracelet/harmonica"

// ControllerOption is a functional option for configuring an orientation
// Controller.
type ControllerOption func(*controllerImpl)

// WithDragSpeed sets the radians-per-pixel multiplier for drag deltas.
//
// Parameters:
//   - speed: multiplier applied to pixel deltas
//
// Returns:
//   - ControllerOption: option function to apply
func WithDragSpeed(speed float32) ControllerOption {
	return func(c *controllerImpl) {
		c.dragSpeed = speed
	}
}

// WithAutoSpin sets the per-frame auto-rotation increments about the X and Y
// axes applied while no drag is active.
//
// Parameters:
//   - x: radians per frame about the X axis
//   - y: radians per frame about the Y axis
//
// Returns:
//   - ControllerOption: option function to apply
func WithAutoSpin(x, y float32) ControllerOption {
	return func(c *controllerImpl) {
		c.autoSpinX = x
		c.autoSpinY = y
	}
}

// WithAutoSpinEnabled enables or disables the idle auto-spin entirely.
// Release-velocity decay is unaffected.
//
// Parameters:
//   - enabled: true to auto-spin while idle
//
// Returns:
//   - ControllerOption: option function to apply
func WithAutoSpinEnabled(enabled bool) ControllerOption {
	return func(c *controllerImpl) {
		c.autoSpinning = enabled
	}
}

// WithReleaseSpring replaces the spring that decays release velocity.
// Useful for tuning flick feel to a different frame rate or stiffness.
//
// Parameters:
//   - spring: the spring to use
//
// Returns:
//   - ControllerOption: option function to apply
func WithReleaseSpring(spring harmonica.Spring) ControllerOption {
	return func(c *controllerImpl) {
		c.velSpring = spring
	}
}
