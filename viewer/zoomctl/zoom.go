package zoomctl

import (
	"sync"

	"github.com/Carmen-Shannon/gridspin/common"
)

// zoomImpl is the implementation of the Controller interface.
// The target distance moves immediately on input and is always clamped to
// [minZoom, maxZoom]; the current distance chases it with exponential
// smoothing so the camera never jumps.
type zoomImpl struct {
	mu *sync.Mutex

	targetDistance  float32
	currentDistance float32

	minZoom float32
	maxZoom float32

	zoomSpeed float32
	smoothing float32
}

// Controller maintains the camera's zoom distance: a clamped target driven by
// gesture deltas and a smoothed current value advanced once per frame.
type Controller interface {
	// ApplyDelta moves the target distance by delta * zoomSpeed and clamps it
	// to the configured bounds. Positive deltas increase distance.
	//
	// Parameters:
	//   - delta: signed wheel/pinch scalar
	ApplyDelta(delta float32)

	// Step advances the current distance toward the target by the smoothing
	// factor. Should be called once per frame.
	//
	// Returns:
	//   - float32: the new current distance
	Step() float32

	// TargetDistance returns the clamped target distance.
	//
	// Returns:
	//   - float32: the target distance
	TargetDistance() float32

	// CurrentDistance returns the smoothed current distance.
	//
	// Returns:
	//   - float32: the current distance
	CurrentDistance() float32
}

var _ Controller = &zoomImpl{}

// NewController creates a zoom Controller with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerOption) Controller {
	z := &zoomImpl{
		mu:              &sync.Mutex{},
		targetDistance:  10.0,
		currentDistance: 10.0,
		minZoom:         4.0,
		maxZoom:         25.0,
		zoomSpeed:       0.1,
		smoothing:       0.1,
	}
	for _, option := range options {
		option(z)
	}
	z.targetDistance = common.Clamp(z.targetDistance, z.minZoom, z.maxZoom)
	return z
}

func (z *zoomImpl) ApplyDelta(delta float32) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.targetDistance = common.Clamp(z.targetDistance+delta*z.zoomSpeed, z.minZoom, z.maxZoom)
}

func (z *zoomImpl) Step() float32 {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.currentDistance += (z.targetDistance - z.currentDistance) * z.smoothing
	return z.currentDistance
}

func (z *zoomImpl) TargetDistance() float32 {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.targetDistance
}

func (z *zoomImpl) CurrentDistance() float32 {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.currentDistance
}
