package zoomctl

// ControllerOption is a functional option for configuring a zoom Controller.
type ControllerOption func(*zoomImpl)

// WithDistance sets the initial target and current distance.
//
// Parameters:
//   - distance: starting distance from the target
//
// Returns:
//   - ControllerOption: option function to apply
func WithDistance(distance float32) ControllerOption {
	return func(z *zoomImpl) {
		z.targetDistance = distance
		z.currentDistance = distance
	}
}

// WithBounds sets the minimum and maximum zoom distance.
//
// Parameters:
//   - min: minimum distance
//   - max: maximum distance
//
// Returns:
//   - ControllerOption: option function to apply
func WithBounds(min, max float32) ControllerOption {
	return func(z *zoomImpl) {
		z.minZoom = min
		z.maxZoom = max
	}
}

// WithZoomSpeed sets the multiplier applied to gesture deltas.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - ControllerOption: option function to apply
func WithZoomSpeed(speed float32) ControllerOption {
	return func(z *zoomImpl) {
		z.zoomSpeed = speed
	}
}

// WithSmoothing sets the per-frame interpolation factor toward the target.
// Values in (0, 1]; 1 snaps immediately.
//
// Parameters:
//   - factor: the smoothing factor
//
// Returns:
//   - ControllerOption: option function to apply
func WithSmoothing(factor float32) ControllerOption {
	return func(z *zoomImpl) {
		z.smoothing = factor
	}
}
