package orientation

import (
	"sync"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
)

// controllerImpl is the implementation of the Controller interface.
//
// The whole-grid orientation is a unit quaternion. Drag deltas and auto-spin
// increments both become small Euler rotations that are left-multiplied onto
// the accumulated orientation, so every increment rotates in world space and
// the drag feels camera-relative regardless of the current orientation.
//
// Residual drag velocity decays to zero through a critically damped spring
// after release, so a flick keeps the grid turning briefly before the steady
// auto-spin takes over.
type controllerImpl struct {
	mu *sync.Mutex

	q mgl32.Quat

	dragSpeed    float32
	autoSpinX    float32 // radians per frame about the X axis while idle
	autoSpinY    float32 // radians per frame about the Y axis while idle
	autoSpinning bool

	dragging bool

	// Residual drag velocity in radians per frame, animated toward zero by
	// the spring after the drag ends.
	velX, velY     float64
	accelX, accelY float64 // internal spring velocities
	velSpring      harmonica.Spring
}

// Controller maintains the whole-grid orientation, composing user drag
// rotation with continuous auto-rotation. Auto-spin is suppressed for the
// entire duration of a drag.
type Controller interface {
	// Orientation returns the current orientation quaternion. Always unit-norm.
	//
	// Returns:
	//   - mgl32.Quat: the accumulated orientation
	Orientation() mgl32.Quat

	// Dragging returns whether a drag is currently in progress.
	//
	// Returns:
	//   - bool: true while dragging
	Dragging() bool

	// BeginDrag marks the start of a drag, suspending auto-spin and clearing
	// any residual release velocity.
	BeginDrag()

	// DragBy applies a pixel-delta drag increment. The incremental rotation is
	// built from Euler angles (dy*dragSpeed, dx*dragSpeed, 0) and applied
	// before the prior orientation (world-space composition).
	//
	// Parameters:
	//   - dx: horizontal pixel delta
	//   - dy: vertical pixel delta
	DragBy(dx, dy float32)

	// EndDrag marks the end of a drag. The last drag increment carries on as
	// release velocity and decays through the spring.
	EndDrag()

	// Update advances one frame of idle motion: spring-decayed release
	// velocity plus the constant auto-spin increment. No-op while dragging.
	Update()
}

var _ Controller = &controllerImpl{}

// NewController creates an orientation Controller with identity orientation
// and sensible defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerOption) Controller {
	c := &controllerImpl{
		mu:           &sync.Mutex{},
		q:            mgl32.QuatIdent(),
		dragSpeed:    0.01,
		autoSpinX:    0.005,
		autoSpinY:    0.005,
		autoSpinning: true,
		// Damping ratio 1.0 = critically damped: the flick decays with no
		// oscillation back through zero.
		velSpring: harmonica.NewSpring(harmonica.FPS(60), 4.0, 1.0),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controllerImpl) Orientation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q
}

func (c *controllerImpl) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

func (c *controllerImpl) BeginDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = true
	c.velX, c.velY = 0, 0
	c.accelX, c.accelY = 0, 0
}

func (c *controllerImpl) DragBy(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		return
	}
	rx := dy * c.dragSpeed
	ry := dx * c.dragSpeed
	c.compose(rx, ry)
	c.velX = float64(rx)
	c.velY = float64(ry)
}

func (c *controllerImpl) EndDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = false
}

func (c *controllerImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging {
		return
	}

	c.velX, c.accelX = c.velSpring.Update(c.velX, c.accelX, 0)
	c.velY, c.accelY = c.velSpring.Update(c.velY, c.accelY, 0)

	rx := float32(c.velX)
	ry := float32(c.velY)
	if c.autoSpinning {
		rx += c.autoSpinX
		ry += c.autoSpinY
	}
	c.compose(rx, ry)
}

// compose left-multiplies an incremental Euler rotation onto the accumulated
// orientation and renormalizes to keep the quaternion unit-length.
// Caller must hold the mutex.
func (c *controllerImpl) compose(rx, ry float32) {
	delta := mgl32.AnglesToQuat(rx, ry, 0, mgl32.XYZ)
	c.q = delta.Mul(c.q).Normalize()
}
