package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/gridspin/common"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraImpl is the implementation of the Camera interface.
// The camera looks at a fixed target from a fixed home direction; zoom only
// scales the distance along that direction, never the viewing direction
// itself. Orientation changes are applied to the grid, not the camera.
type cameraImpl struct {
	mu *sync.Mutex

	homeDirection mgl32.Vec3 // unit vector from target toward the eye
	distance      float32
	target        mgl32.Vec3
	up            mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera holds perspective settings and computes view/projection matrices
// from a distance-driven eye position. The eye is always
// homeDirection * distance relative to the target.
type Camera interface {
	// Position returns the current eye position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// Distance returns the current distance from the target.
	//
	// Returns:
	//   - float32: distance along the home direction
	Distance() float32

	// SetDistance moves the eye along the home direction and recomputes matrices.
	//
	// Parameters:
	//   - distance: new distance from the target
	SetDistance(distance float32)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect sets the aspect ratio and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major)
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined view-projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: projection * view (column-major)
	ViewProjectionMatrix() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings, looking
// from (6, 6, 6) toward the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	eye := mgl32.Vec3{6, 6, 6}
	c := &cameraImpl{
		mu:            &sync.Mutex{},
		homeDirection: eye.Normalize(),
		distance:      eye.Len(),
		target:        mgl32.Vec3{0, 0, 0},
		up:            mgl32.Vec3{0, 1, 0},
		fov:           45.0 * (math.Pi / 180.0),
		aspect:        1.0,
		near:          0.1,
		far:           100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target.Add(c.homeDirection.Mul(c.distance))
}

func (c *cameraImpl) Distance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distance
}

func (c *cameraImpl) SetDistance(distance float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.distance = distance
	c.updateMatrices()
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

// updateMatrices recalculates the view, projection, and view-projection
// matrices from the current distance and perspective settings.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	eye := c.target.Add(c.homeDirection.Mul(c.distance))
	c.viewMatrix = mgl32.LookAtV(eye, c.target, c.up)
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
