package scene

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/gridspin/viewer/light"
	"github.com/Carmen-Shannon/gridspin/viewer/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// sceneImpl is the implementation of the Scene interface.
//
// The scene owns the animation state the renderer consumes each frame: one
// whole-grid orientation quaternion plus one Y-axis angle per layer. A cube's
// model matrix is orientation * layerRotation * translation, so the layer
// turn happens in grid-local space and the whole stack then rotates together.
//
// Transform rebuilds are split across the compute pool with one task per
// layer. A WaitGroup provides the per-frame barrier; workers are reused
// across frames.
type sceneImpl struct {
	mu *sync.Mutex

	grid *Grid

	faceMesh mesh.Mesh
	edgeMesh mesh.Mesh
	lights   []light.Light

	orientation mgl32.Quat
	layerAngles []float32

	transforms []mgl32.Mat4
	dirty      bool

	computeWorkers int
	computePool    worker.DynamicWorkerPool
}

// Scene is the renderable model of the cube grid: immutable geometry plus the
// per-frame orientation and layer-angle state, flattened into per-cube model
// matrices on demand.
type Scene interface {
	// Grid returns the underlying immutable grid.
	//
	// Returns:
	//   - *Grid: the grid
	Grid() *Grid

	// FaceMesh returns the shared filled-face cube mesh.
	//
	// Returns:
	//   - mesh.Mesh: the face mesh
	FaceMesh() mesh.Mesh

	// EdgeMesh returns the shared wireframe-outline cube mesh.
	//
	// Returns:
	//   - mesh.Mesh: the edge mesh
	EdgeMesh() mesh.Mesh

	// Lights returns the scene lights.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// SetOrientation replaces the whole-grid orientation.
	//
	// Parameters:
	//   - q: the orientation quaternion
	SetOrientation(q mgl32.Quat)

	// Orientation returns the whole-grid orientation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation quaternion
	Orientation() mgl32.Quat

	// LayerCount returns the number of horizontal layers.
	//
	// Returns:
	//   - int: the layer count
	LayerCount() int

	// SetLayerAngle sets one layer's rotation about the vertical axis. Other
	// layers are untouched.
	//
	// Parameters:
	//   - index: the layer index
	//   - radians: the absolute rotation angle
	SetLayerAngle(index int, radians float32)

	// LayerAngle returns one layer's current rotation angle.
	//
	// Parameters:
	//   - index: the layer index
	//
	// Returns:
	//   - float32: the angle in radians
	LayerAngle(index int) float32

	// Transforms returns the per-cube model matrices, rebuilding them in
	// parallel if orientation or layer angles changed since the last call.
	// The returned slice is owned by the scene and valid until the next call.
	//
	// Returns:
	//   - []mgl32.Mat4: one model matrix per cube
	Transforms() []mgl32.Mat4

	// PickScreen casts a ray through the given screen position and reports
	// whether it hits any cube in its current transform.
	//
	// Parameters:
	//   - px, py: screen position in pixels, origin top-left
	//   - width, height: viewport size in pixels
	//   - viewProj: the camera's combined view-projection matrix
	//
	// Returns:
	//   - bool: true if the ray intersects a cube
	PickScreen(px, py, width, height float32, viewProj mgl32.Mat4) bool
}

var _ Scene = &sceneImpl{}

// NewScene creates a Scene over the given grid with shared face and edge
// meshes and default lighting.
//
// Parameters:
//   - grid: the cube grid to animate
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(grid *Grid, options ...SceneOption) Scene {
	s := &sceneImpl{
		mu:             &sync.Mutex{},
		grid:           grid,
		faceMesh:       mesh.BuildCubeFaces(grid.CubeSize(), [4]float32{0.28, 0.56, 0.9, 1.0}),
		edgeMesh:       mesh.BuildCubeEdges(grid.CubeSize(), [4]float32{0.05, 0.05, 0.08, 1.0}),
		orientation:    mgl32.QuatIdent(),
		layerAngles:    make([]float32, grid.LayerCount()),
		transforms:     make([]mgl32.Mat4, grid.CubeCount()),
		dirty:          true,
		computeWorkers: grid.LayerCount(),
	}
	for _, option := range options {
		option(s)
	}
	if len(s.lights) == 0 {
		s.lights = []light.Light{
			light.NewLight(
				light.WithType(light.LightTypeDirectional),
				light.WithDirection(-0.5, -1.0, -0.3),
				light.WithIntensity(0.8),
			),
			light.NewLight(
				light.WithType(light.LightTypeAmbient),
				light.WithIntensity(0.35),
			),
		}
	}
	// Queue size of 64 is ample for one task per layer with headroom.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 64, 1*time.Second)
	return s
}

func (s *sceneImpl) Grid() *Grid {
	return s.grid
}

func (s *sceneImpl) FaceMesh() mesh.Mesh {
	return s.faceMesh
}

func (s *sceneImpl) EdgeMesh() mesh.Mesh {
	return s.edgeMesh
}

func (s *sceneImpl) Lights() []light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lights
}

func (s *sceneImpl) SetOrientation(q mgl32.Quat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orientation = q
	s.dirty = true
}

func (s *sceneImpl) Orientation() mgl32.Quat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orientation
}

func (s *sceneImpl) LayerCount() int {
	return s.grid.LayerCount()
}

func (s *sceneImpl) SetLayerAngle(index int, radians float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.layerAngles) {
		return
	}
	s.layerAngles[index] = radians
	s.dirty = true
}

func (s *sceneImpl) LayerAngle(index int) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.layerAngles) {
		return 0
	}
	return s.layerAngles[index]
}

func (s *sceneImpl) Transforms() []mgl32.Mat4 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		s.rebuildTransforms()
		s.dirty = false
	}
	return s.transforms
}

// rebuildTransforms recomputes every cube's model matrix, one pool task per
// layer. Caller must hold the mutex.
func (s *sceneImpl) rebuildTransforms() {
	orient := s.orientation.Mat4()

	var wg sync.WaitGroup
	for layer := 0; layer < s.grid.LayerCount(); layer++ {
		wg.Add(1)
		layerCap := layer
		rotation := orient.Mul4(mgl32.HomogRotate3DY(s.layerAngles[layer]))
		s.computePool.SubmitTask(worker.Task{
			ID: layerCap,
			Do: func() (any, error) {
				defer wg.Done()
				for _, idx := range s.grid.LayerCubes(layerCap) {
					pos := s.grid.Cube(idx).Position
					s.transforms[idx] = rotation.Mul4(mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()))
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}
