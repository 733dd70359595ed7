package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/gridspin/common"
	"github.com/Carmen-Shannon/gridspin/viewer/light"
	"github.com/Carmen-Shannon/gridspin/viewer/scene"
	"github.com/Carmen-Shannon/gridspin/viewer/window"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameState is everything the renderer needs to draw one frame: the camera
// matrix, the per-cube model matrices, and the lighting parameters.
type FrameState struct {
	ViewProj   mgl32.Mat4
	Transforms []mgl32.Mat4

	LightDirection mgl32.Vec3
	LightColor     mgl32.Vec3
	LightIntensity float32

	AmbientColor     mgl32.Vec3
	AmbientIntensity float32
}

// frameUniforms mirrors the FrameUniforms WGSL struct byte-for-byte.
// Intensity rides in the w component of the respective color vector.
type frameUniforms struct {
	ViewProj   [16]float32
	LightDir   [4]float32
	LightColor [4]float32
	Ambient    [4]float32
}

// rendererImpl is the implementation of the Renderer interface.
type rendererImpl struct {
	mu *sync.Mutex

	backend RendererBackend

	instanceCount uint32

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer is the rendering surface for the cube grid.
//
// This is a high-level API that hides the GPU plumbing behind three calls:
// upload the grid geometry once, then render a FrameState per tick, and
// dispose at teardown. The Renderer implements a backend which allows for
// multiple backend API implementations to exist.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// InitGridResources creates the render pipelines and uploads the scene's
	// face and edge meshes plus the per-instance buffers. Must be called once
	// before the first RenderFrame.
	//
	// Parameters:
	//   - s: the scene whose geometry to upload
	//
	// Returns:
	//   - error: an error if pipeline or buffer creation fails
	InitGridResources(s scene.Scene) error

	// RenderFrame uploads the frame uniforms and model matrices, then encodes
	// and presents one complete frame.
	//
	// Parameters:
	//   - state: the frame to draw
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	RenderFrame(state FrameState) error

	// Dispose releases all GPU resources. Safe to call more than once and
	// safe to call if InitGridResources never ran.
	Dispose()
}

var _ Renderer = &rendererImpl{}

// NewRenderer creates a new Renderer targeting the given window's surface.
//
// Parameters:
//   - win: the window providing the platform surface descriptor and size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the given options
func NewRenderer(win window.Window, options ...RendererBuilderOption) Renderer {
	r := &rendererImpl{
		mu: &sync.Mutex{},
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(win.Width(), win.Height())
	return r
}

func (r *rendererImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *rendererImpl) InitGridResources(s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.RegisterGridPipelines(); err != nil {
		return fmt.Errorf("failed to register grid pipelines: %w", err)
	}

	face := s.FaceMesh()
	edge := s.EdgeMesh()
	capacity := s.Grid().CubeCount()
	if err := r.backend.InitGridBuffers(
		face.VertexData(), face.IndexData(), face.IndexCount(),
		edge.VertexData(), edge.IndexData(), edge.IndexCount(),
		capacity,
	); err != nil {
		return fmt.Errorf("failed to init grid buffers: %w", err)
	}

	r.instanceCount = uint32(capacity)
	return nil
}

func (r *rendererImpl) RenderFrame(state FrameState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	uniforms := frameUniforms{
		ViewProj: state.ViewProj,
		LightDir: [4]float32{
			state.LightDirection.X(), state.LightDirection.Y(), state.LightDirection.Z(), 0,
		},
		LightColor: [4]float32{
			state.LightColor.X(), state.LightColor.Y(), state.LightColor.Z(), state.LightIntensity,
		},
		Ambient: [4]float32{
			state.AmbientColor.X(), state.AmbientColor.Y(), state.AmbientColor.Z(), state.AmbientIntensity,
		},
	}
	r.backend.WriteFrameUniforms(common.StructToBytes(&uniforms))
	r.backend.WriteTransforms(common.SliceToBytes(state.Transforms))

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.backend.DrawGrid(r.instanceCount)
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *rendererImpl) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}

// FrameLighting resolves the renderer's lighting inputs from the scene's
// light rig: the first enabled directional light and the first enabled
// ambient light win.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - mgl32.Vec3: directional light direction
//   - mgl32.Vec3: directional light color
//   - float32: directional light intensity
//   - mgl32.Vec3: ambient color
//   - float32: ambient intensity
func FrameLighting(lights []light.Light) (mgl32.Vec3, mgl32.Vec3, float32, mgl32.Vec3, float32) {
	dir := mgl32.Vec3{0, -1, 0}
	dirColor := mgl32.Vec3{1, 1, 1}
	dirIntensity := float32(0)
	ambColor := mgl32.Vec3{1, 1, 1}
	ambIntensity := float32(0)

	haveDir, haveAmb := false, false
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		switch l.Type() {
		case light.LightTypeDirectional:
			if !haveDir {
				d := l.Direction()
				dir = mgl32.Vec3{d[0], d[1], d[2]}
				c := l.Color()
				dirColor = mgl32.Vec3{c[0], c[1], c[2]}
				dirIntensity = l.Intensity()
				haveDir = true
			}
		case light.LightTypeAmbient:
			if !haveAmb {
				c := l.Color()
				ambColor = mgl32.Vec3{c[0], c[1], c[2]}
				ambIntensity = l.Intensity()
				haveAmb = true
			}
		}
	}
	return dir, dirColor, dirIntensity, ambColor, ambIntensity
}
