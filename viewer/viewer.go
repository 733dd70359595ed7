package viewer

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/gridspin/viewer/camera"
	"github.com/Carmen-Shannon/gridspin/viewer/input"
	"github.com/Carmen-Shannon/gridspin/viewer/layercycle"
	"github.com/Carmen-Shannon/gridspin/viewer/orientation"
	"github.com/Carmen-Shannon/gridspin/viewer/profiler"
	"github.com/Carmen-Shannon/gridspin/viewer/renderer"
	"github.com/Carmen-Shannon/gridspin/viewer/scene"
	"github.com/Carmen-Shannon/gridspin/viewer/window"
	"github.com/Carmen-Shannon/gridspin/viewer/zoomctl"
)

// viewerImpl is the implementation of the Viewer interface.
//
// All logic runs on the window's message loop thread: input callbacks and the
// per-iteration tick are both dispatched from ProcessMessages, so a gesture
// processed before a tick is always visible to that tick. Component-level
// locks exist because tests drive components directly, not because the viewer
// itself is concurrent.
type viewerImpl struct {
	mu *sync.Mutex

	win  window.Window
	rend renderer.Renderer
	cam  camera.Camera
	scn  scene.Scene

	orient   orientation.Controller
	sched    layercycle.Scheduler
	zoom     zoomctl.Controller
	gestures input.Translator

	prof             *profiler.Profiler
	profilingEnabled bool

	wheelStep float32

	hovering bool
	failed   bool
	closed   bool

	closeOnce sync.Once

	// Pre-creation config collected from builder options
	windowOptions    []window.WindowBuilderOption
	rendererOptions  []renderer.RendererBuilderOption
	orientOptions    []orientation.ControllerOption
	schedulerOptions []layercycle.SchedulerOption
	zoomOptions      []zoomctl.ControllerOption
}

// Viewer is the interactive cube-grid session: it owns the window, the GPU
// renderer, and the animation controllers, and drives one tick per message
// loop iteration until the window closes.
type Viewer interface {
	// Run blocks on the window message loop, ticking once per iteration,
	// until the window closes. Teardown runs before Run returns.
	Run()

	// Step advances the session by one tick at the given time: orientation
	// update, layer-turn scheduling, zoom smoothing, camera reposition, and a
	// rendered frame, in that order. No-op once the session is closed or a
	// prior tick panicked.
	//
	// Parameters:
	//   - now: the current time
	Step(now time.Time)

	// Hovering returns whether the pointer was over a cube at its last move.
	//
	// Returns:
	//   - bool: true if hovering over a cube
	Hovering() bool

	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the underlying scene.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Close tears the session down: input callbacks are removed, GPU
	// resources released, and the window closed. Safe to call multiple times
	// and safe to call if setup partially failed.
	//
	// Returns:
	//   - error: error from closing the window, if any
	Close() error
}

var _ Viewer = &viewerImpl{}

// NewViewer creates a Viewer with a window, GPU renderer, and the full set of
// animation controllers wired to input.
//
// Parameters:
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the newly created viewer
//   - error: an error if GPU resource setup fails
func NewViewer(options ...ViewerBuilderOption) (Viewer, error) {
	v := &viewerImpl{
		mu:        &sync.Mutex{},
		prof:      profiler.NewProfiler(),
		wheelStep: 30.0,
	}
	for _, option := range options {
		option(v)
	}

	v.win = window.NewWindow(v.windowOptions...)
	v.rend = renderer.NewRenderer(v.win, v.rendererOptions...)

	if err := v.wire(); err != nil {
		return nil, err
	}
	return v, nil
}

// wire builds the scene, controllers, and input plumbing over the already
// attached window and renderer, then uploads the grid's GPU resources.
func (v *viewerImpl) wire() error {
	grid := scene.BuildGrid(3, 0.9, 0.1)
	v.scn = scene.NewScene(grid)

	v.orient = orientation.NewController(v.orientOptions...)
	v.sched = layercycle.NewScheduler(v.scn, v.schedulerOptions...)
	v.zoom = zoomctl.NewController(v.zoomOptions...)

	v.cam = camera.NewCamera(
		camera.WithEye(6, 6, 6),
		camera.WithAspect(float32(v.win.Width())/float32(v.win.Height())),
	)
	v.cam.SetDistance(v.zoom.CurrentDistance())

	v.gestures = input.NewTranslator(
		input.WithDragCallbacks(v.orient.BeginDrag, func(dx, dy float32) {
			v.orient.DragBy(dx, dy)
		}, v.orient.EndDrag),
		input.WithZoomCallback(v.zoom.ApplyDelta),
		input.WithHoverCallback(v.updateHover),
	)

	v.win.SetMouseDownCallback(func(x, y float32) {
		v.gestures.PointerDown(x, y)
	})
	v.win.SetMouseUpCallback(func(x, y float32) {
		v.gestures.PointerUp()
	})
	v.win.SetMouseMoveCallback(func(x, y float32) {
		v.gestures.PointerMove(x, y)
	})
	v.win.SetScrollCallback(func(delta float32) {
		// Scroll up means zoom in, which shrinks the camera distance.
		v.gestures.Wheel(-delta * v.wheelStep)
	})
	v.win.SetResizeCallback(func(width, height int) {
		v.rend.Resize(width, height)
		if height > 0 {
			v.cam.SetAspect(float32(width) / float32(height))
		}
	})

	if err := v.rend.InitGridResources(v.scn); err != nil {
		_ = v.Close()
		return fmt.Errorf("failed to init viewer GPU resources: %w", err)
	}

	return nil
}

func (v *viewerImpl) Run() {
	v.win.SetUpdateCallback(func() {
		v.Step(time.Now())
	})
	v.win.ProcessMessages()
	_ = v.Close()
}

func (v *viewerImpl) Step(now time.Time) {
	v.mu.Lock()
	if v.closed || v.failed {
		v.mu.Unlock()
		return
	}
	profiling := v.profilingEnabled
	v.mu.Unlock()

	// A panic anywhere in the tick marks the session failed so later ticks
	// short-circuit instead of re-panicking against torn state.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Viewer] tick recovered from panic: %v", r)
			v.mu.Lock()
			v.failed = true
			v.mu.Unlock()
		}
	}()

	if profiling {
		v.prof.BeginTick()
	}

	v.orient.Update()
	v.scn.SetOrientation(v.orient.Orientation())

	v.sched.Step(now)

	v.cam.SetDistance(v.zoom.Step())

	dir, dirColor, dirIntensity, ambColor, ambIntensity := renderer.FrameLighting(v.scn.Lights())
	state := renderer.FrameState{
		ViewProj:         v.cam.ViewProjectionMatrix(),
		Transforms:       v.scn.Transforms(),
		LightDirection:   dir,
		LightColor:       dirColor,
		LightIntensity:   dirIntensity,
		AmbientColor:     ambColor,
		AmbientIntensity: ambIntensity,
	}
	if err := v.rend.RenderFrame(state); err != nil {
		log.Printf("[Viewer] render frame: %v", err)
	}

	if profiling {
		v.prof.EndTick()
	}
}

// updateHover recasts the pick ray on pointer motion and swaps the cursor
// when the hover state flips.
func (v *viewerImpl) updateHover(x, y float32) {
	hit := v.scn.PickScreen(
		x, y,
		float32(v.win.Width()), float32(v.win.Height()),
		v.cam.ViewProjectionMatrix(),
	)

	v.mu.Lock()
	changed := hit != v.hovering
	v.hovering = hit
	v.mu.Unlock()

	if changed {
		v.win.SetHandCursor(hit)
	}
}

func (v *viewerImpl) Hovering() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hovering
}

func (v *viewerImpl) Window() window.Window {
	return v.win
}

func (v *viewerImpl) Scene() scene.Scene {
	return v.scn
}

func (v *viewerImpl) EnableProfiler() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.profilingEnabled = true
}

func (v *viewerImpl) DisableProfiler() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.profilingEnabled = false
}

func (v *viewerImpl) Close() error {
	var err error
	v.closeOnce.Do(func() {
		v.mu.Lock()
		v.closed = true
		v.mu.Unlock()

		// Remove every input subscription first so no event fires into
		// half-released state, then release GPU resources, then the window.
		if v.win != nil {
			v.win.ClearCallbacks()
		}
		if v.rend != nil {
			v.rend.Dispose()
		}
		if v.win != nil {
			err = v.win.Close()
		}
	})
	return err
}
