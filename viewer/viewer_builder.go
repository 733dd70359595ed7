package viewer

import (
	"github.com/Carmen-Shannon/gridspin/viewer/layercycle"
	"github.com/Carmen-Shannon/gridspin/viewer/orientation"
	"github.com/Carmen-Shannon/gridspin/viewer/renderer"
	"github.com/Carmen-Shannon/gridspin/viewer/window"
	"github.com/Carmen-Shannon/gridspin/viewer/zoomctl"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*viewerImpl)

// WithWindowOptions forwards options to the window created by NewViewer.
//
// Parameters:
//   - options: window options to apply
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithWindowOptions(options ...window.WindowBuilderOption) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.windowOptions = append(v.windowOptions, options...)
	}
}

// WithRendererOptions forwards options to the renderer created by NewViewer.
//
// Parameters:
//   - options: renderer options to apply
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.rendererOptions = append(v.rendererOptions, options...)
	}
}

// WithOrientationOptions forwards options to the orientation controller
// created by NewViewer.
//
// Parameters:
//   - options: orientation controller options to apply
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithOrientationOptions(options ...orientation.ControllerOption) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.orientOptions = append(v.orientOptions, options...)
	}
}

// WithSchedulerOptions forwards options to the layer-turn scheduler created
// by NewViewer.
//
// Parameters:
//   - options: scheduler options to apply
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithSchedulerOptions(options ...layercycle.SchedulerOption) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.schedulerOptions = append(v.schedulerOptions, options...)
	}
}

// WithZoomOptions forwards options to the zoom controller created by NewViewer.
//
// Parameters:
//   - options: zoom controller options to apply
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithZoomOptions(options ...zoomctl.ControllerOption) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.zoomOptions = append(v.zoomOptions, options...)
	}
}

// WithWheelStep sets the zoom delta applied per scroll wheel notch before the
// zoom controller's own speed scaling.
//
// Parameters:
//   - step: delta per wheel notch
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithWheelStep(step float32) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.wheelStep = step
	}
}

// WithProfiling enables profiler output from the first tick.
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithProfiling() ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.profilingEnabled = true
	}
}
