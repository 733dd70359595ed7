package scene

import (
	"github.com/Carmen-Shannon/gridspin/viewer/light"
	"github.com/Carmen-Shannon/gridspin/viewer/mesh"
)

// SceneOption is a functional option for configuring a Scene.
type SceneOption func(*sceneImpl)

// WithLights replaces the default light rig.
//
// Parameters:
//   - lights: the lights to use
//
// Returns:
//   - SceneOption: option function to apply
func WithLights(lights ...light.Light) SceneOption {
	return func(s *sceneImpl) {
		s.lights = lights
	}
}

// WithFaceMesh replaces the shared filled-face cube mesh.
//
// Parameters:
//   - m: the mesh to use
//
// Returns:
//   - SceneOption: option function to apply
func WithFaceMesh(m mesh.Mesh) SceneOption {
	return func(s *sceneImpl) {
		s.faceMesh = m
	}
}

// WithEdgeMesh replaces the shared wireframe-outline cube mesh.
//
// Parameters:
//   - m: the mesh to use
//
// Returns:
//   - SceneOption: option function to apply
func WithEdgeMesh(m mesh.Mesh) SceneOption {
	return func(s *sceneImpl) {
		s.edgeMesh = m
	}
}

// WithComputeWorkers sets the number of workers used for parallel transform
// rebuilds. Values below one are ignored.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - SceneOption: option function to apply
func WithComputeWorkers(workers int) SceneOption {
	return func(s *sceneImpl) {
		if workers >= 1 {
			s.computeWorkers = workers
		}
	}
}
