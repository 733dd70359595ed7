package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func (s *sceneImpl) PickScreen(px, py, width, height float32, viewProj mgl32.Mat4) bool {
	if width <= 0 || height <= 0 {
		return false
	}

	inv := viewProj.Inv()
	ndcX := 2*px/width - 1
	ndcY := 1 - 2*py/height

	// Clip-space depth runs [0, 1], so the ray spans the near plane to the
	// far plane.
	near, okNear := unproject(inv, ndcX, ndcY, 0)
	far, okFar := unproject(inv, ndcX, ndcY, 1)
	if !okNear || !okFar {
		return false
	}
	dir := far.Sub(near)
	if dir.Len() == 0 {
		return false
	}
	dir = dir.Normalize()

	// Each cube is an axis-aligned box in its own local space; taking the ray
	// through the inverse model matrix turns the oriented-box test into a
	// plain slab test.
	half := s.grid.CubeSize() / 2
	for _, m := range s.Transforms() {
		invModel := m.Inv()
		localOrigin := invModel.Mul4x1(near.Vec4(1)).Vec3()
		localDir := invModel.Mul4x1(dir.Vec4(0)).Vec3()
		if rayIntersectsBox(localOrigin, localDir, half) {
			return true
		}
	}
	return false
}

// unproject maps a clip-space point back to world space through the inverse
// view-projection matrix.
func unproject(invViewProj mgl32.Mat4, x, y, z float32) (mgl32.Vec3, bool) {
	p := invViewProj.Mul4x1(mgl32.Vec4{x, y, z, 1})
	if p.W() == 0 {
		return mgl32.Vec3{}, false
	}
	return p.Vec3().Mul(1 / p.W()), true
}

// rayIntersectsBox performs a slab test against the axis-aligned box
// [-half, half]^3.
func rayIntersectsBox(origin, dir mgl32.Vec3, half float32) bool {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		if math.Abs(float64(dir[i])) < 1e-8 {
			if origin[i] < -half || origin[i] > half {
				return false
			}
			continue
		}
		t1 := (-half - origin[i]) / dir[i]
		t2 := (half - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return false
		}
	}
	return tmax >= 0
}
