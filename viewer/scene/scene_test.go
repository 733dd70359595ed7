package scene

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/gridspin/viewer/camera"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"
)

// worldPosition applies a model matrix to the local origin.
func worldPosition(m mgl32.Mat4) mgl32.Vec3 {
	return m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

func TestScene(t *testing.T) {
	Convey("Scene test", t, func() {
		s := NewScene(BuildGrid(3, 0.9, 0.1))

		Convey("Defaults provide meshes, lights, and identity state", func() {
			So(s.FaceMesh(), ShouldNotBeNil)
			So(s.EdgeMesh(), ShouldNotBeNil)
			So(s.Lights(), ShouldHaveLength, 2)
			So(s.LayerCount(), ShouldEqual, 3)
			So(s.Orientation().W, ShouldAlmostEqual, 1.0, 1e-6)
			So(s.LayerAngle(1), ShouldEqual, 0.0)
		})

		Convey("With identity state each transform is a pure translation", func() {
			transforms := s.Transforms()
			So(transforms, ShouldHaveLength, 27)
			for i, m := range transforms {
				pos := worldPosition(m)
				want := s.Grid().Cube(i).Position
				So(pos.X(), ShouldAlmostEqual, want.X(), 1e-5)
				So(pos.Y(), ShouldAlmostEqual, want.Y(), 1e-5)
				So(pos.Z(), ShouldAlmostEqual, want.Z(), 1e-5)
			}
		})

		Convey("A layer angle rotates only that layer's cubes", func() {
			s.SetLayerAngle(0, float32(math.Pi/2))
			transforms := s.Transforms()

			// Cube (0,0,1) sits at (-1,-1,0); a quarter turn about Y carries
			// it to (0,-1,1).
			moved := worldPosition(transforms[3])
			So(moved.X(), ShouldAlmostEqual, 0.0, 1e-5)
			So(moved.Y(), ShouldAlmostEqual, -1.0, 1e-5)
			So(moved.Z(), ShouldAlmostEqual, 1.0, 1e-5)

			// A middle-layer cube stays put.
			still := worldPosition(transforms[9])
			want := s.Grid().Cube(9).Position
			So(still.X(), ShouldAlmostEqual, want.X(), 1e-5)
			So(still.Y(), ShouldAlmostEqual, want.Y(), 1e-5)
			So(still.Z(), ShouldAlmostEqual, want.Z(), 1e-5)
		})

		Convey("The grid orientation rotates every cube together", func() {
			s.SetOrientation(mgl32.AnglesToQuat(0, float32(math.Pi/2), 0, mgl32.XYZ))
			transforms := s.Transforms()

			// (-1,-1,-1) about Y by a quarter turn lands at (-1,-1,1).
			pos := worldPosition(transforms[0])
			So(pos.X(), ShouldAlmostEqual, -1.0, 1e-5)
			So(pos.Y(), ShouldAlmostEqual, -1.0, 1e-5)
			So(pos.Z(), ShouldAlmostEqual, 1.0, 1e-5)
		})

		Convey("Out-of-range layer indices are ignored", func() {
			s.SetLayerAngle(-1, 1.0)
			s.SetLayerAngle(99, 1.0)
			So(s.LayerAngle(-1), ShouldEqual, 0.0)
			So(s.LayerAngle(99), ShouldEqual, 0.0)
		})

		Convey("Screen picking through the default camera", func() {
			cam := camera.NewCamera(camera.WithAspect(1.0))
			vp := cam.ViewProjectionMatrix()

			Convey("hits when the ray passes through the grid center", func() {
				So(s.PickScreen(400, 400, 800, 800, vp), ShouldBeTrue)
			})

			Convey("misses at the viewport corner", func() {
				So(s.PickScreen(1, 1, 800, 800, vp), ShouldBeFalse)
			})

			Convey("rejects a degenerate viewport", func() {
				So(s.PickScreen(0, 0, 0, 0, vp), ShouldBeFalse)
			})
		})
	})
}
