package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMath(t *testing.T) {
	Convey("Common math test", t, func() {
		Convey("Clamp constrains values to the inclusive range", func() {
			So(Clamp(5, 0, 10), ShouldEqual, 5.0)
			So(Clamp(-1, 0, 10), ShouldEqual, 0.0)
			So(Clamp(11, 0, 10), ShouldEqual, 10.0)
			So(Clamp(0, 0, 10), ShouldEqual, 0.0)
			So(Clamp(10, 0, 10), ShouldEqual, 10.0)
		})

		Convey("Perspective uses the [0, 1] clip-space depth convention", func() {
			proj := Perspective(mgl32.DegToRad(45), 1.0, 0.1, 100)

			near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
			So(near.Z()/near.W(), ShouldAlmostEqual, 0.0, 1e-6)

			far := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
			So(far.Z()/far.W(), ShouldAlmostEqual, 1.0, 1e-6)

			Convey("and w carries the view-space depth", func() {
				p := proj.Mul4x1(mgl32.Vec4{1, 2, -7, 1})
				So(p.W(), ShouldAlmostEqual, 7.0, 1e-5)
			})
		})

		Convey("SliceToBytes views slice memory without copying", func() {
			data := []float32{1.0, 2.0, 3.0}
			raw := SliceToBytes(data)
			So(raw, ShouldHaveLength, 12)

			Convey("and an empty slice yields nil", func() {
				So(SliceToBytes([]float32{}), ShouldBeNil)
				So(SliceToBytes[float32](nil), ShouldBeNil)
			})

			Convey("and matrices serialize at 64 bytes each", func() {
				mats := make([]mgl32.Mat4, 27)
				So(SliceToBytes(mats), ShouldHaveLength, 27*64)
			})
		})

		Convey("StructToBytes spans the struct's full memory", func() {
			type uniforms struct {
				ViewProj mgl32.Mat4
				LightDir mgl32.Vec4
				Color    mgl32.Vec4
				Ambient  mgl32.Vec4
			}
			u := uniforms{}
			So(StructToBytes(&u), ShouldHaveLength, 64+16+16+16)
		})
	})
}
