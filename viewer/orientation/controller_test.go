package orientation

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOrientationController(t *testing.T) {
	Convey("Orientation controller test", t, func() {
		Convey("Starts at the identity orientation", func() {
			c := NewController()
			q := c.Orientation()
			So(q.W, ShouldAlmostEqual, 1.0, 1e-6)
			So(q.V.Len(), ShouldAlmostEqual, 0.0, 1e-6)
		})

		Convey("A drag applies Euler deltas scaled by drag speed", func() {
			c := NewController()
			c.BeginDrag()
			So(c.Dragging(), ShouldBeTrue)

			// Pointer moves from (100,100) to (110,105): dx=10, dy=5.
			c.DragBy(10, 5)

			want := mgl32.AnglesToQuat(0.05, 0.1, 0, mgl32.XYZ)
			got := c.Orientation()
			So(got.W, ShouldAlmostEqual, want.W, 1e-5)
			So(got.X(), ShouldAlmostEqual, want.X(), 1e-5)
			So(got.Y(), ShouldAlmostEqual, want.Y(), 1e-5)
			So(got.Z(), ShouldAlmostEqual, want.Z(), 1e-5)
		})

		Convey("Drag increments ignored while no drag is active", func() {
			c := NewController()
			c.DragBy(50, 50)
			So(c.Orientation().W, ShouldAlmostEqual, 1.0, 1e-6)
		})

		Convey("Update is a no-op while dragging", func() {
			c := NewController()
			c.BeginDrag()
			c.DragBy(3, 4)
			before := c.Orientation()

			c.Update()
			after := c.Orientation()
			So(after.W, ShouldAlmostEqual, before.W, 1e-6)
			So(after.X(), ShouldAlmostEqual, before.X(), 1e-6)
		})

		Convey("Idle updates auto-spin the orientation", func() {
			c := NewController()
			c.Update()

			want := mgl32.AnglesToQuat(0.005, 0.005, 0, mgl32.XYZ)
			got := c.Orientation()
			So(got.W, ShouldAlmostEqual, want.W, 1e-5)
			So(got.X(), ShouldAlmostEqual, want.X(), 1e-5)
			So(got.Y(), ShouldAlmostEqual, want.Y(), 1e-5)
		})

		Convey("Auto-spin can be disabled", func() {
			c := NewController(WithAutoSpinEnabled(false))
			for i := 0; i < 10; i++ {
				c.Update()
			}
			So(c.Orientation().W, ShouldAlmostEqual, 1.0, 1e-6)
		})

		Convey("Release velocity decays toward zero after EndDrag", func() {
			c := NewController(WithAutoSpinEnabled(false))
			c.BeginDrag()
			c.DragBy(20, 0)
			c.EndDrag()

			// First idle update still carries residual flick velocity.
			before := c.Orientation()
			c.Update()
			moved := c.Orientation()
			So(moved.Y(), ShouldNotAlmostEqual, before.Y(), 1e-7)

			// After enough updates the spring has damped the flick out and
			// the orientation stops changing.
			for i := 0; i < 600; i++ {
				c.Update()
			}
			settled := c.Orientation()
			c.Update()
			final := c.Orientation()
			So(final.W, ShouldAlmostEqual, settled.W, 1e-6)
			So(final.Y(), ShouldAlmostEqual, settled.Y(), 1e-6)
		})

		Convey("Orientation stays unit-norm over many composed rotations", func() {
			c := NewController()
			c.BeginDrag()
			for i := 0; i < 500; i++ {
				c.DragBy(7, -3)
			}
			c.EndDrag()
			for i := 0; i < 500; i++ {
				c.Update()
			}

			q := c.Orientation()
			norm := q.W*q.W + q.V.Dot(q.V)
			So(norm, ShouldAlmostEqual, 1.0, 1e-4)
		})

		Convey("BeginDrag clears residual release velocity", func() {
			c := NewController(WithAutoSpinEnabled(false))
			c.BeginDrag()
			c.DragBy(50, 50)
			c.EndDrag()

			c.BeginDrag()
			c.EndDrag()
			// Two spring-only updates barely move anything since velocity
			// was reset by the new drag.
			before := c.Orientation()
			c.Update()
			after := c.Orientation()
			So(after.W, ShouldAlmostEqual, before.W, 1e-6)
		})
	})
}
