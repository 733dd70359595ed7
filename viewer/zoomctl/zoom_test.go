package zoomctl

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestZoomController(t *testing.T) {
	Convey("Zoom controller test", t, func() {
		Convey("ApplyDelta scales by zoom speed and moves the target", func() {
			z := NewController()
			So(z.TargetDistance(), ShouldEqual, 10.0)
			So(z.CurrentDistance(), ShouldEqual, 10.0)

			z.ApplyDelta(100)
			So(z.TargetDistance(), ShouldEqual, 20.0)
			// Current distance only moves on Step.
			So(z.CurrentDistance(), ShouldEqual, 10.0)
		})

		Convey("Target stays clamped to the configured bounds", func() {
			z := NewController()

			z.ApplyDelta(1e6)
			So(z.TargetDistance(), ShouldEqual, 25.0)

			z.ApplyDelta(-1e6)
			So(z.TargetDistance(), ShouldEqual, 4.0)

			Convey("including an out-of-range starting distance", func() {
				low := NewController(WithDistance(1.0))
				So(low.TargetDistance(), ShouldEqual, 4.0)
			})
		})

		Convey("Step moves the current distance a fixed fraction toward the target", func() {
			z := NewController()
			z.ApplyDelta(100)

			got := z.Step()
			So(got, ShouldAlmostEqual, 11.0, 1e-4)
			So(z.Step(), ShouldAlmostEqual, 11.9, 1e-4)
		})

		Convey("Repeated steps converge to the target within a bounded tick count", func() {
			z := NewController()
			z.ApplyDelta(100)

			for i := 0; i < 200; i++ {
				z.Step()
			}
			So(z.CurrentDistance(), ShouldAlmostEqual, 20.0, 1e-3)

			Convey("and zero-delta steps hold there", func() {
				z.ApplyDelta(0)
				for i := 0; i < 10; i++ {
					z.Step()
				}
				So(z.CurrentDistance(), ShouldAlmostEqual, 20.0, 1e-3)
			})
		})

		Convey("Custom speed and smoothing options are honored", func() {
			z := NewController(
				WithDistance(10),
				WithZoomSpeed(1.0),
				WithSmoothing(1.0),
			)
			z.ApplyDelta(5)
			So(z.TargetDistance(), ShouldEqual, 15.0)
			So(z.Step(), ShouldAlmostEqual, 15.0, 1e-5)
		})
	})
}
