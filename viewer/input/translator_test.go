package input

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// gestureRecorder captures the normalized gesture streams for assertions.
type gestureRecorder struct {
	begins int
	ends   int
	moves  [][2]float32
	zooms  []float32
	hovers [][2]float32
}

func newRecordedTranslator() (*gestureRecorder, Translator) {
	rec := &gestureRecorder{}
	tr := NewTranslator(
		WithDragCallbacks(
			func() { rec.begins++ },
			func(dx, dy float32) { rec.moves = append(rec.moves, [2]float32{dx, dy}) },
			func() { rec.ends++ },
		),
		WithZoomCallback(func(delta float32) { rec.zooms = append(rec.zooms, delta) }),
		WithHoverCallback(func(x, y float32) { rec.hovers = append(rec.hovers, [2]float32{x, y}) }),
	)
	return rec, tr
}

func TestTranslator(t *testing.T) {
	Convey("Gesture translator test", t, func() {
		Convey("Mouse drag produces begin, per-move deltas, and end", func() {
			rec, tr := newRecordedTranslator()

			tr.PointerDown(100, 100)
			So(rec.begins, ShouldEqual, 1)
			So(tr.Dragging(), ShouldBeTrue)

			tr.PointerMove(110, 105)
			So(rec.moves, ShouldHaveLength, 1)
			So(rec.moves[0], ShouldEqual, [2]float32{10, 5})

			tr.PointerMove(110, 105)
			So(rec.moves, ShouldHaveLength, 1)

			tr.PointerUp()
			So(rec.ends, ShouldEqual, 1)
			So(tr.Dragging(), ShouldBeFalse)
		})

		Convey("Hover probing continues while a drag is active", func() {
			rec, tr := newRecordedTranslator()

			tr.PointerDown(100, 100)
			tr.PointerMove(110, 105)
			tr.PointerMove(120, 110)

			So(rec.moves, ShouldHaveLength, 2)
			So(rec.hovers, ShouldHaveLength, 2)
			So(rec.hovers[1], ShouldEqual, [2]float32{120, 110})

			Convey("and for single-touch drags as well", func() {
				tr.PointerUp()
				tr.TouchStart([]TouchPoint{{X: 50, Y: 50}})
				tr.TouchMove([]TouchPoint{{X: 58, Y: 44}})
				So(rec.hovers, ShouldHaveLength, 3)
				So(rec.hovers[2], ShouldEqual, [2]float32{58, 44})
			})
		})

		Convey("Pointer motion outside a drag feeds the hover stream", func() {
			rec, tr := newRecordedTranslator()

			tr.PointerMove(40, 60)
			So(rec.begins, ShouldEqual, 0)
			So(rec.moves, ShouldBeEmpty)
			So(rec.hovers, ShouldHaveLength, 1)
			So(rec.hovers[0], ShouldEqual, [2]float32{40, 60})
		})

		Convey("Wheel events pass straight through to the zoom stream", func() {
			rec, tr := newRecordedTranslator()

			tr.Wheel(30)
			tr.Wheel(-30)
			So(rec.zooms, ShouldResemble, []float32{30, -30})
		})

		Convey("Single-touch contact behaves as a drag", func() {
			rec, tr := newRecordedTranslator()

			tr.TouchStart([]TouchPoint{{X: 50, Y: 50}})
			So(rec.begins, ShouldEqual, 1)

			tr.TouchMove([]TouchPoint{{X: 58, Y: 44}})
			So(rec.moves, ShouldHaveLength, 1)
			So(rec.moves[0], ShouldEqual, [2]float32{8, -6})

			tr.TouchEnd(nil)
			So(rec.ends, ShouldEqual, 1)
		})

		Convey("An empty contact list is ignored", func() {
			rec, tr := newRecordedTranslator()

			tr.TouchStart(nil)
			tr.TouchMove([]TouchPoint{})
			So(rec.begins, ShouldEqual, 0)
			So(rec.moves, ShouldBeEmpty)
			So(rec.zooms, ShouldBeEmpty)
		})

		Convey("A second contact ends the drag and starts a pinch", func() {
			rec, tr := newRecordedTranslator()

			tr.TouchStart([]TouchPoint{{X: 50, Y: 50}})
			So(rec.begins, ShouldEqual, 1)

			tr.TouchMove([]TouchPoint{{X: 0, Y: 0}, {X: 100, Y: 0}})
			So(rec.ends, ShouldEqual, 1)
			So(tr.Dragging(), ShouldBeFalse)
			// The first two-contact event only anchors the separation.
			So(rec.zooms, ShouldBeEmpty)

			Convey("and contacts moving together zoom out (positive delta)", func() {
				tr.TouchMove([]TouchPoint{{X: 20, Y: 0}, {X: 80, Y: 0}})
				So(rec.zooms, ShouldHaveLength, 1)
				So(rec.zooms[0], ShouldAlmostEqual, 40.0, 1e-4)
			})

			Convey("and contacts moving apart zoom in (negative delta)", func() {
				tr.TouchMove([]TouchPoint{{X: -20, Y: 0}, {X: 120, Y: 0}})
				So(rec.zooms, ShouldHaveLength, 1)
				So(rec.zooms[0], ShouldAlmostEqual, -40.0, 1e-4)
			})
		})

		Convey("Lifting back to one contact resumes dragging from the survivor", func() {
			rec, tr := newRecordedTranslator()

			tr.TouchStart([]TouchPoint{{X: 0, Y: 0}, {X: 100, Y: 0}})
			So(rec.begins, ShouldEqual, 0)

			tr.TouchEnd([]TouchPoint{{X: 100, Y: 0}})
			So(rec.begins, ShouldEqual, 1)

			tr.TouchMove([]TouchPoint{{X: 104, Y: 3}})
			So(rec.moves, ShouldHaveLength, 1)
			So(rec.moves[0], ShouldEqual, [2]float32{4, 3})
		})
	})
}
