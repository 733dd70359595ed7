package layercycle

import (
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeRotator records the angles the scheduler writes per layer.
type fakeRotator struct {
	layers int
	angles map[int]float32
	writes []int
}

func newFakeRotator(layers int) *fakeRotator {
	return &fakeRotator{
		layers: layers,
		angles: make(map[int]float32),
	}
}

func (f *fakeRotator) LayerCount() int {
	return f.layers
}

func (f *fakeRotator) SetLayerAngle(index int, radians float32) {
	f.angles[index] = radians
	f.writes = append(f.writes, index)
}

func TestScheduler(t *testing.T) {
	Convey("Layer cycle scheduler test", t, func() {
		start := time.Unix(1000, 0)
		rot := newFakeRotator(3)
		s := NewScheduler(rot)

		// First step anchors the phase clock.
		s.Step(start)
		So(s.Rotating(), ShouldBeFalse)
		So(s.ActiveLayer(), ShouldEqual, 0)

		Convey("Nothing rotates during the initial pause", func() {
			s.Step(start.Add(2999 * time.Millisecond))
			So(s.Rotating(), ShouldBeFalse)
			So(rot.writes, ShouldBeEmpty)
		})

		Convey("Layer 0 begins rotating once the pause elapses", func() {
			s.Step(start.Add(3000 * time.Millisecond))
			So(s.Rotating(), ShouldBeTrue)
			So(s.ActiveLayer(), ShouldEqual, 0)

			Convey("and is halfway through its quarter turn at 3500 ms", func() {
				s.Step(start.Add(3500 * time.Millisecond))
				So(rot.angles[0], ShouldAlmostEqual, math.Pi/4, 1e-4)
			})

			Convey("and settles at exactly 90 degrees at 4000 ms", func() {
				s.Step(start.Add(4000 * time.Millisecond))
				So(s.Rotating(), ShouldBeFalse)
				So(rot.angles[0], ShouldAlmostEqual, math.Pi/2, 1e-6)
				So(s.LayerAngle(0), ShouldAlmostEqual, math.Pi/2, 1e-6)

				Convey("and the cycle advances to layer 1", func() {
					So(s.ActiveLayer(), ShouldEqual, 1)
				})
			})
		})

		Convey("A full simulated run turns each layer once, in order", func() {
			// Drive three complete pause+rotate cycles at 100 ms granularity.
			total := 3 * (3000 + 1000)
			for ms := 0; ms <= total; ms += 100 {
				s.Step(start.Add(time.Duration(ms) * time.Millisecond))
			}

			So(s.LayerAngle(0), ShouldAlmostEqual, math.Pi/2, 1e-6)
			So(s.LayerAngle(1), ShouldAlmostEqual, math.Pi/2, 1e-6)
			So(s.LayerAngle(2), ShouldAlmostEqual, math.Pi/2, 1e-6)
			So(s.ActiveLayer(), ShouldEqual, 0)

			// Writes touch the layers strictly in cycle order.
			seen := []int{}
			for _, idx := range rot.writes {
				if len(seen) == 0 || seen[len(seen)-1] != idx {
					seen = append(seen, idx)
				}
			}
			So(seen, ShouldResemble, []int{0, 1, 2})
		})

		Convey("Settled angles wrap instead of growing without bound", func() {
			// Five full cycles: layer 0 turns five times but its stored angle
			// stays a quarter-turn multiple inside one revolution.
			total := 15 * (3000 + 1000)
			for ms := 0; ms <= total; ms += 50 {
				s.Step(start.Add(time.Duration(ms) * time.Millisecond))
			}
			So(s.LayerAngle(0), ShouldAlmostEqual, math.Pi/2, 1e-5)
			So(s.LayerAngle(0), ShouldBeLessThan, 2*math.Pi)
		})

		Convey("Custom durations shift the phase boundaries", func() {
			rot2 := newFakeRotator(3)
			s2 := NewScheduler(rot2,
				WithPauseDuration(100*time.Millisecond),
				WithRotateDuration(200*time.Millisecond),
			)
			s2.Step(start)
			s2.Step(start.Add(100 * time.Millisecond))
			So(s2.Rotating(), ShouldBeTrue)
			s2.Step(start.Add(200 * time.Millisecond))
			So(rot2.angles[0], ShouldAlmostEqual, math.Pi/4, 1e-4)
			s2.Step(start.Add(300 * time.Millisecond))
			So(s2.Rotating(), ShouldBeFalse)
			So(s2.ActiveLayer(), ShouldEqual, 1)
		})
	})
}
