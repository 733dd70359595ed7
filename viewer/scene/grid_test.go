package scene

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildGrid(t *testing.T) {
	Convey("Grid construction test", t, func() {
		Convey("A 3x3x3 grid has 27 cubes in 3 layers of 9", func() {
			g := BuildGrid(3, 0.9, 0.1)
			So(g.CubeCount(), ShouldEqual, 27)
			So(g.LayerCount(), ShouldEqual, 3)
			for layer := 0; layer < g.LayerCount(); layer++ {
				So(g.LayerCubes(layer), ShouldHaveLength, 9)
			}
			So(g.CubeSize(), ShouldAlmostEqual, 0.9, 1e-6)
		})

		Convey("Cube positions step by cubeSize+gap and center on the origin", func() {
			g := BuildGrid(3, 0.9, 0.1)

			// Step is 1.0, so each axis takes the values -1, 0, +1.
			var sum [3]float32
			for i := 0; i < g.CubeCount(); i++ {
				c := g.Cube(i)
				for axis := 0; axis < 3; axis++ {
					v := c.Position[axis]
					So(v == -1 || v == 0 || v == 1, ShouldBeTrue)
					sum[axis] += v
				}
			}
			So(sum[0], ShouldAlmostEqual, 0.0, 1e-5)
			So(sum[1], ShouldAlmostEqual, 0.0, 1e-5)
			So(sum[2], ShouldAlmostEqual, 0.0, 1e-5)

			Convey("and grid coordinates map directly to positions", func() {
				c := g.Cube(0)
				So(c.X, ShouldEqual, 0)
				So(c.Y, ShouldEqual, 0)
				So(c.Z, ShouldEqual, 0)
				So(c.Position.X(), ShouldAlmostEqual, -1.0, 1e-6)
				So(c.Position.Y(), ShouldAlmostEqual, -1.0, 1e-6)
				So(c.Position.Z(), ShouldAlmostEqual, -1.0, 1e-6)
			})
		})

		Convey("Layer membership groups cubes by their Y coordinate", func() {
			g := BuildGrid(3, 0.9, 0.1)
			for layer := 0; layer < g.LayerCount(); layer++ {
				for _, idx := range g.LayerCubes(layer) {
					So(g.Cube(idx).Y, ShouldEqual, layer)
				}
			}
		})

		Convey("Other sizes follow the same layout rule", func() {
			g := BuildGrid(2, 1.0, 0.5)
			So(g.CubeCount(), ShouldEqual, 8)
			So(g.LayerCount(), ShouldEqual, 2)

			// Step is 1.5, offset 0.75, so positions sit at +/-0.75.
			c := g.Cube(0)
			So(c.Position.X(), ShouldAlmostEqual, -0.75, 1e-6)
			last := g.Cube(g.CubeCount() - 1)
			So(last.Position.X(), ShouldAlmostEqual, 0.75, 1e-6)
			So(last.Position.Y(), ShouldAlmostEqual, 0.75, 1e-6)
			So(last.Position.Z(), ShouldAlmostEqual, 0.75, 1e-6)
		})
	})
}
