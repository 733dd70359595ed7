package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMesh(t *testing.T) {
	Convey("Mesh test", t, func() {
		Convey("GPUVertex packs to the WGSL vertex layout", func() {
			v := &GPUVertex{
				Position: [3]float32{1, 2, 3},
				Normal:   [3]float32{0, 1, 0},
				Color:    [4]float32{0.1, 0.2, 0.3, 1.0},
			}
			So(v.Size(), ShouldEqual, 40)

			buf := v.Marshal()
			So(buf, ShouldHaveLength, 40)
			So(math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])), ShouldEqual, 1.0)
			So(math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])), ShouldEqual, 1.0)
			So(math.Float32frombits(binary.LittleEndian.Uint32(buf[36:40])), ShouldEqual, 1.0)
		})

		Convey("NewMesh serializes indices little-endian", func() {
			m := NewMesh("probe", TopologyTriangles, []GPUVertex{{}, {}, {}}, []uint32{0, 1, 256})
			So(m.Name(), ShouldEqual, "probe")
			So(m.IndexCount(), ShouldEqual, 3)
			So(m.VertexData(), ShouldHaveLength, 3*40)

			idx := m.IndexData()
			So(idx, ShouldHaveLength, 12)
			So(binary.LittleEndian.Uint32(idx[4:8]), ShouldEqual, uint32(1))
			So(binary.LittleEndian.Uint32(idx[8:12]), ShouldEqual, uint32(256))
		})

		Convey("The face mesh is 24 vertices and 36 triangle-list indices", func() {
			m := BuildCubeFaces(0.9, [4]float32{0.28, 0.56, 0.9, 1.0})
			So(m.Topology(), ShouldEqual, TopologyTriangles)
			So(m.IndexCount(), ShouldEqual, 36)
			So(m.VertexData(), ShouldHaveLength, 24*40)
			So(m.IndexData(), ShouldHaveLength, 36*4)

			Convey("with every vertex on the cube surface and a unit normal", func() {
				data := m.VertexData()
				half := float32(0.45)
				for i := 0; i < 24; i++ {
					base := i * 40
					var pos, normal [3]float32
					for a := 0; a < 3; a++ {
						pos[a] = math.Float32frombits(binary.LittleEndian.Uint32(data[base+a*4:]))
						normal[a] = math.Float32frombits(binary.LittleEndian.Uint32(data[base+12+a*4:]))
					}
					for a := 0; a < 3; a++ {
						So(math.Abs(float64(pos[a])), ShouldAlmostEqual, float64(half), 1e-5)
					}
					length := math.Sqrt(float64(normal[0]*normal[0] + normal[1]*normal[1] + normal[2]*normal[2]))
					So(length, ShouldAlmostEqual, 1.0, 1e-5)
				}
			})

			Convey("with all indices inside the vertex range", func() {
				idx := m.IndexData()
				for i := 0; i < m.IndexCount(); i++ {
					So(binary.LittleEndian.Uint32(idx[i*4:]), ShouldBeLessThan, uint32(24))
				}
			})
		})

		Convey("The edge mesh is 8 corners and 12 line segments", func() {
			m := BuildCubeEdges(0.9, [4]float32{0, 0, 0, 1})
			So(m.Topology(), ShouldEqual, TopologyLines)
			So(m.IndexCount(), ShouldEqual, 24)
			So(m.VertexData(), ShouldHaveLength, 8*40)

			Convey("and every segment spans exactly one cube edge", func() {
				data := m.VertexData()
				corner := func(i int) [3]float32 {
					var p [3]float32
					for a := 0; a < 3; a++ {
						p[a] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*40+a*4:]))
					}
					return p
				}
				idx := m.IndexData()
				for seg := 0; seg < 12; seg++ {
					a := corner(int(binary.LittleEndian.Uint32(idx[seg*8:])))
					b := corner(int(binary.LittleEndian.Uint32(idx[seg*8+4:])))
					dx := float64(a[0] - b[0])
					dy := float64(a[1] - b[1])
					dz := float64(a[2] - b[2])
					So(math.Sqrt(dx*dx+dy*dy+dz*dz), ShouldAlmostEqual, 0.9, 1e-5)
				}
			})
		})
	})
}
