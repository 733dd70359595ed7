package mesh

import (
	"encoding/binary"

	"github.com/Carmen-Shannon/gridspin/common"
)

// Topology identifies how a mesh's index buffer is interpreted when drawing.
type Topology int

const (
	// TopologyTriangles draws the index buffer as a triangle list.
	TopologyTriangles Topology = iota

	// TopologyLines draws the index buffer as a line list.
	TopologyLines
)

// meshImpl is the implementation of the Mesh interface.
type meshImpl struct {
	name       string
	topology   Topology
	vertexData []byte
	indexData  []byte
	indexCount int
}

// Mesh defines the interface for an uploadable piece of geometry.
// Vertex and index data are pre-serialized into GPU-ready byte buffers.
type Mesh interface {
	// Name returns the mesh's identifier, used for GPU resource labels.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Topology returns how the index buffer is interpreted when drawing.
	//
	// Returns:
	//   - Topology: triangle list or line list
	Topology() Topology

	// VertexData returns the raw vertex bytes to upload to the GPU.
	//
	// Returns:
	//   - []byte: serialized GPUVertex data
	VertexData() []byte

	// IndexData returns the raw uint32 index bytes to upload to the GPU.
	//
	// Returns:
	//   - []byte: little-endian serialized indices
	IndexData() []byte

	// IndexCount returns the number of indices, used for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int
}

var _ Mesh = &meshImpl{}

// NewMesh creates a Mesh from vertices and indices, serializing both into
// GPU-ready byte buffers.
//
// Parameters:
//   - name: identifier used for GPU resource labels
//   - topology: how the index buffer is interpreted when drawing
//   - vertices: the mesh vertices
//   - indices: the index list referencing vertices
//
// Returns:
//   - Mesh: the newly created mesh
func NewMesh(name string, topology Topology, vertices []GPUVertex, indices []uint32) Mesh {
	indexData := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(indexData[i*4:], idx)
	}
	return &meshImpl{
		name:       name,
		topology:   topology,
		vertexData: common.SliceToBytes(vertices),
		indexData:  indexData,
		indexCount: len(indices),
	}
}

func (m *meshImpl) Name() string {
	return m.name
}

func (m *meshImpl) Topology() Topology {
	return m.topology
}

func (m *meshImpl) VertexData() []byte {
	return m.vertexData
}

func (m *meshImpl) IndexData() []byte {
	return m.indexData
}

func (m *meshImpl) IndexCount() int {
	return m.indexCount
}

// BuildCubeFaces creates the filled-face mesh for a single cube centered at
// the origin. 6 faces x 4 vertices = 24 vertices, 6 faces x 2 triangles = 36
// indices. Every face shares the same color; shading comes from the
// directional light in the fragment shader.
//
// Parameters:
//   - size: edge length of the cube
//   - color: RGBA color applied to every vertex
//
// Returns:
//   - Mesh: the face mesh with triangle topology
func BuildCubeFaces(size float32, color [4]float32) Mesh {
	h := size / 2

	// Face definitions: 4 positions + normal per face.
	type faceData struct {
		positions [4][3]float32
		normal    [3]float32
	}

	faces := []faceData{
		// +X
		{positions: [4][3]float32{{h, -h, -h}, {h, h, -h}, {h, h, h}, {h, -h, h}}, normal: [3]float32{1, 0, 0}},
		// -X
		{positions: [4][3]float32{{-h, -h, h}, {-h, h, h}, {-h, h, -h}, {-h, -h, -h}}, normal: [3]float32{-1, 0, 0}},
		// +Y
		{positions: [4][3]float32{{-h, h, -h}, {-h, h, h}, {h, h, h}, {h, h, -h}}, normal: [3]float32{0, 1, 0}},
		// -Y
		{positions: [4][3]float32{{-h, -h, h}, {-h, -h, -h}, {h, -h, -h}, {h, -h, h}}, normal: [3]float32{0, -1, 0}},
		// +Z
		{positions: [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}, normal: [3]float32{0, 0, 1}},
		// -Z
		{positions: [4][3]float32{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}, normal: [3]float32{0, 0, -1}},
	}

	vertices := make([]GPUVertex, 0, 24)
	for _, face := range faces {
		for _, pos := range face.positions {
			vertices = append(vertices, GPUVertex{
				Position: pos,
				Normal:   face.normal,
				Color:    color,
			})
		}
	}

	indices := make([]uint32, 0, 36)
	for fi := range 6 {
		base := uint32(fi * 4)
		indices = append(indices,
			base+0, base+1, base+2,
			base+0, base+2, base+3,
		)
	}

	return NewMesh("cube_faces", TopologyTriangles, vertices, indices)
}

// BuildCubeEdges creates the wireframe outline mesh for a single cube centered
// at the origin: 8 corner vertices and 12 edges (24 line-list indices). The
// outline shares the face mesh's transform at draw time.
//
// Parameters:
//   - size: edge length of the cube
//   - color: RGBA color applied to every vertex
//
// Returns:
//   - Mesh: the edge mesh with line topology
func BuildCubeEdges(size float32, color [4]float32) Mesh {
	h := size / 2

	corners := [8][3]float32{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}

	vertices := make([]GPUVertex, 0, 8)
	for _, pos := range corners {
		vertices = append(vertices, GPUVertex{
			Position: pos,
			Normal:   [3]float32{0, 1, 0},
			Color:    color,
		})
	}

	indices := []uint32{
		0, 1, 1, 2, 2, 3, 3, 0, // back face ring
		4, 5, 5, 6, 6, 7, 7, 4, // front face ring
		0, 4, 1, 5, 2, 6, 3, 7, // connecting edges
	}

	return NewMesh("cube_edges", TopologyLines, vertices, indices)
}
