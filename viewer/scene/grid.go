package scene

import "github.com/go-gl/mathgl/mgl32"

// Cube is one cell of the grid: integer grid coordinates and the local
// position derived from them. Immutable after construction.
type Cube struct {
	X, Y, Z  int
	Position mgl32.Vec3
}

// Grid is the full cube arrangement: gridSize layers of gridSize*gridSize
// cubes each, centered on the origin. Construction is deterministic and the
// result is immutable; all animation state lives on the Scene.
type Grid struct {
	cubeSize float32
	gap      float32
	cubes    []Cube
	layers   [][]int // cube indices per Y layer
}

// BuildGrid constructs a gridSize^3 cube grid. Cube (x,y,z) sits at
// ((cubeSize+gap)*x - offset) per axis with offset chosen so the whole grid
// is centered at the origin.
//
// Parameters:
//   - gridSize: cubes per axis
//   - cubeSize: edge length of a single cube
//   - gap: spacing between adjacent cubes
//
// Returns:
//   - *Grid: the constructed grid
func BuildGrid(gridSize int, cubeSize, gap float32) *Grid {
	step := cubeSize + gap
	offset := step * float32(gridSize-1) / 2

	g := &Grid{
		cubeSize: cubeSize,
		gap:      gap,
		cubes:    make([]Cube, 0, gridSize*gridSize*gridSize),
		layers:   make([][]int, gridSize),
	}
	for y := 0; y < gridSize; y++ {
		g.layers[y] = make([]int, 0, gridSize*gridSize)
		for z := 0; z < gridSize; z++ {
			for x := 0; x < gridSize; x++ {
				g.layers[y] = append(g.layers[y], len(g.cubes))
				g.cubes = append(g.cubes, Cube{
					X: x, Y: y, Z: z,
					Position: mgl32.Vec3{
						step*float32(x) - offset,
						step*float32(y) - offset,
						step*float32(z) - offset,
					},
				})
			}
		}
	}
	return g
}

// CubeCount returns the total number of cubes.
func (g *Grid) CubeCount() int {
	return len(g.cubes)
}

// LayerCount returns the number of horizontal layers.
func (g *Grid) LayerCount() int {
	return len(g.layers)
}

// CubeSize returns the edge length of a single cube.
func (g *Grid) CubeSize() float32 {
	return g.cubeSize
}

// Cube returns the cube at the given flat index.
func (g *Grid) Cube(index int) Cube {
	return g.cubes[index]
}

// LayerCubes returns the flat indices of the cubes in a Y layer.
func (g *Grid) LayerCubes(layer int) []int {
	return g.layers[layer]
}
