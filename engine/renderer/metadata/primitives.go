package metadata

import "github.com/spaghettifunk/anima/engine/math"

func tri(x0, y0, z0, x1, y1, z1, x2, y2, z2 float32) math.Triangle {
	return math.Triangle{Points: [3]math.Vec3{{X: x0, Y: y0, Z: z0}, {X: x1, Y: y1, Z: z1}, {X: x2, Y: y2, Z: z2}}}
}

// AddCubeToMesh appends the 12 triangles of an axis aligned cube whose
// minimum corner is (x, y, z) and whose edge length is scale.
func AddCubeToMesh(mesh *Mesh, x, y, z, scale float32) {
	s := scale
	cube := []math.Triangle{
		// SOUTH
		tri(x, y, z, x, y+s, z, x+s, y+s, z),
		tri(x, y, z, x+s, y+s, z, x+s, y, z),
		// EAST
		tri(x+s, y, z, x+s, y+s, z, x+s, y+s, z+s),
		tri(x+s, y, z, x+s, y+s, z+s, x+s, y, z+s),
		// NORTH
		tri(x+s, y, z+s, x+s, y+s, z+s, x, y+s, z+s),
		tri(x+s, y, z+s, x, y+s, z+s, x, y, z+s),
		// WEST
		tri(x, y, z+s, x, y+s, z+s, x, y+s, z),
		tri(x, y, z+s, x, y+s, z, x, y, z),
		// TOP
		tri(x, y+s, z, x, y+s, z+s, x+s, y+s, z+s),
		tri(x, y+s, z, x+s, y+s, z+s, x+s, y+s, z),
		// BOTTOM
		tri(x+s, y, z+s, x, y, z+s, x, y, z),
		tri(x+s, y, z+s, x, y, z, x+s, y, z),
	}
	mesh.Triangles = append(mesh.Triangles, cube...)
}

// AddFloor appends a w x d horizontal grid of cubes.
func AddFloor(mesh *Mesh, x, y, z float32, w, d int, scale float32) {
	for i := 0; i < w; i++ {
		for j := 0; j < d; j++ {
			AddCubeToMesh(mesh, x+float32(i)*scale, y, z+float32(j)*scale, scale)
		}
	}
}

// AddWallX appends a w x h vertical wall of cubes along the X axis.
func AddWallX(mesh *Mesh, x, y, z float32, w, h int, scale float32) {
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			AddCubeToMesh(mesh, x+float32(i)*scale, y+float32(j)*scale, z, scale)
		}
	}
}

// AddWallZ appends a d x h vertical wall of cubes along the Z axis.
func AddWallZ(mesh *Mesh, x, y, z float32, d, h int, scale float32) {
	for i := 0; i < d; i++ {
		for j := 0; j < h; j++ {
			AddCubeToMesh(mesh, x, y+float32(j)*scale, z+float32(i)*scale, scale)
		}
	}
}

// NewUnitCube returns a cube of edge 1 centred on the origin.
func NewUnitCube(name string) *Mesh {
	m := NewMesh(name)
	AddCubeToMesh(m, -0.5, -0.5, -0.5, 1)
	return m
}
