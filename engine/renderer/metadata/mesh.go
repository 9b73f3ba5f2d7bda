package metadata

import (
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/math"
)

// MeshID is the stable handle of a mesh inside the asset arena.
type MeshID uint32

const InvalidMeshID MeshID = 0xFFFFFFFF

// Mesh is a flat list of triangles. Meshes are shared assets; objects refer
// to them by MeshID and never own them.
type Mesh struct {
	Name      string
	Triangles []math.Triangle
}

func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

func (m *Mesh) AddTriangle(tri math.Triangle) {
	m.Triangles = append(m.Triangles, tri)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// LoadFromObjectFile is a placeholder for OBJ import. It always fails and
// leaves the mesh as it was.
func (m *Mesh) LoadFromObjectFile(filename string) bool {
	core.LogWarn("mesh '%s': loading '%s' is not supported", m.Name, filename)
	return false
}

// RotateX rotates every vertex around the X axis. angle is in degrees.
func (m *Mesh) RotateX(angle float32) {
	m.applyMatrix(math.NewMat4RotationX(math.DegToRad(angle)))
}

// RotateY rotates every vertex around the Y axis. angle is in degrees.
func (m *Mesh) RotateY(angle float32) {
	m.applyMatrix(math.NewMat4RotationY(math.DegToRad(angle)))
}

// RotateZ rotates every vertex around the Z axis. angle is in degrees.
func (m *Mesh) RotateZ(angle float32) {
	m.applyMatrix(math.NewMat4RotationZ(math.DegToRad(angle)))
}

// Translate offsets every vertex.
func (m *Mesh) Translate(x, y, z float32) {
	m.applyMatrix(math.NewMat4Translation(x, y, z))
}

func (m *Mesh) applyMatrix(mat math.Mat4) {
	for t := range m.Triangles {
		tri := &m.Triangles[t]
		for i := 0; i < 3; i++ {
			tri.Points[i] = math.TransformPoint(tri.Points[i], mat)
		}
	}
}
