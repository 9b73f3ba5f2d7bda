package metadata

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/anima/engine/math"
)

// Object is a scene instance of a mesh asset.
type Object struct {
	ID   uuid.UUID
	Mesh MeshID
	// Position in world space.
	Position math.Vec3
	// Rotation in degrees per axis.
	Rotation math.Vec3
	// Uniform scale.
	Scale float32
}

func NewObject(mesh MeshID) *Object {
	return &Object{
		ID:    uuid.New(),
		Mesh:  mesh,
		Scale: 1.0,
	}
}

// WorldMatrix composes Scale -> RotateX -> RotateY -> RotateZ -> Translate
// from the current position, rotation and scale.
func (o *Object) WorldMatrix() math.Mat4 {
	world := math.NewMat4Scale(o.Scale, o.Scale, o.Scale)
	world = world.Mul(math.NewMat4RotationX(math.DegToRad(o.Rotation.X)))
	world = world.Mul(math.NewMat4RotationY(math.DegToRad(o.Rotation.Y)))
	world = world.Mul(math.NewMat4RotationZ(math.DegToRad(o.Rotation.Z)))
	world = world.Mul(math.NewMat4Translation(o.Position.X, o.Position.Y, o.Position.Z))
	return world
}
