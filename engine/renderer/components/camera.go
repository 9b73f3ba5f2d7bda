package components

import (
	"github.com/spaghettifunk/anima/engine/math"
)

/**
 * @brief Represents the viewer. The view transform is a plain translation
 * by the negated position; there is no camera rotation.
 */
type Camera struct {
	/** @brief The position of this camera. */
	Position math.Vec3
	/** @brief Vertical field of view in degrees. */
	FovDegrees float32
	/** @brief Near clipping plane distance. */
	Near float32
	/** @brief Far clipping plane distance. */
	Far float32
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

func NewCamera(fovDegrees, near, far float32) *Camera {
	return &Camera{
		Position:   math.NewVec3Zero(),
		FovDegrees: fovDegrees,
		Near:       near,
		Far:        far,
	}
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
}

func (c *Camera) Move(delta math.Vec3) {
	c.Position = c.Position.Add(delta)
}

// View returns the world to view transform.
func (c *Camera) View() math.Mat4 {
	return math.NewMat4Translation(-c.Position.X, -c.Position.Y, -c.Position.Z)
}

// Projection returns the perspective transform for the given aspect ratio
// (height / width).
func (c *Camera) Projection(aspectRatio float32) math.Mat4 {
	return math.NewMat4Projection(c.FovDegrees, aspectRatio, c.Near, c.Far)
}
