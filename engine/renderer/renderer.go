package renderer

import (
	"fmt"

	"github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/renderer/components"
	"github.com/spaghettifunk/anima/engine/renderer/metadata"
)

// Renderer owns the software framebuffer and the backend it is presented to.
// All drawing primitives of the embedded Framebuffer are available directly.
type Renderer struct {
	*Framebuffer
	backend RendererBackend
}

func New(width, height int, backend RendererBackend) *Renderer {
	return &Renderer{
		Framebuffer: NewFramebuffer(width, height),
		backend:     backend,
	}
}

// AspectRatio returns height / width, the form the projection expects.
func (r *Renderer) AspectRatio() float32 {
	if r.Width == 0 {
		return 1
	}
	return float32(r.Height) / float32(r.Width)
}

// DrawTriangleScreen draws a screen-space triangle, truncating coordinates
// to whole pixels.
func (r *Renderer) DrawTriangleScreen(tri math.Triangle, c Color) {
	p := &tri.Points
	r.DrawLineF(p[0].X, p[0].Y, p[1].X, p[1].Y, c)
	r.DrawLineF(p[1].X, p[1].Y, p[2].X, p[2].Y, c)
	r.DrawLineF(p[2].X, p[2].Y, p[0].X, p[0].Y, c)
}

// DrawMesh projects every triangle of mesh through transform (local space to
// clip space) and draws it as a wireframe. Triangles touching or crossing
// the camera plane (w <= 0) are skipped.
func (r *Renderer) DrawMesh(mesh *metadata.Mesh, transform math.Mat4, c Color) {
	r.DrawMeshClipped(mesh, transform, 0, c)
}

// DrawMeshClipped is DrawMesh with an explicit near distance: a triangle is
// dropped whole as soon as one of its vertices has w <= near.
func (r *Renderer) DrawMeshClipped(mesh *metadata.Mesh, transform math.Mat4, near float32, c Color) {
	if mesh == nil {
		return
	}
	for _, tri := range mesh.Triangles {
		if projected, ok := r.project(tri, transform, near); ok {
			r.DrawTriangleScreen(projected, c)
		}
	}
}

func (r *Renderer) project(tri math.Triangle, transform math.Mat4, near float32) (math.Triangle, bool) {
	var out math.Triangle
	for i := 0; i < 3; i++ {
		v, w := math.MultiplyMatrixVector(tri.Points[i], transform)
		if w <= near {
			return out, false
		}
		out.Points[i] = math.NDCToScreen(math.PerspectiveDivide(v, w), r.Width, r.Height)
	}
	return out, true
}

// DrawObject draws mesh placed by obj and seen through camera. Triangles
// closer than the camera's near plane are not drawn.
func (r *Renderer) DrawObject(obj *metadata.Object, mesh *metadata.Mesh, camera *components.Camera, c Color) {
	transform := obj.WorldMatrix().Mul(camera.View()).Mul(camera.Projection(r.AspectRatio()))
	r.DrawMeshClipped(mesh, transform, camera.Near, c)
}

// Present hands the whole framebuffer to the backend.
func (r *Renderer) Present() error {
	if r.backend == nil {
		return nil
	}
	if err := r.backend.Present(r.Pix, r.Width, r.Height); err != nil {
		return fmt.Errorf("present %dx%d frame: %w", r.Width, r.Height, err)
	}
	return nil
}
