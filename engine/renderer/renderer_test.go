package renderer

import (
	"errors"
	"testing"
	"time"

	"github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/renderer/components"
	"github.com/spaghettifunk/anima/engine/renderer/metadata"
)

type fakeBackend struct {
	frames int
	last   []uint8
	width  int
	height int
	err    error
}

func (f *fakeBackend) Present(pixels []uint8, width, height int) error {
	f.frames++
	f.last = append(f.last[:0], pixels...)
	f.width, f.height = width, height
	return f.err
}

func TestAspectRatioIsHeightOverWidth(t *testing.T) {
	r := New(800, 600, nil)
	if got := r.AspectRatio(); got != 0.75 {
		t.Fatalf("AspectRatio() = %v, want 0.75", got)
	}
}

func TestDrawObjectStaysOnScreen(t *testing.T) {
	r := New(100, 100, nil)
	cube := metadata.NewUnitCube("cube")
	obj := metadata.NewObject(0)
	obj.Position = math.NewVec3(0, 0, 8)
	cam := components.NewCamera(90, 0.1, 100)

	r.DrawObject(obj, cube, cam, White)

	transform := obj.WorldMatrix().Mul(cam.View()).Mul(cam.Projection(r.AspectRatio()))
	vertices := 0
	for _, tri := range cube.Triangles {
		for _, p := range tri.Points {
			v := math.ProjectToViewport(p, transform, r.Width, r.Height)
			if v.X < 0 || v.X > float32(r.Width) || v.Y < 0 || v.Y > float32(r.Height) {
				t.Fatalf("vertex %v projected to (%v,%v), outside the viewport", p, v.X, v.Y)
			}
			vertices++
		}
	}
	if vertices != 36 {
		t.Fatalf("projected %d vertices, want 36", vertices)
	}

	drawn := 0
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if r.At(x, y) != White {
				continue
			}
			drawn++
			// the cube spans roughly [46, 54] on both axes
			if x < 40 || x > 60 || y < 40 || y > 60 {
				t.Fatalf("pixel (%d,%d) outside the expected cube footprint", x, y)
			}
		}
	}
	if drawn == 0 {
		t.Fatalf("nothing was drawn")
	}
}

func TestDrawObjectUsesCameraPosition(t *testing.T) {
	r := New(100, 100, nil)
	cube := metadata.NewUnitCube("cube")
	obj := metadata.NewObject(0)
	obj.Position = math.NewVec3(0, 0, 8)
	cam := components.NewCamera(90, 0.1, 100)
	// moving the camera right shifts the cube left on screen
	cam.SetPosition(math.NewVec3(4, 0, 0))

	r.DrawObject(obj, cube, cam, White)

	for y := 0; y < r.Height; y++ {
		for x := 50; x < r.Width; x++ {
			if r.At(x, y) == White {
				t.Fatalf("pixel (%d,%d) drawn right of centre", x, y)
			}
		}
	}
}

func TestDrawObjectOnCameraPlane(t *testing.T) {
	cube := metadata.NewUnitCube("cube")
	cam := components.NewCamera(90, 0.1, 100)

	for _, z := range []float32{1e-3, 1e-5, 1e-6} {
		r := New(100, 100, nil)
		obj := metadata.NewObject(0)
		// the nearest face of the cube sits z in front of the camera
		obj.Position = math.NewVec3(0, 0, z+0.5)

		start := time.Now()
		r.DrawObject(obj, cube, cam, White)
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Fatalf("z=%v: DrawObject took %v", z, elapsed)
		}

		// only the far face is left once the near triangles are culled
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				if r.At(x, y) == White && (x < 20 || x > 80 || y < 20 || y > 80) {
					t.Fatalf("z=%v: pixel (%d,%d) drawn outside the far face", z, x, y)
				}
			}
		}
	}
}

func TestDrawMeshSkipsTrianglesBehindCamera(t *testing.T) {
	r := New(10, 10, nil)
	mesh := metadata.NewMesh("tri")
	mesh.AddTriangle(math.Triangle{Points: [3]math.Vec3{
		math.NewVec3(0, 0, 0), math.NewVec3(0.5, 0, 0), math.NewVec3(0, 0.5, 0),
	}})
	proj := math.NewMat4Projection(90, 1, 0.1, 100)

	// every vertex has z = w = 0
	r.DrawMesh(mesh, proj, White)
	if n := countColor(r.Framebuffer, White); n != 0 {
		t.Fatalf("plotted %d pixels for a triangle on the camera plane", n)
	}

	r.DrawMesh(mesh, math.NewMat4Translation(0, 0, 2).Mul(proj), White)
	if n := countColor(r.Framebuffer, White); n == 0 {
		t.Fatalf("triangle in front of the camera was not drawn")
	}

	r.Clear(Black)
	r.DrawMeshClipped(mesh, math.NewMat4Translation(0, 0, 2).Mul(proj), 3, White)
	if n := countColor(r.Framebuffer, White); n != 0 {
		t.Fatalf("plotted %d pixels for a triangle closer than near", n)
	}
}

func TestDrawMeshNil(t *testing.T) {
	r := New(10, 10, nil)
	r.DrawMesh(nil, math.NewMat4Identity(), White)
	if n := countColor(r.Framebuffer, White); n != 0 {
		t.Fatalf("plotted %d pixels, want 0", n)
	}
}

func TestPresentForwardsPixels(t *testing.T) {
	backend := &fakeBackend{}
	r := New(3, 2, backend)
	r.Clear(Green)
	if err := r.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if backend.frames != 1 || backend.width != 3 || backend.height != 2 {
		t.Fatalf("backend saw %d frames of %dx%d", backend.frames, backend.width, backend.height)
	}
	if len(backend.last) != 24 || backend.last[1] != Green.G {
		t.Fatalf("backend received unexpected pixels %v", backend.last)
	}
}

func TestPresentWrapsError(t *testing.T) {
	boom := errors.New("boom")
	r := New(1, 1, &fakeBackend{err: boom})
	if err := r.Present(); !errors.Is(err, boom) {
		t.Fatalf("Present() error = %v, want wrapped %v", err, boom)
	}
}
