package renderer

import "math"

// GUARD_BAND is how far past the buffer edges a line may reach before it is
// clipped ahead of the Bresenham walk. Lines inside the band are walked as
// is, so their pixels never depend on the clip.
const GUARD_BAND = 64

// Framebuffer is a width x height grid of RGBA8 samples stored row-major in
// Pix, four bytes per pixel. Row 0 is the first row handed to the presenter;
// with the GL backend that is the bottom scanline, matching the y-up
// viewport mapping.
//
// Every drawing primitive clips against the buffer bounds.
type Framebuffer struct {
	Pix    []uint8
	Width  int
	Height int
}

func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize recreates the backing storage for a new resolution and clears it.
func (fb *Framebuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	fb.Width = width
	fb.Height = height
	fb.Pix = make([]uint8, width*height*4)
	fb.Clear(Black)
}

// Clear fills the entire buffer with c.
func (fb *Framebuffer) Clear(c Color) {
	if len(fb.Pix) == 0 {
		return
	}
	fb.Pix[0], fb.Pix[1], fb.Pix[2], fb.Pix[3] = c.R, c.G, c.B, c.A
	// doubling copy fill
	for filled := 4; filled < len(fb.Pix); filled *= 2 {
		copy(fb.Pix[filled:], fb.Pix[:filled])
	}
}

// At returns the color at (x, y), or the zero color when out of bounds.
func (fb *Framebuffer) At(x, y int) Color {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return Color{}
	}
	i := (y*fb.Width + x) * 4
	return Color{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]}
}

// DrawPoint writes a single pixel. Off-buffer writes are ignored.
func (fb *Framebuffer) DrawPoint(x, y int, c Color) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.Pix[i] = c.R
	fb.Pix[i+1] = c.G
	fb.Pix[i+2] = c.B
	fb.Pix[i+3] = c.A
}

// DrawLine plots the integer Bresenham line from (x1, y1) to (x2, y2),
// both endpoints included.
func (fb *Framebuffer) DrawLine(x1, y1, x2, y2 int, c Color) {
	ax, ay, bx, by := float64(x1), float64(y1), float64(x2), float64(y2)
	if !fb.inGuardBand(ax, ay) || !fb.inGuardBand(bx, by) {
		var ok bool
		if ax, ay, bx, by, ok = fb.clipToGuardBand(ax, ay, bx, by); !ok {
			return
		}
		x1, y1 = int(math.Round(ax)), int(math.Round(ay))
		x2, y2 = int(math.Round(bx)), int(math.Round(by))
	}
	fb.bresenham(x1, y1, x2, y2, c)
}

// DrawLineF draws a line between sub-pixel endpoints, truncating them to
// whole pixels. Segments with a NaN or infinite endpoint are dropped.
func (fb *Framebuffer) DrawLineF(x1, y1, x2, y2 float32, c Color) {
	ax, ay, bx, by := float64(x1), float64(y1), float64(x2), float64(y2)
	for _, v := range [4]float64{ax, ay, bx, by} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}
	if !fb.inGuardBand(ax, ay) || !fb.inGuardBand(bx, by) {
		var ok bool
		if ax, ay, bx, by, ok = fb.clipToGuardBand(ax, ay, bx, by); !ok {
			return
		}
	}
	fb.bresenham(int(ax), int(ay), int(bx), int(by), c)
}

func (fb *Framebuffer) inGuardBand(x, y float64) bool {
	return x >= -GUARD_BAND && x <= float64(fb.Width+GUARD_BAND) &&
		y >= -GUARD_BAND && y <= float64(fb.Height+GUARD_BAND)
}

// clipToGuardBand cuts the segment down to the buffer rectangle grown by
// GUARD_BAND on every side (Liang-Barsky). ok is false when nothing of the
// segment is left.
func (fb *Framebuffer) clipToGuardBand(x1, y1, x2, y2 float64) (float64, float64, float64, float64, bool) {
	minX, minY := float64(-GUARD_BAND), float64(-GUARD_BAND)
	maxX, maxY := float64(fb.Width+GUARD_BAND), float64(fb.Height+GUARD_BAND)

	dx, dy := x2-x1, y2-y1
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x1 - minX, maxX - x1, y1 - minY, maxY - y1}
	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

func (fb *Framebuffer) bresenham(x1, y1, x2, y2 int, c Color) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy

	for {
		fb.DrawPoint(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := err << 1
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawTriangle draws the closed outline p1 -> p2 -> p3 -> p1.
func (fb *Framebuffer) DrawTriangle(x1, y1, x2, y2, x3, y3 int, c Color) {
	fb.DrawLine(x1, y1, x2, y2, c)
	fb.DrawLine(x2, y2, x3, y3, c)
	fb.DrawLine(x3, y3, x1, y1, c)
}

// DrawCircle draws a midpoint circle outline. A radius of 0 draws nothing.
func (fb *Framebuffer) DrawCircle(xc, yc, radius int, c Color) {
	if radius == 0 {
		return
	}

	x := 0
	y := radius
	p := 3 - 2*radius

	for y >= x {
		fb.DrawPoint(xc-x, yc-y, c)
		fb.DrawPoint(xc-y, yc-x, c)
		fb.DrawPoint(xc+y, yc-x, c)
		fb.DrawPoint(xc+x, yc-y, c)
		fb.DrawPoint(xc-x, yc+y, c)
		fb.DrawPoint(xc-y, yc+x, c)
		fb.DrawPoint(xc+y, yc+x, c)
		fb.DrawPoint(xc+x, yc+y, c)

		if p < 0 {
			p += 4*x + 6
		} else {
			p += 4*(x-y) + 10
			y--
		}
		x++
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
