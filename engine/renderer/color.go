package renderer

// Color is one RGBA8 framebuffer sample.
type Color struct {
	R, G, B, A uint8
}

var (
	White = Color{255, 255, 255, 255}
	Black = Color{0, 0, 0, 255}
	Red   = Color{255, 0, 0, 255}
	Green = Color{0, 255, 0, 255}
	Blue  = Color{0, 0, 255, 255}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}
