package renderer

// RendererBackend is the display surface the framebuffer is handed to once
// per frame. Pixels are RGBA8, row-major, row 0 first.
type RendererBackend interface {
	Present(pixels []uint8, width, height int) error
}
