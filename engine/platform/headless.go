package platform

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/systems"
	"golang.org/x/image/bmp"
)

type HeadlessConfig struct {
	// Frames to run before stopping. Zero runs until the frame callback
	// asks to stop.
	Frames int `toml:"Frames" yaml:"frames"`
	// Write a snapshot every SnapshotEvery frames. Zero disables snapshots.
	SnapshotEvery int `toml:"SnapshotEvery" yaml:"snapshot_every"`
	// Directory the BMP snapshots are written to.
	OutputDir string `toml:"OutputDir" yaml:"output_dir"`
	// Progress receives a progress bar when Frames is set. Nil disables it.
	Progress io.Writer `toml:"-" yaml:"-"`
}

// SNAPSHOT_QUEUE is how many snapshots may wait for the encoder.
const SNAPSHOT_QUEUE int = 8

// HeadlessPlatform runs without a window. No key is ever down. Snapshots
// are encoded on a job worker from a copy of the frame.
type HeadlessPlatform struct {
	config HeadlessConfig
	frames int
	jobs   *systems.JobSystem

	mutex     sync.Mutex
	snapshots []string
	failures  []error
}

func NewHeadlessPlatform(config HeadlessConfig) *HeadlessPlatform {
	return &HeadlessPlatform{config: config}
}

func (p *HeadlessPlatform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if p.config.SnapshotEvery > 0 && p.config.OutputDir != "" {
		if err := os.MkdirAll(p.config.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
		jobs, err := systems.NewJobSystem(1, SNAPSHOT_QUEUE)
		if err != nil {
			return err
		}
		p.jobs = jobs
	}
	core.LogInfo("headless '%s' %dx%d, %d frames", applicationName, width, height, p.config.Frames)
	return nil
}

func (p *HeadlessPlatform) Run(frame func() bool) error {
	var bar *progressbar.ProgressBar
	if p.config.Frames > 0 && p.config.Progress != nil {
		bar = progressbar.NewOptions(p.config.Frames,
			progressbar.OptionSetWriter(p.config.Progress),
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionShowCount(),
		)
		defer bar.Finish()
	}

	for i := 0; p.config.Frames <= 0 || i < p.config.Frames; i++ {
		if !frame() {
			break
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return nil
}

func (p *HeadlessPlatform) IsKeyDown(key core.KeyCode) bool {
	return false
}

func (p *HeadlessPlatform) Present(pixels []uint8, width int, height int) error {
	p.frames++
	every := p.config.SnapshotEvery
	if p.jobs == nil || every <= 0 || p.frames%every != 0 {
		return nil
	}
	path := filepath.Join(p.config.OutputDir, fmt.Sprintf("frame_%05d.bmp", p.frames))
	frame := append([]uint8(nil), pixels...)
	p.jobs.Submit(systems.JobTask{
		OnStart: func() error {
			return writeSnapshot(path, frame, width, height)
		},
		OnComplete: func() {
			p.mutex.Lock()
			p.snapshots = append(p.snapshots, path)
			p.mutex.Unlock()
			core.LogDebug("snapshot %s", path)
		},
		OnFailure: func(err error) {
			p.mutex.Lock()
			p.failures = append(p.failures, err)
			p.mutex.Unlock()
		},
	})
	return nil
}

// Shutdown waits for pending snapshots and reports the first one that
// could not be written.
func (p *HeadlessPlatform) Shutdown() error {
	if p.jobs != nil {
		if err := p.jobs.Shutdown(); err != nil {
			return err
		}
		p.jobs = nil
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if len(p.failures) > 0 {
		return p.failures[0]
	}
	return nil
}

// Frames returns how many frames were presented.
func (p *HeadlessPlatform) Frames() int {
	return p.frames
}

// Snapshots returns the files written so far.
func (p *HeadlessPlatform) Snapshots() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]string(nil), p.snapshots...)
}

func writeSnapshot(path string, pixels []uint8, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	flipRows(img.Pix, pixels, width, height)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	if err := bmp.Encode(f, img); err != nil {
		return fmt.Errorf("encode snapshot %s: %w", path, err)
	}
	return nil
}

// flipRows writes src into dst with the row order reversed.
func flipRows(dst, src []uint8, width, height int) {
	stride := width * 4
	for y := 0; y < height; y++ {
		copy(dst[(height-1-y)*stride:(height-y)*stride], src[y*stride:(y+1)*stride])
	}
}
