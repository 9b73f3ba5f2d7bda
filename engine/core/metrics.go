package core

import "github.com/spaghettifunk/anima/engine/containers"

const AVG_COUNT int = 30

// Metrics keeps a rolling frame time average and a frames-per-second counter.
type Metrics struct {
	frameTimes         *containers.RingQueue[float64]
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewMetrics() *Metrics {
	return &Metrics{
		frameTimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

// Update records one frame that took frameElapsedTime seconds. It reports
// true whenever a full second has been accumulated and FPS was refreshed.
func (m *Metrics) Update(frameElapsedTime float64) bool {
	frameMS := frameElapsedTime * 1000.0

	if m.frameTimes.IsFull() {
		_, _ = m.frameTimes.Dequeue()
	}
	_ = m.frameTimes.Enqueue(frameMS)

	sum := 0.0
	for _, v := range m.frameTimes.Values() {
		sum += v
	}
	m.msAvg = sum / float64(m.frameTimes.Len())

	// Count all frames.
	m.frames++

	refreshed := false
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
		refreshed = true
	}
	return refreshed
}

func (m *Metrics) FPS() float64 {
	return m.fps
}

func (m *Metrics) FrameTime() float64 {
	return m.msAvg
}

func (m *Metrics) Frame() (float64, float64) {
	return m.fps, m.msAvg
}
