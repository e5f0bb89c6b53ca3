// Package app wires the HandyPi tracking pipeline: camera frames in,
// gesture events out to the broker.
package app

import (
	"sync"

	"github.com/lasaths/HandyPi/internal/capture"
	"github.com/lasaths/HandyPi/internal/detector"
	"github.com/lasaths/HandyPi/internal/gesture"
	"github.com/lasaths/HandyPi/internal/messaging"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while the scene is static.
	IdleFPS = 5
	// ActiveFPS is the frame rate while motion is seen.
	ActiveFPS = 15
	// IdleTimeoutMs is how long after the last motion the pipeline drops
	// back to the idle frame rate.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the tracker.
type Config struct {
	Camera    capture.Camera
	Detector  detector.Detector
	Measure   gesture.Measure
	Publisher messaging.Publisher

	// Threshold is the activation threshold fed to the state machine.
	Threshold float64

	// Display opens a preview window with tracking overlays. The window's
	// 'q' or ESC key stops the pipeline.
	Display     bool
	WindowTitle string

	// MotionThresh enables the motion FPS governor when positive: the
	// percentage of changed pixels that counts as motion.
	MotionThresh float64

	// IdleFPS and ActiveFPS override the pipeline timing constants when
	// positive.
	IdleFPS   int
	ActiveFPS int
}

// Stats is a snapshot of pipeline counters for the status API.
type Stats struct {
	Frames    uint64  `json:"frames"`
	Triggers  uint64  `json:"triggers"`
	Positions uint64  `json:"positions"`
	Dropped   uint64  `json:"dropped"`
	FPS       float64 `json:"fps"`
	Active    bool    `json:"active"`
	Enabled   bool    `json:"enabled"`
}

// App runs the tracking pipeline: a single synchronous loop in which no
// frame is processed before the previous frame's publish step completes.
type App struct {
	config  Config
	machine *gesture.StateMachine
	motion  *capture.MotionDetector

	mu        sync.RWMutex
	enabled   bool
	stats     Stats
	onTrigger func(active bool)
}

// New creates a new App with the given configuration.
func New(config Config) *App {
	if config.IdleFPS <= 0 {
		config.IdleFPS = IdleFPS
	}
	if config.ActiveFPS <= 0 {
		config.ActiveFPS = ActiveFPS
	}
	if config.WindowTitle == "" {
		config.WindowTitle = "HandyPi"
	}

	a := &App{
		config:  config,
		machine: gesture.NewStateMachine(config.Threshold),
		enabled: true,
	}

	if config.MotionThresh > 0 {
		a.motion = capture.NewMotionDetector(config.MotionThresh)
	}

	return a
}

// SetEnabled enables or disables frame processing. While disabled, frames
// are skipped and the activation state is held.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
	a.stats.Enabled = enabled
}

// IsEnabled returns whether frame processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// OnTrigger sets a callback invoked on every activation-state edge, after
// the publish attempt.
func (a *App) OnTrigger(fn func(active bool)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onTrigger = fn
}

// Stats returns a snapshot of the pipeline counters.
func (a *App) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s := a.stats
	s.Enabled = a.enabled
	return s
}

func (a *App) recordFrame(fps float64, active bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.Frames++
	a.stats.FPS = fps
	a.stats.Active = active
}

func (a *App) noteTrigger() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.Triggers++
}

func (a *App) notePosition() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.Positions++
}

func (a *App) noteDrop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.Dropped++
}

func (a *App) notifyTrigger(active bool) {
	a.mu.RLock()
	fn := a.onTrigger
	a.mu.RUnlock()

	if fn != nil {
		fn(active)
	}
}
