package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/lasaths/HandyPi/internal/detector"
	"github.com/lasaths/HandyPi/internal/gesture"
	"github.com/lasaths/HandyPi/internal/render"
)

const (
	keyQuit   = 'q'
	keyEscape = 27

	targetSize = 20
)

// Run executes the tracking loop until the context is cancelled, the
// preview window is closed with 'q' or ESC, or a camera/detector error
// occurs. Camera read and detection failures stop the loop; the caller
// decides whether to restart.
func (a *App) Run(ctx context.Context) error {
	cfg := a.config

	if err := cfg.Camera.Open(); err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	defer cfg.Camera.Close()
	defer func() {
		if err := cfg.Detector.Close(); err != nil {
			log.Printf("Failed to close detector: %v", err)
		}
	}()
	defer func() {
		if err := cfg.Publisher.Close(); err != nil {
			log.Printf("Failed to close publisher: %v", err)
		}
	}()
	if a.motion != nil {
		defer a.motion.Close()
	}

	var window *gocv.Window
	if cfg.Display {
		window = gocv.NewWindow(cfg.WindowTitle)
		defer window.Close()
	}

	// Without a motion governor the camera always runs at active FPS.
	activeMode := a.motion == nil
	fpsTarget := cfg.IdleFPS
	if activeMode {
		fpsTarget = cfg.ActiveFPS
	}
	cfg.Camera.SetFPS(fpsTarget)

	ticker := time.NewTicker(frameInterval(fpsTarget))
	defer ticker.Stop()

	lastMotion := time.Now()
	prevFrame := time.Now()
	fps := 0.0

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if !a.IsEnabled() {
			continue
		}

		frame, err := cfg.Camera.ReadFrame()
		if err != nil {
			return fmt.Errorf("failed to read frame: %w", err)
		}

		if a.motion != nil {
			moving, _ := a.motion.Detect(frame)
			switch {
			case moving:
				lastMotion = time.Now()
				if !activeMode {
					activeMode = true
					cfg.Camera.SetFPS(cfg.ActiveFPS)
					ticker.Reset(frameInterval(cfg.ActiveFPS))
				}
			case activeMode && time.Since(lastMotion) > IdleTimeoutMs*time.Millisecond:
				activeMode = false
				cfg.Camera.SetFPS(cfg.IdleFPS)
				ticker.Reset(frameInterval(cfg.IdleFPS))
			}
		}

		subjects, err := cfg.Detector.Detect(frame)
		if err != nil {
			frame.Close()
			return fmt.Errorf("detection failed: %w", err)
		}

		best := detector.Best(subjects)
		obs := a.observe(best, frame.Cols(), frame.Rows())
		trigger, position := a.machine.Step(obs)
		a.publish(ctx, trigger, position)

		now := time.Now()
		if dt := now.Sub(prevFrame).Seconds(); dt > 0 {
			if fps > 0 {
				fps = 0.9*fps + 0.1*(1.0/dt)
			} else {
				fps = 1.0 / dt
			}
		}
		prevFrame = now
		a.recordFrame(fps, a.machine.Active())

		if window != nil {
			render.Keypoints(frame, best)
			if a.machine.Active() && obs.ScoreOK {
				render.Target(frame, obs.Anchor, targetSize)
			}
			render.FPS(frame, fps)

			window.IMShow(*frame)
			if key := window.WaitKey(1); key == keyQuit || key == keyEscape {
				frame.Close()
				return nil
			}
		}

		frame.Close()
	}
}

// observe builds the state machine input for one frame. A frame with no
// subject, or whose best subject is missing the measure's landmarks,
// yields an observation with no score.
func (a *App) observe(best *detector.Keypoints, width, height int) gesture.Observation {
	obs := gesture.Observation{FrameWidth: width, FrameHeight: height}
	if best == nil {
		return obs
	}

	score, ok := a.config.Measure.Score(best)
	if !ok {
		return obs
	}
	anchor, ok := a.config.Measure.Anchor(best)
	if !ok {
		return obs
	}

	obs.Score = score
	obs.ScoreOK = true
	obs.Anchor = anchor
	return obs
}

// publish sends the edge events for one frame. Publish failures are
// logged and counted; the loop keeps tracking.
func (a *App) publish(ctx context.Context, trigger *gesture.TriggerEvent, position *gesture.PositionEvent) {
	if trigger == nil {
		return
	}

	if err := a.config.Publisher.PublishTrigger(ctx, trigger.Active); err != nil {
		log.Printf("Failed to publish trigger event: %v", err)
		a.noteDrop()
	} else {
		a.noteTrigger()
	}

	if position != nil {
		if err := a.config.Publisher.PublishPosition(ctx, position.X, position.Y); err != nil {
			log.Printf("Failed to publish position event: %v", err)
			a.noteDrop()
		} else {
			a.notePosition()
		}
	}

	a.notifyTrigger(trigger.Active)
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = IdleFPS
	}
	return time.Second / time.Duration(fps)
}
