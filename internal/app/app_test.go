package app

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"gocv.io/x/gocv"

	"github.com/lasaths/HandyPi/internal/capture"
	"github.com/lasaths/HandyPi/internal/detector"
	"github.com/lasaths/HandyPi/internal/gesture"
	"github.com/lasaths/HandyPi/internal/messaging"
)

// testFrames builds n blank 640x480 frames and schedules their cleanup.
func testFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()

	frames := make([]*gocv.Mat, n)
	for i := range frames {
		mat := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
		frames[i] = &mat
	}
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})
	return frames
}

// runToExhaustion drives the pipeline until the mock camera runs out of
// frames, which Run reports as a read error.
func runToExhaustion(t *testing.T, a *App) {
	t.Helper()

	err := a.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should fail once the mock camera is exhausted")
	}
	if !strings.Contains(err.Error(), "no more frames") {
		t.Fatalf("Run() error = %v, want frame exhaustion", err)
	}
}

func TestApp_RaiseScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv-backed test in short mode")
	}

	camera := capture.NewMockCamera(testFrames(t, 5), false)

	det := detector.NewMockDetector()
	det.SetSequence([][]detector.Keypoints{
		{detector.StandingKeypoints()},
		{detector.RaisedWristKeypoints()},
		{detector.RaisedWristKeypoints()},
		{}, // subject lost
		{detector.StandingKeypoints()},
	})

	recorder := messaging.NewRecorderPublisher()

	a := New(Config{
		Camera:    camera,
		Detector:  det,
		Measure:   gesture.RaiseMeasure{},
		Publisher: recorder,
		Threshold: 0.7,
		ActiveFPS: 250,
	})

	runToExhaustion(t, a)

	events := recorder.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events %+v, want 3", len(events), events)
	}

	if events[0].Kind != messaging.KindTrigger || !events[0].Active {
		t.Errorf("event 0 = %+v, want trigger(true)", events[0])
	}
	if events[1].Kind != messaging.KindPosition {
		t.Fatalf("event 1 = %+v, want position", events[1])
	}
	// Raised wrist at (340, 130) on a 640x480 frame.
	if math.Abs(events[1].X-340.0/640.0) > 1e-9 || math.Abs(events[1].Y-130.0/480.0) > 1e-9 {
		t.Errorf("position = (%v, %v), want (%v, %v)", events[1].X, events[1].Y, 340.0/640.0, 130.0/480.0)
	}
	if events[2].Kind != messaging.KindTrigger || events[2].Active {
		t.Errorf("event 2 = %+v, want trigger(false)", events[2])
	}

	stats := a.Stats()
	if stats.Frames != 5 {
		t.Errorf("Frames = %d, want 5", stats.Frames)
	}
	if stats.Triggers != 2 || stats.Positions != 1 || stats.Dropped != 0 {
		t.Errorf("counters = %+v, want 2 triggers, 1 position, 0 dropped", stats)
	}
	if stats.Active {
		t.Error("pipeline should end idle")
	}
}

func TestApp_PublishFailureKeepsTracking(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv-backed test in short mode")
	}

	camera := capture.NewMockCamera(testFrames(t, 2), false)

	det := detector.NewMockDetector()
	det.SetSequence([][]detector.Keypoints{
		{detector.PinchingHandKeypoints()},
		{detector.OpenHandKeypoints()},
	})

	recorder := messaging.NewRecorderPublisher()
	recorder.SetError(errors.New("broker down"))

	a := New(Config{
		Camera:    camera,
		Detector:  det,
		Measure:   gesture.PinchMeasure{},
		Publisher: recorder,
		Threshold: 40,
		ActiveFPS: 250,
	})

	runToExhaustion(t, a)

	if got := len(recorder.Events()); got != 0 {
		t.Errorf("recorded %d events, want 0", got)
	}

	stats := a.Stats()
	if stats.Frames != 2 {
		t.Errorf("Frames = %d, want 2: publish failures must not stop the loop", stats.Frames)
	}
	// Frame 1 drops trigger(true) and position, frame 2 drops trigger(false).
	if stats.Dropped != 3 {
		t.Errorf("Dropped = %d, want 3", stats.Dropped)
	}
}

func TestApp_DetectorErrorStopsRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv-backed test in short mode")
	}

	camera := capture.NewMockCamera(testFrames(t, 1), true)

	det := detector.NewMockDetector()
	det.SetError(errors.New("service crashed"))

	a := New(Config{
		Camera:    camera,
		Detector:  det,
		Measure:   gesture.PinchMeasure{},
		Publisher: messaging.NewRecorderPublisher(),
		Threshold: 40,
		ActiveFPS: 250,
	})

	err := a.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "detection failed") {
		t.Fatalf("Run() error = %v, want detection failure", err)
	}
}

func TestApp_ContextCancelStopsRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv-backed test in short mode")
	}

	camera := capture.NewMockCamera(testFrames(t, 1), true)

	a := New(Config{
		Camera:    camera,
		Detector:  detector.NewMockDetector(),
		Measure:   gesture.PinchMeasure{},
		Publisher: messaging.NewRecorderPublisher(),
		Threshold: 40,
		ActiveFPS: 250,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run() with cancelled context = %v, want nil", err)
	}
}

func TestApp_OnTriggerCallback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv-backed test in short mode")
	}

	camera := capture.NewMockCamera(testFrames(t, 2), false)

	det := detector.NewMockDetector()
	det.SetSequence([][]detector.Keypoints{
		{detector.PinchingHandKeypoints()},
		{detector.OpenHandKeypoints()},
	})

	a := New(Config{
		Camera:    camera,
		Detector:  det,
		Measure:   gesture.PinchMeasure{},
		Publisher: messaging.NewRecorderPublisher(),
		Threshold: 40,
		ActiveFPS: 250,
	})

	var edges []bool
	a.OnTrigger(func(active bool) { edges = append(edges, active) })

	runToExhaustion(t, a)

	if len(edges) != 2 || !edges[0] || edges[1] {
		t.Errorf("callback edges = %v, want [true false]", edges)
	}
}

func TestApp_SetEnabled(t *testing.T) {
	a := New(Config{Threshold: 40})

	if !a.IsEnabled() {
		t.Fatal("new app should start enabled")
	}

	a.SetEnabled(false)
	if a.IsEnabled() {
		t.Error("SetEnabled(false) not applied")
	}
	if a.Stats().Enabled {
		t.Error("Stats().Enabled should follow SetEnabled")
	}

	a.SetEnabled(true)
	if !a.IsEnabled() {
		t.Error("SetEnabled(true) not applied")
	}
}
