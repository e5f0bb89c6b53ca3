package gesture

import (
	"math"
	"testing"

	"github.com/lasaths/HandyPi/internal/detector"
)

func TestPinchMeasure_Score(t *testing.T) {
	kp := detector.PinchingHandKeypoints()

	score, ok := PinchMeasure{}.Score(&kp)
	if !ok {
		t.Fatal("expected score to be available for full hand")
	}

	want := detector.Distance(kp.Points[detector.ThumbTip], kp.Points[detector.IndexTip])
	if score != want {
		t.Errorf("score = %v, want raw pixel distance %v", score, want)
	}

	open := detector.OpenHandKeypoints()
	openScore, _ := PinchMeasure{}.Score(&open)
	if openScore <= score {
		t.Errorf("open hand score %v should exceed pinching score %v", openScore, score)
	}
}

func TestPinchMeasure_MissingLandmarks(t *testing.T) {
	cases := []struct {
		name string
		kp   detector.Keypoints
	}{
		{"empty", detector.Keypoints{}},
		{"too short", detector.Keypoints{Points: make([]detector.Point, detector.IndexTip)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := (PinchMeasure{}).Score(&tc.kp); ok {
				t.Error("expected score to be unavailable")
			}
			if _, ok := (PinchMeasure{}).Anchor(&tc.kp); ok {
				t.Error("expected anchor to be unavailable")
			}

			// An absent score must classify as not active at any threshold.
			m := NewStateMachine(math.MaxFloat64)
			score, ok := PinchMeasure{}.Score(&tc.kp)
			if trigger, _ := m.Step(Observation{Score: score, ScoreOK: ok, FrameWidth: 640, FrameHeight: 480}); trigger != nil {
				t.Errorf("absent score activated the state machine: %v", trigger)
			}
		})
	}
}

func TestPinchMeasure_Anchor(t *testing.T) {
	kp := detector.PinchingHandKeypoints()

	anchor, ok := PinchMeasure{}.Anchor(&kp)
	if !ok {
		t.Fatal("expected anchor for full hand")
	}

	want := detector.Midpoint(kp.Points[detector.ThumbTip], kp.Points[detector.IndexTip])
	if anchor != want {
		t.Errorf("anchor = %v, want tip midpoint %v", anchor, want)
	}
}

func TestRaiseMeasure_Score(t *testing.T) {
	kp := detector.RaisedWristKeypoints()

	score, ok := RaiseMeasure{}.Score(&kp)
	if !ok {
		t.Fatal("expected score for full body pose")
	}

	shoulders := detector.Distance(kp.Points[detector.LeftShoulder], kp.Points[detector.RightShoulder])
	want := detector.Distance(kp.Points[detector.RightWrist], kp.Points[detector.Nose]) / shoulders
	if math.Abs(score-want) > 1e-12 {
		t.Errorf("score = %v, want shoulder-normalized distance %v", score, want)
	}

	standing := detector.StandingKeypoints()
	standingScore, _ := RaiseMeasure{}.Score(&standing)
	if standingScore <= score {
		t.Errorf("lowered-arm score %v should exceed raised-wrist score %v", standingScore, score)
	}
}

func TestRaiseMeasure_DegenerateShouldersFallBack(t *testing.T) {
	// Shoulders collapsed to the same point: scale falls back to 1.0, so
	// the score equals the raw wrist-to-nose distance.
	kp := detector.RaisedWristKeypoints()
	kp.Points[detector.LeftShoulder] = detector.Point{X: 320, Y: 200}
	kp.Points[detector.RightShoulder] = detector.Point{X: 320, Y: 200}

	score, ok := RaiseMeasure{}.Score(&kp)
	if !ok {
		t.Fatal("expected score despite degenerate shoulders")
	}

	want := detector.Distance(kp.Points[detector.RightWrist], kp.Points[detector.Nose])
	if score != want {
		t.Errorf("score = %v, want unnormalized distance %v", score, want)
	}
}

func TestRaiseMeasure_MissingKeypoints(t *testing.T) {
	short := detector.Keypoints{Points: make([]detector.Point, detector.RightWrist)}

	if _, ok := (RaiseMeasure{}).Score(&short); ok {
		t.Error("expected score to be unavailable without the right wrist")
	}
	if _, ok := (RaiseMeasure{}).Anchor(&short); ok {
		t.Error("expected anchor to be unavailable without the right wrist")
	}
}

func TestRaiseMeasure_ShortPoseKeepsScale(t *testing.T) {
	// Nose and wrist present but shoulders missing: scale falls back to 1.0.
	kp := detector.Keypoints{Points: make([]detector.Point, detector.LeftShoulder)}
	kp.Points[detector.Nose] = detector.Point{X: 0, Y: 0}

	if got := bodyScale(&kp); got != 1.0 {
		t.Errorf("bodyScale without shoulders = %v, want 1.0", got)
	}
}

func TestRaiseMeasure_Anchor(t *testing.T) {
	kp := detector.RaisedWristKeypoints()

	anchor, ok := RaiseMeasure{}.Anchor(&kp)
	if !ok {
		t.Fatal("expected anchor for full body pose")
	}
	if anchor != kp.Points[detector.RightWrist] {
		t.Errorf("anchor = %v, want right wrist %v", anchor, kp.Points[detector.RightWrist])
	}
}
