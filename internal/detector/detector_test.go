package detector

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}

	if got := Distance(a, b); got != 5 {
		t.Errorf("Distance(%v, %v) = %v, want 5", a, b, got)
	}

	if got := Distance(a, a); got != 0 {
		t.Errorf("Distance to self = %v, want 0", got)
	}
}

func TestMidpoint(t *testing.T) {
	a := Point{X: 10, Y: 20}
	b := Point{X: 30, Y: 40}

	mid := Midpoint(a, b)
	if mid.X != 20 || mid.Y != 30 {
		t.Errorf("Midpoint(%v, %v) = %v, want {20 30}", a, b, mid)
	}
}

func TestKeypoints_At(t *testing.T) {
	kp := PinchingHandKeypoints()

	if _, ok := kp.At(ThumbTip); !ok {
		t.Error("expected thumb tip to exist in hand fixture")
	}

	if _, ok := kp.At(NumHandKeypoints); ok {
		t.Error("expected out-of-range index to report missing")
	}

	if _, ok := kp.At(-1); ok {
		t.Error("expected negative index to report missing")
	}

	var nilKp *Keypoints
	if _, ok := nilKp.At(0); ok {
		t.Error("expected nil keypoints to report missing")
	}
}

func TestBest(t *testing.T) {
	if got := Best(nil); got != nil {
		t.Errorf("Best(nil) = %v, want nil", got)
	}

	subjects := []Keypoints{
		{Label: "a", Score: 0.4},
		{Label: "b", Score: 0.9},
		{Label: "c", Score: 0.7},
	}

	best := Best(subjects)
	if best == nil || best.Label != "b" {
		t.Errorf("Best() = %v, want subject b", best)
	}
}

func TestPinchingHandKeypoints_TipsClose(t *testing.T) {
	kp := PinchingHandKeypoints()

	if len(kp.Points) != NumHandKeypoints {
		t.Fatalf("expected %d hand keypoints, got %d", NumHandKeypoints, len(kp.Points))
	}

	dist := Distance(kp.Points[ThumbTip], kp.Points[IndexTip])
	if dist >= 40 {
		t.Errorf("pinching fixture tips %0.1fpx apart, want < 40", dist)
	}
}

func TestOpenHandKeypoints_TipsApart(t *testing.T) {
	kp := OpenHandKeypoints()

	dist := Distance(kp.Points[ThumbTip], kp.Points[IndexTip])
	if dist <= 40 {
		t.Errorf("open-hand fixture tips %0.1fpx apart, want > 40", dist)
	}
}

func TestRaisedWristKeypoints_WristNearHead(t *testing.T) {
	kp := RaisedWristKeypoints()

	if len(kp.Points) != NumBodyKeypoints {
		t.Fatalf("expected %d body keypoints, got %d", NumBodyKeypoints, len(kp.Points))
	}

	shoulders := Distance(kp.Points[LeftShoulder], kp.Points[RightShoulder])
	ratio := Distance(kp.Points[RightWrist], kp.Points[Nose]) / shoulders
	if ratio >= 0.7 {
		t.Errorf("raised-wrist fixture ratio %0.3f, want < 0.7", ratio)
	}

	standing := StandingKeypoints()
	ratio = Distance(standing.Points[RightWrist], standing.Points[Nose]) / shoulders
	if ratio <= 0.7 {
		t.Errorf("standing fixture ratio %0.3f, want > 0.7", ratio)
	}
}

func TestMockDetector_Sequence(t *testing.T) {
	m := NewMockDetector()
	m.SetSubjects([]Keypoints{StandingKeypoints()})
	m.SetSequence([][]Keypoints{
		{RaisedWristKeypoints()},
		nil,
	})

	first, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(first) != 1 || first[0].Points[RightWrist].Y != 130 {
		t.Errorf("first frame should return the raised-wrist entry, got %v", first)
	}

	second, _ := m.Detect(nil)
	if len(second) != 0 {
		t.Errorf("second frame should return no subjects, got %d", len(second))
	}

	// Sequence exhausted, fall back to fixed subjects
	third, _ := m.Detect(nil)
	if len(third) != 1 || third[0].Label != "person" {
		t.Errorf("third frame should fall back to fixed subjects, got %v", third)
	}

	if math.IsNaN(third[0].Score) {
		t.Error("fixture score should be a number")
	}
}
