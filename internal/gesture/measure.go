package gesture

import (
	"github.com/lasaths/HandyPi/internal/detector"
)

// minReferenceScale is the smallest usable reference-landmark distance.
// Below it the scale falls back to 1.0 to avoid division blow-up when the
// reference pair collapses (e.g. undetected shoulders reported at 0,0).
const minReferenceScale = 1e-3

// Measure derives a scalar gesture score and an anchor point from one
// subject's keypoints. Smaller scores mean "more active". Score reports
// ok=false when a required keypoint is unavailable, which always
// classifies as not active.
type Measure interface {
	Score(kp *detector.Keypoints) (float64, bool)
	Anchor(kp *detector.Keypoints) (detector.Point, bool)
}

// PinchMeasure scores a hand by the raw pixel distance between the thumb
// tip and index tip. Close-range hand tracking does not need scale
// normalization. The anchor is the pinch point, the midpoint of the two
// tips.
type PinchMeasure struct{}

// Score returns the thumb-to-index tip distance in pixels.
func (PinchMeasure) Score(kp *detector.Keypoints) (float64, bool) {
	thumb, ok := kp.At(detector.ThumbTip)
	if !ok {
		return 0, false
	}
	index, ok := kp.At(detector.IndexTip)
	if !ok {
		return 0, false
	}
	return detector.Distance(thumb, index), true
}

// Anchor returns the midpoint between the thumb tip and index tip.
func (PinchMeasure) Anchor(kp *detector.Keypoints) (detector.Point, bool) {
	thumb, ok := kp.At(detector.ThumbTip)
	if !ok {
		return detector.Point{}, false
	}
	index, ok := kp.At(detector.IndexTip)
	if !ok {
		return detector.Point{}, false
	}
	return detector.Midpoint(thumb, index), true
}

// RaiseMeasure scores a body pose by the distance between the right wrist
// and the nose, divided by the shoulder distance. The normalization keeps
// the score comparable across camera distances. The anchor is the right
// wrist.
type RaiseMeasure struct{}

// Score returns dist(right wrist, nose) / shoulder scale.
func (RaiseMeasure) Score(kp *detector.Keypoints) (float64, bool) {
	nose, ok := kp.At(detector.Nose)
	if !ok {
		return 0, false
	}
	wrist, ok := kp.At(detector.RightWrist)
	if !ok {
		return 0, false
	}
	return detector.Distance(wrist, nose) / bodyScale(kp), true
}

// Anchor returns the right wrist position.
func (RaiseMeasure) Anchor(kp *detector.Keypoints) (detector.Point, bool) {
	return kp.At(detector.RightWrist)
}

// bodyScale estimates body size as the distance between the shoulders,
// falling back to 1.0 when the shoulders are missing or degenerate.
func bodyScale(kp *detector.Keypoints) float64 {
	left, ok := kp.At(detector.LeftShoulder)
	if !ok {
		return 1.0
	}
	right, ok := kp.At(detector.RightShoulder)
	if !ok {
		return 1.0
	}

	scale := detector.Distance(left, right)
	if scale < minReferenceScale {
		return 1.0
	}
	return scale
}
