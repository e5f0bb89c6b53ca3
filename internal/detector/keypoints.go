// Package detector provides keypoint detection interfaces and types for
// gesture tracking.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist            = 0
	ThumbCMC         = 1
	ThumbMCP         = 2
	ThumbIP          = 3
	ThumbTip         = 4
	IndexMCP         = 5
	IndexPIP         = 6
	IndexDIP         = 7
	IndexTip         = 8
	MiddleMCP        = 9
	MiddlePIP        = 10
	MiddleDIP        = 11
	MiddleTip        = 12
	RingMCP          = 13
	RingPIP          = 14
	RingDIP          = 15
	RingTip          = 16
	PinkyMCP         = 17
	PinkyPIP         = 18
	PinkyDIP         = 19
	PinkyTip         = 20
	NumHandKeypoints = 21
)

// Body keypoint indices following the COCO convention used by pose models.
const (
	Nose             = 0
	LeftEye          = 1
	RightEye         = 2
	LeftEar          = 3
	RightEar         = 4
	LeftShoulder     = 5
	RightShoulder    = 6
	LeftElbow        = 7
	RightElbow       = 8
	LeftWrist        = 9
	RightWrist       = 10
	LeftHip          = 11
	RightHip         = 12
	LeftKnee         = 13
	RightKnee        = 14
	LeftAnkle        = 15
	RightAnkle       = 16
	NumBodyKeypoints = 17
)

// Point represents a 2D point in pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between two points.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Keypoints holds one detected subject: an ordered sequence of labeled 2D
// keypoints in pixel space plus the detection confidence. The number and
// meaning of points is fixed per detector variant (21 hand landmarks or
// 17 body keypoints).
type Keypoints struct {
	Points []Point `json:"points"`
	Label  string  `json:"label"` // e.g. "Left", "Right" or "person"
	Score  float64 `json:"score"`
}

// At returns the keypoint at index i, reporting whether it exists.
func (k *Keypoints) At(i int) (Point, bool) {
	if k == nil || i < 0 || i >= len(k.Points) {
		return Point{}, false
	}
	return k.Points[i], true
}

// Best returns the subject with the highest detection confidence, or nil
// when the slice is empty.
func Best(subjects []Keypoints) *Keypoints {
	var best *Keypoints
	for i := range subjects {
		if best == nil || subjects[i].Score > best.Score {
			best = &subjects[i]
		}
	}
	return best
}
