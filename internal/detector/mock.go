package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, either as a fixed
// result for every frame or as a per-frame sequence.
type MockDetector struct {
	subjects []Keypoints
	sequence [][]Keypoints
	err      error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetSubjects sets the subjects that will be returned by every Detect call.
func (m *MockDetector) SetSubjects(subjects []Keypoints) {
	m.subjects = subjects
}

// SetSequence sets per-frame detection results. Each Detect call consumes
// one entry; once exhausted, Detect falls back to the fixed subjects.
func (m *MockDetector) SetSequence(sequence [][]Keypoints) {
	m.sequence = sequence
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured subjects or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Keypoints, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.sequence) > 0 {
		subjects := m.sequence[0]
		m.sequence = m.sequence[1:]
		return subjects, nil
	}
	return m.subjects, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PinchingHandKeypoints returns a preset hand with the thumb tip and index
// tip nearly touching, as seen on a 640x480 frame.
func PinchingHandKeypoints() Keypoints {
	kp := Keypoints{
		Label:  "Right",
		Score:  0.95,
		Points: make([]Point, NumHandKeypoints),
	}

	kp.Points[Wrist] = Point{X: 320, Y: 400}

	// Thumb curling in toward the index finger
	kp.Points[ThumbCMC] = Point{X: 290, Y: 370}
	kp.Points[ThumbMCP] = Point{X: 280, Y: 330}
	kp.Points[ThumbIP] = Point{X: 290, Y: 290}
	kp.Points[ThumbTip] = Point{X: 310, Y: 262}

	// Index finger bent toward the thumb
	kp.Points[IndexMCP] = Point{X: 340, Y: 320}
	kp.Points[IndexPIP] = Point{X: 338, Y: 290}
	kp.Points[IndexDIP] = Point{X: 330, Y: 272}
	kp.Points[IndexTip] = Point{X: 318, Y: 258}

	// Remaining fingers extended upward
	kp.Points[MiddleMCP] = Point{X: 325, Y: 315}
	kp.Points[MiddlePIP] = Point{X: 327, Y: 270}
	kp.Points[MiddleDIP] = Point{X: 328, Y: 235}
	kp.Points[MiddleTip] = Point{X: 329, Y: 205}

	kp.Points[RingMCP] = Point{X: 310, Y: 318}
	kp.Points[RingPIP] = Point{X: 308, Y: 275}
	kp.Points[RingDIP] = Point{X: 307, Y: 245}
	kp.Points[RingTip] = Point{X: 306, Y: 218}

	kp.Points[PinkyMCP] = Point{X: 295, Y: 325}
	kp.Points[PinkyPIP] = Point{X: 290, Y: 290}
	kp.Points[PinkyDIP] = Point{X: 288, Y: 265}
	kp.Points[PinkyTip] = Point{X: 286, Y: 245}

	return kp
}

// OpenHandKeypoints returns a preset hand with all fingers spread, so the
// thumb tip and index tip are well apart on a 640x480 frame.
func OpenHandKeypoints() Keypoints {
	kp := Keypoints{
		Label:  "Right",
		Score:  0.95,
		Points: make([]Point, NumHandKeypoints),
	}

	kp.Points[Wrist] = Point{X: 320, Y: 400}

	kp.Points[ThumbCMC] = Point{X: 280, Y: 375}
	kp.Points[ThumbMCP] = Point{X: 250, Y: 345}
	kp.Points[ThumbIP] = Point{X: 228, Y: 318}
	kp.Points[ThumbTip] = Point{X: 210, Y: 295}

	kp.Points[IndexMCP] = Point{X: 345, Y: 310}
	kp.Points[IndexPIP] = Point{X: 355, Y: 260}
	kp.Points[IndexDIP] = Point{X: 360, Y: 225}
	kp.Points[IndexTip] = Point{X: 365, Y: 195}

	kp.Points[MiddleMCP] = Point{X: 322, Y: 305}
	kp.Points[MiddlePIP] = Point{X: 323, Y: 250}
	kp.Points[MiddleDIP] = Point{X: 324, Y: 210}
	kp.Points[MiddleTip] = Point{X: 325, Y: 175}

	kp.Points[RingMCP] = Point{X: 300, Y: 310}
	kp.Points[RingPIP] = Point{X: 295, Y: 258}
	kp.Points[RingDIP] = Point{X: 292, Y: 222}
	kp.Points[RingTip] = Point{X: 290, Y: 192}

	kp.Points[PinkyMCP] = Point{X: 280, Y: 320}
	kp.Points[PinkyPIP] = Point{X: 270, Y: 280}
	kp.Points[PinkyDIP] = Point{X: 264, Y: 252}
	kp.Points[PinkyTip] = Point{X: 260, Y: 230}

	return kp
}

// RaisedWristKeypoints returns a preset body pose with the right wrist
// lifted next to the head on a 640x480 frame.
func RaisedWristKeypoints() Keypoints {
	kp := standingBase()
	kp.Points[RightElbow] = Point{X: 390, Y: 180}
	kp.Points[RightWrist] = Point{X: 340, Y: 130}
	return kp
}

// StandingKeypoints returns a preset body pose with both arms lowered on
// a 640x480 frame.
func StandingKeypoints() Keypoints {
	return standingBase()
}

func standingBase() Keypoints {
	kp := Keypoints{
		Label:  "person",
		Score:  0.9,
		Points: make([]Point, NumBodyKeypoints),
	}

	kp.Points[Nose] = Point{X: 320, Y: 120}
	kp.Points[LeftEye] = Point{X: 310, Y: 112}
	kp.Points[RightEye] = Point{X: 330, Y: 112}
	kp.Points[LeftEar] = Point{X: 300, Y: 118}
	kp.Points[RightEar] = Point{X: 340, Y: 118}
	kp.Points[LeftShoulder] = Point{X: 280, Y: 200}
	kp.Points[RightShoulder] = Point{X: 360, Y: 200}
	kp.Points[LeftElbow] = Point{X: 265, Y: 270}
	kp.Points[RightElbow] = Point{X: 375, Y: 270}
	kp.Points[LeftWrist] = Point{X: 258, Y: 340}
	kp.Points[RightWrist] = Point{X: 382, Y: 340}
	kp.Points[LeftHip] = Point{X: 295, Y: 330}
	kp.Points[RightHip] = Point{X: 345, Y: 330}
	kp.Points[LeftKnee] = Point{X: 292, Y: 410}
	kp.Points[RightKnee] = Point{X: 348, Y: 410}
	kp.Points[LeftAnkle] = Point{X: 290, Y: 470}
	kp.Points[RightAnkle] = Point{X: 350, Y: 470}

	return kp
}
