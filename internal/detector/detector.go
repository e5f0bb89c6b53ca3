package detector

import "gocv.io/x/gocv"

// Variant selects which keypoint model a detector serves.
type Variant string

const (
	// VariantHand detects 21 MediaPipe hand landmarks per subject.
	VariantHand Variant = "hand"
	// VariantBody detects 17 COCO body keypoints per subject.
	VariantBody Variant = "body"
)

// Detector defines the interface for keypoint detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected subjects.
	// Returns an empty slice if no subject is detected.
	Detect(frame *gocv.Mat) ([]Keypoints, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for keypoint detection.
type Config struct {
	// Variant selects the keypoint model (hand or body).
	Variant Variant

	// MaxSubjects is the maximum number of subjects to detect (default: 1).
	MaxSubjects int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig(variant Variant) Config {
	return Config{
		Variant:       variant,
		MaxSubjects:   1,
		MinConfidence: 0.5,
	}
}
