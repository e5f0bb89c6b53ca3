// Package gesture turns per-frame keypoint measurements into debounced,
// edge-triggered interaction events.
package gesture

// TriggerEvent reports a change of the activation state. It is emitted only
// when the state flips, never on steady-state frames.
type TriggerEvent struct {
	Active bool
}

// PositionEvent reports the gesture anchor at the moment of activation,
// normalized by the frame size. Components are not clamped to [0,1]: an
// anchor outside the frame bounds passes through out of range.
type PositionEvent struct {
	X float64
	Y float64
}
