package gesture

import "github.com/lasaths/HandyPi/internal/detector"

// Observation is one frame's input to the state machine. ScoreOK is false
// when no subject was detected or a required keypoint was missing; such
// frames always classify as not active, so a lost subject resets the
// gesture.
type Observation struct {
	Score   float64
	ScoreOK bool

	// Anchor is the gesture's pixel location, valid only when ScoreOK.
	Anchor detector.Point

	// FrameWidth and FrameHeight normalize the anchor into the published
	// position.
	FrameWidth  int
	FrameHeight int
}

// StateMachine holds the single boolean activation state for one gesture.
// It is edge-triggered: events are emitted only when the state changes
// between consecutive frames. There is no hysteresis band beyond the
// single-sample threshold test, so a score oscillating around the
// threshold produces event chatter; that is accepted behavior.
//
// The state machine is not safe for concurrent use; the frame loop is the
// single owner.
type StateMachine struct {
	threshold float64
	active    bool
}

// NewStateMachine creates a state machine in the idle state. A frame is
// classified active when its score is strictly below threshold.
func NewStateMachine(threshold float64) *StateMachine {
	return &StateMachine{threshold: threshold}
}

// Active returns the current activation state.
func (m *StateMachine) Active() bool {
	return m.active
}

// Reset returns the state machine to idle without emitting events.
func (m *StateMachine) Reset() {
	m.active = false
}

// Step feeds one frame's observation through the transition rule and
// returns the events to publish. A nil trigger means the state did not
// change. The position event is non-nil only on an idle-to-active
// transition, so it never appears without a trigger(true) for the same
// frame.
func (m *StateMachine) Step(obs Observation) (*TriggerEvent, *PositionEvent) {
	activeNow := obs.ScoreOK && obs.Score < m.threshold

	if activeNow == m.active {
		return nil, nil
	}
	m.active = activeNow

	trigger := &TriggerEvent{Active: activeNow}
	if !activeNow {
		return trigger, nil
	}

	position := &PositionEvent{
		X: obs.Anchor.X / float64(obs.FrameWidth),
		Y: obs.Anchor.Y / float64(obs.FrameHeight),
	}
	return trigger, position
}
