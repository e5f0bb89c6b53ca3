package messaging

import "errors"

// Closed set of error kinds for the publish path. Callers branch with
// errors.Is on the kind instead of inspecting message text.
var (
	// ErrConnectionFailure covers dial and channel-open failures. At
	// startup it disables publishing for the process lifetime.
	ErrConnectionFailure = errors.New("messaging: connection failure")

	// ErrTopologyConflict is an exchange declaration failure that could
	// not be recovered by reopening the channel.
	ErrTopologyConflict = errors.New("messaging: topology conflict")

	// ErrPublishFailure is a per-message transport failure. The event is
	// dropped and the frame loop continues.
	ErrPublishFailure = errors.New("messaging: publish failure")
)
