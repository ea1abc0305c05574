package model

// StreamState tracks where a streaming assessment is in its staged protocol.
//
//	AWAITING_STAGE1 -> STAGE1_SENT -> STAGE2_SENT -> COMPLETED
//
// Any non-terminal state may move to CANCELLED (interrupted wait) or FAILED
// (computation fault). No message is sent once a terminal state is reached.
type StreamState int

const (
	StreamAwaitingStage1 StreamState = iota
	StreamStage1Sent
	StreamStage2Sent
	StreamCompleted
	StreamCancelled
	StreamFailed
)

// String returns the state name.
func (s StreamState) String() string {
	switch s {
	case StreamAwaitingStage1:
		return "AWAITING_STAGE1"
	case StreamStage1Sent:
		return "STAGE1_SENT"
	case StreamStage2Sent:
		return "STAGE2_SENT"
	case StreamCompleted:
		return "COMPLETED"
	case StreamCancelled:
		return "CANCELLED"
	case StreamFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transition is possible.
func (s StreamState) Terminal() bool {
	return s == StreamCompleted || s == StreamCancelled || s == StreamFailed
}

// Advance returns the state reached after the next stage message has been sent.
// Terminal states do not advance.
func (s StreamState) Advance() StreamState {
	switch s {
	case StreamAwaitingStage1:
		return StreamStage1Sent
	case StreamStage1Sent:
		return StreamStage2Sent
	case StreamStage2Sent:
		return StreamCompleted
	default:
		return s
	}
}
