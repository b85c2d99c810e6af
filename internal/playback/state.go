// Package playback sequences phrase audio: source, a muted pad, then the
// target, advancing through the current collection in a loop.
package playback

// State is the position of the engine within the utterance sequence.
type State int

const (
	// Idle means nothing is queued.
	Idle State = iota
	// SpeakingSource plays the source phrase.
	SpeakingSource
	// SilentPad plays the source phrase muted, leaving room to recall the target.
	SilentPad
	// SpeakingTarget plays the target phrase.
	SpeakingTarget
	// Paused holds the sequence; the interrupted state is remembered.
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case SpeakingSource:
		return "source"
	case SilentPad:
		return "pad"
	case SpeakingTarget:
		return "target"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Active reports whether an utterance of the sequence is in flight.
func (s State) Active() bool {
	return s == SpeakingSource || s == SilentPad || s == SpeakingTarget
}
