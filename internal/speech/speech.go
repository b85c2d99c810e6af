// Package speech turns utterances into sound. A Speaker is a serial device:
// utterances play one after another and each completion is reported on the
// Done channel, tagged so callers can recognise stale events.
package speech

import (
	"time"
	"unicode/utf8"
)

// Utterance is one request to the speech service.
type Utterance struct {
	Text   string
	Lang   string // BCP 47 tag, e.g. "en-US"
	Rate   float64
	Volume float64
	Tag    uint64 // opaque to the speaker, echoed back in Done
}

// Handle identifies an enqueued utterance.
type Handle uint64

// Done reports that an utterance finished playing. Cancelled utterances never
// produce a Done.
type Done struct {
	Handle Handle
	Tag    uint64
}

// Speaker is the serial speech device driven by the playback engine.
type Speaker interface {
	Speak(u Utterance) Handle
	Pause()
	Resume()
	CancelAll()
	Paused() bool
	Done() <-chan Done
	Close() error
}

const (
	baseRuneDuration = 70 * time.Millisecond
	minUtterance     = 300 * time.Millisecond
)

// EstimateDuration guesses how long text takes to speak at rate.
func EstimateDuration(text string, rate float64) time.Duration {
	if rate <= 0 {
		rate = 1
	}
	d := time.Duration(float64(utf8.RuneCountInString(text)) * float64(baseRuneDuration) / rate)
	if d < minUtterance {
		d = minUtterance
	}
	return d
}
