package speech

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// SimulatedOptions tunes the simulated speaker.
type SimulatedOptions struct {
	// Scale multiplies estimated durations. Zero means 1.
	Scale float64
	// OnSpeak, when set, is called as each utterance starts preparing.
	OnSpeak func(Utterance)
}

// NewSimulated returns a speaker that produces no sound and completes each
// utterance after EstimateDuration.
func NewSimulated(opts SimulatedOptions, logger *log.Logger) *Queue {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	return newQueue(simulatedPreparer{opts: opts, now: time.Now}, logger)
}

type simulatedPreparer struct {
	opts SimulatedOptions
	now  func() time.Time
}

func (p simulatedPreparer) prepare(_ context.Context, u Utterance) (clip, error) {
	if p.opts.OnSpeak != nil {
		p.opts.OnSpeak(u)
	}
	d := time.Duration(float64(EstimateDuration(u.Text, u.Rate)) * p.opts.Scale)
	return &timedClip{length: d, now: p.now}, nil
}

// timedClip finishes once it has been running for length.
type timedClip struct {
	length  time.Duration
	now     func() time.Time
	elapsed time.Duration
	since   time.Time
	running bool
}

func (c *timedClip) Start() {
	c.since = c.now()
	c.running = true
}

func (c *timedClip) Pause() {
	if !c.running {
		return
	}
	c.elapsed += c.now().Sub(c.since)
	c.running = false
}

func (c *timedClip) Resume() {
	if c.running {
		return
	}
	c.since = c.now()
	c.running = true
}

func (c *timedClip) Finished() bool {
	total := c.elapsed
	if c.running {
		total += c.now().Sub(c.since)
	}
	return total >= c.length
}

func (c *timedClip) Close() error { return nil }
