package speech

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const pollInterval = 10 * time.Millisecond

// clip is one prepared utterance on an output device.
type clip interface {
	Start()
	Pause()
	Resume()
	Finished() bool
	Close() error
}

// preparer turns an utterance into a playable clip.
type preparer interface {
	prepare(ctx context.Context, u Utterance) (clip, error)
}

type queued struct {
	handle Handle
	u      Utterance
}

// Queue is a Speaker that plays utterances strictly in order on one worker
// goroutine. It backs both the audio and the simulated speaker.
type Queue struct {
	prep preparer
	log  *log.Logger

	mu      sync.Mutex
	wake    *sync.Cond
	pending []queued
	active  clip
	epoch   uint64
	next    Handle
	paused  bool
	closed  bool
	cancel  context.CancelFunc

	done    chan Done
	stopped chan struct{}
	exited  chan struct{}
}

func newQueue(prep preparer, logger *log.Logger) *Queue {
	if logger == nil {
		logger = log.Default()
	}
	q := &Queue{
		prep:    prep,
		log:     logger,
		done:    make(chan Done, 64),
		stopped: make(chan struct{}),
		exited:  make(chan struct{}),
	}
	q.wake = sync.NewCond(&q.mu)
	go q.loop()
	return q
}

// Speak enqueues u behind everything already queued.
func (q *Queue) Speak(u Utterance) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	h := q.next
	if q.closed {
		return h
	}
	q.pending = append(q.pending, queued{handle: h, u: u})
	q.wake.Broadcast()
	return h
}

// Pause suspends the current utterance. Queued utterances wait.
func (q *Queue) Pause() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.paused {
		return
	}
	q.paused = true
	if q.active != nil {
		q.active.Pause()
	}
}

// Resume continues after Pause.
func (q *Queue) Resume() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.paused {
		return
	}
	q.paused = false
	if q.active != nil {
		q.active.Resume()
	}
	q.wake.Broadcast()
}

// CancelAll drops every queued utterance and silences the current one. None
// of them report Done. The speaker is left unpaused.
func (q *Queue) CancelAll() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.epoch++
	q.pending = nil
	q.paused = false
	if q.active != nil {
		q.active.Pause()
		q.active = nil
	}
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.wake.Broadcast()
}

// Paused reports whether Pause is in effect.
func (q *Queue) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// Done delivers completions in playback order.
func (q *Queue) Done() <-chan Done {
	return q.done
}

// Close stops the worker. Pending utterances are discarded.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.stopped)
	q.mu.Unlock()
	q.CancelAll()
	<-q.exited
	return nil
}

func (q *Queue) loop() {
	defer close(q.exited)
	for {
		item, epoch, ctx, cancel, ok := q.take()
		if !ok {
			return
		}
		q.play(ctx, item, epoch)
		cancel()
	}
}

// take blocks until an utterance is queued and the speaker is not paused.
func (q *Queue) take() (queued, uint64, context.Context, context.CancelFunc, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for !q.closed && (len(q.pending) == 0 || q.paused) {
		q.wake.Wait()
	}
	if q.closed {
		return queued{}, 0, nil, nil, false
	}
	item := q.pending[0]
	q.pending = q.pending[1:]
	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	return item, q.epoch, ctx, cancel, true
}

func (q *Queue) play(ctx context.Context, item queued, epoch uint64) {
	c, err := q.prep.prepare(ctx, item.u)
	if err != nil {
		// A cancelled synthesis surfaces as whatever the subprocess returned.
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return
		}
		// A failed utterance still completes so the caller's sequence moves on.
		q.log.Error("speech: prepare utterance", "text", item.u.Text, "lang", item.u.Lang, "err", err)
		q.finish(item, epoch)
		return
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			q.log.Debug("speech: close clip", "err", cerr)
		}
	}()

	q.mu.Lock()
	if q.epoch != epoch {
		q.mu.Unlock()
		return
	}
	started := false
	if !q.paused {
		c.Start()
		q.active = c
		started = true
	}
	q.mu.Unlock()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-q.stopped:
			return
		case <-ticker.C:
		}
		q.mu.Lock()
		if q.epoch != epoch {
			q.mu.Unlock()
			return
		}
		if q.paused {
			q.mu.Unlock()
			continue
		}
		if !started {
			c.Start()
			q.active = c
			started = true
			q.mu.Unlock()
			continue
		}
		finished := c.Finished()
		if finished {
			q.active = nil
		}
		q.mu.Unlock()
		if finished {
			q.finish(item, epoch)
			return
		}
	}
}

func (q *Queue) finish(item queued, epoch uint64) {
	q.mu.Lock()
	stale := q.epoch != epoch
	q.mu.Unlock()
	if stale {
		return
	}
	select {
	case q.done <- Done{Handle: item.handle, Tag: item.u.Tag}:
	case <-q.stopped:
	}
}
