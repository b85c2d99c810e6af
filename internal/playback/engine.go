package playback

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/phrasedrill/internal/collection"
	"github.com/verte-zerg/phrasedrill/internal/model"
	"github.com/verte-zerg/phrasedrill/internal/speech"
	"github.com/verte-zerg/phrasedrill/internal/stats"
	"github.com/verte-zerg/phrasedrill/internal/store"
)

// Speech rate limits.
const (
	MinRate  = 0.5
	MaxRate  = 2.0
	RateStep = 0.1
)

// NoPhrases is the notice shown when the selected collection is empty.
const NoPhrases = "No phrases"

// Options configures an Engine.
type Options struct {
	SourceLang    string
	TargetLang    string
	Rate          float64
	TargetRate    float64
	TargetEnabled bool
	// Prefs, when set, receives rate and target-toggle changes.
	Prefs *store.Prefs
}

// Snapshot is the session state a view needs to render.
type Snapshot struct {
	CollectionIndex int
	CollectionName  string
	PhraseIndex     int
	PhraseCount     int
	Phrase          model.Phrase
	HasPhrase       bool
	State           State
	Playing         bool
	Rate            float64
	TargetEnabled   bool
	Notice          string
}

// Engine drives a Speaker through the phrase sequence of one collection.
// It is not safe for concurrent use: call it from a single goroutine and feed
// speaker completions back through HandleDone.
type Engine struct {
	repo    *collection.Repository
	listens *stats.Listens
	speaker speech.Speaker
	prefs   *store.Prefs
	log     *log.Logger

	sourceLang string
	targetLang string
	targetRate float64

	collection    int
	phrase        int
	state         State
	resume        State
	playing       bool
	pending       speech.Handle
	generation    uint64
	targetEnabled bool
	rate          float64
	notice        string

	listeners []func(Snapshot)
}

// New returns an idle engine on the first collection.
func New(repo *collection.Repository, listens *stats.Listens, speaker speech.Speaker, opts Options, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if opts.SourceLang == "" {
		opts.SourceLang = "en-US"
	}
	if opts.TargetLang == "" {
		opts.TargetLang = "ru-RU"
	}
	if opts.TargetRate <= 0 {
		opts.TargetRate = 1
	}
	e := &Engine{
		repo:          repo,
		listens:       listens,
		speaker:       speaker,
		prefs:         opts.Prefs,
		log:           logger,
		sourceLang:    opts.SourceLang,
		targetLang:    opts.TargetLang,
		targetRate:    opts.TargetRate,
		targetEnabled: opts.TargetEnabled,
		rate:          normalizeRate(opts.Rate),
	}
	counts := make([]int, repo.Len())
	for i := range counts {
		counts[i] = repo.PhraseCount(i)
	}
	listens.EnsureAll(counts)
	if len(counts) > 0 && counts[0] == 0 {
		e.notice = NoPhrases
	}
	return e
}

// OnChange registers fn to be called after every visible state change.
func (e *Engine) OnChange(fn func(Snapshot)) {
	e.listeners = append(e.listeners, fn)
}

// Play starts the sequence at the current phrase. A paused engine resumes; an
// active one restarts the current phrase.
func (e *Engine) Play() {
	if e.state == Paused {
		e.Resume()
		return
	}
	count := e.repo.PhraseCount(e.collection)
	if count == 0 {
		e.stopNoPhrases()
		return
	}
	if e.phrase >= count {
		e.phrase = 0
	}
	e.speaker.CancelAll()
	e.generation++
	e.listens.EnsureShape(e.collection, count)
	e.notice = ""
	e.playing = true
	e.speakSource()
	e.notify()
}

// Pause holds the current utterance without cancelling it.
func (e *Engine) Pause() {
	if !e.state.Active() {
		return
	}
	e.speaker.Pause()
	e.resume = e.state
	e.state = Paused
	e.playing = false
	e.notify()
}

// Resume continues a paused sequence.
func (e *Engine) Resume() {
	if e.state != Paused {
		return
	}
	e.speaker.Resume()
	e.state = e.resume
	e.resume = Idle
	e.playing = true
	e.notify()
}

// Stop cancels all speech and returns to Idle. Completions of anything
// enqueued before the stop are ignored.
func (e *Engine) Stop() {
	e.halt()
	e.notify()
}

// TogglePlay resumes when paused, pauses when playing, and plays otherwise.
func (e *Engine) TogglePlay() {
	switch {
	case e.state == Paused:
		e.Resume()
	case e.state.Active():
		e.Pause()
	default:
		e.Play()
	}
}

// Next moves to the following phrase, wrapping around, and plays it.
func (e *Engine) Next() {
	e.step(1)
}

// Prev moves to the preceding phrase, wrapping around, and plays it.
func (e *Engine) Prev() {
	e.step(-1)
}

func (e *Engine) step(delta int) {
	count := e.repo.PhraseCount(e.collection)
	if count == 0 {
		return
	}
	e.halt()
	e.phrase = ((e.phrase+delta)%count + count) % count
	e.Play()
}

// SelectPhrase jumps to the phrase at index and plays it. Out-of-range
// indexes are ignored.
func (e *Engine) SelectPhrase(index int) {
	if index < 0 || index >= e.repo.PhraseCount(e.collection) {
		return
	}
	e.halt()
	e.phrase = index
	e.Play()
}

// SetTargetLanguageEnabled toggles target playback. It takes effect at the
// next pad completion.
func (e *Engine) SetTargetLanguageEnabled(enabled bool) {
	e.targetEnabled = enabled
	if e.prefs != nil {
		e.prefs.SetTargetEnabled(enabled)
	}
	e.notify()
}

// TargetLanguageEnabled reports whether the target phrase is spoken.
func (e *Engine) TargetLanguageEnabled() bool {
	return e.targetEnabled
}

// SetRate sets the source speech rate, clamped to [MinRate, MaxRate] and
// rounded to one decimal. Utterances already queued keep their rate.
func (e *Engine) SetRate(rate float64) {
	e.rate = normalizeRate(rate)
	if e.prefs != nil {
		e.prefs.SetRate(e.rate)
	}
	e.notify()
}

// AdjustRate changes the rate by delta.
func (e *Engine) AdjustRate(delta float64) {
	e.SetRate(e.rate + delta)
}

// Rate returns the source speech rate.
func (e *Engine) Rate() float64 {
	return e.rate
}

// SelectCollection stops playback and moves to the first phrase of the
// collection at index. Out-of-range indexes are ignored.
func (e *Engine) SelectCollection(index int) {
	if index < 0 || index >= e.repo.Len() {
		return
	}
	e.halt()
	e.collection = index
	e.phrase = 0
	count := e.repo.PhraseCount(index)
	e.listens.EnsureShape(index, count)
	e.notice = ""
	if count == 0 {
		e.notice = NoPhrases
	}
	e.notify()
}

// CurrentPhrase returns the phrase at the current index.
func (e *Engine) CurrentPhrase() (model.Phrase, bool) {
	return e.repo.Phrase(e.collection, e.phrase)
}

// CollectionIndex returns the selected collection.
func (e *Engine) CollectionIndex() int {
	return e.collection
}

// PhraseIndex returns the current phrase position.
func (e *Engine) PhraseIndex() int {
	return e.phrase
}

// IsPlaying reports whether the sequence is running and not paused.
func (e *Engine) IsPlaying() bool {
	return e.playing
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Snapshot returns the current session state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		CollectionIndex: e.collection,
		PhraseIndex:     e.phrase,
		PhraseCount:     e.repo.PhraseCount(e.collection),
		State:           e.state,
		Playing:         e.playing,
		Rate:            e.rate,
		TargetEnabled:   e.targetEnabled,
		Notice:          e.notice,
	}
	if c, ok := e.repo.Collection(e.collection); ok {
		s.CollectionName = c.Name
	}
	s.Phrase, s.HasPhrase = e.CurrentPhrase()
	return s
}

// HandleDone applies a speaker completion. Completions for anything other
// than the pending utterance of the live generation are discarded.
func (e *Engine) HandleDone(d speech.Done) {
	if e.pending == 0 || d.Handle != e.pending || d.Tag != e.generation {
		e.log.Debug("discarding stale completion", "handle", d.Handle, "tag", d.Tag, "generation", e.generation)
		return
	}
	e.pending = 0

	phase := e.state
	if phase == Paused {
		phase = e.resume
	}

	count := e.repo.PhraseCount(e.collection)
	if count == 0 {
		e.stopNoPhrases()
		return
	}
	if e.phrase >= count {
		e.phrase = count - 1
	}

	var next State
	switch phase {
	case SpeakingSource:
		next = SilentPad
		e.enqueue(e.sourceText(), e.sourceLang, e.rate, 0)
	case SilentPad:
		e.listens.Increment(e.collection, e.phrase)
		if e.targetEnabled {
			next = SpeakingTarget
			p, _ := e.CurrentPhrase()
			e.enqueue(p.Target, e.targetLang, e.targetRate, 1)
		} else {
			next = e.advance(count)
		}
	case SpeakingTarget:
		next = e.advance(count)
	default:
		e.log.Debug("completion in unexpected state", "state", phase)
		return
	}

	if e.state == Paused {
		e.resume = next
	} else {
		e.state = next
	}
	e.notify()
}

// advance moves to the next phrase and queues its source without cancelling
// anything, so there is no gap between phrases.
func (e *Engine) advance(count int) State {
	e.phrase = (e.phrase + 1) % count
	e.enqueue(e.sourceText(), e.sourceLang, e.rate, 1)
	return SpeakingSource
}

func (e *Engine) speakSource() {
	e.state = SpeakingSource
	e.resume = Idle
	e.enqueue(e.sourceText(), e.sourceLang, e.rate, 1)
}

func (e *Engine) sourceText() string {
	p, _ := e.CurrentPhrase()
	return p.Source
}

func (e *Engine) enqueue(text, lang string, rate, volume float64) {
	e.pending = e.speaker.Speak(speech.Utterance{
		Text:   text,
		Lang:   lang,
		Rate:   rate,
		Volume: volume,
		Tag:    e.generation,
	})
}

// halt cancels speech and invalidates outstanding completions.
func (e *Engine) halt() {
	e.speaker.CancelAll()
	e.pending = 0
	e.generation++
	e.state = Idle
	e.resume = Idle
	e.playing = false
}

func (e *Engine) stopNoPhrases() {
	e.halt()
	e.phrase = 0
	e.notice = NoPhrases
	e.notify()
}

func (e *Engine) notify() {
	if len(e.listeners) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, fn := range e.listeners {
		fn(snap)
	}
}

func normalizeRate(rate float64) float64 {
	if rate == 0 || math.IsNaN(rate) {
		rate = store.DefaultRate
	}
	rate = math.Max(MinRate, math.Min(MaxRate, rate))
	return math.Round(rate*10) / 10
}
