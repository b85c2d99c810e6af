package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/phrasedrill/internal/collection"
	"github.com/verte-zerg/phrasedrill/internal/playback"
	"github.com/verte-zerg/phrasedrill/internal/speech"
	"github.com/verte-zerg/phrasedrill/internal/stats"
	"github.com/verte-zerg/phrasedrill/internal/store"
)

type fakeSpeaker struct {
	next   speech.Handle
	last   speech.Utterance
	paused bool
	done   chan speech.Done
}

func (f *fakeSpeaker) Speak(u speech.Utterance) speech.Handle {
	f.next++
	f.last = u
	return f.next
}

func (f *fakeSpeaker) Pause()                   { f.paused = true }
func (f *fakeSpeaker) Resume()                  { f.paused = false }
func (f *fakeSpeaker) CancelAll()               { f.paused = false }
func (f *fakeSpeaker) Paused() bool             { return f.paused }
func (f *fakeSpeaker) Done() <-chan speech.Done { return f.done }
func (f *fakeSpeaker) Close() error             { return nil }

type fixture struct {
	model   *Model
	engine  *playback.Engine
	repo    *collection.Repository
	prefs   *store.Prefs
	speaker *fakeSpeaker
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logger := log.New(io.Discard)
	kv := store.NewMemory()
	repo := collection.Load(kv, logger)
	listens := stats.Load(kv, logger, stats.Options{})
	prefs := store.NewPrefs(kv, logger)
	sp := &fakeSpeaker{done: make(chan speech.Done, 1)}
	engine := playback.New(repo, listens, sp, playback.Options{Rate: 1, TargetEnabled: true, Prefs: prefs}, logger)
	m := NewModel(Options{
		Engine:     engine,
		Repo:       repo,
		Listens:    listens,
		Prefs:      prefs,
		Done:       sp.Done(),
		TargetLang: "ru-RU",
		Logger:     logger,
	})
	return fixture{model: m, engine: engine, repo: repo, prefs: prefs, speaker: sp}
}

func press(m *Model, s string) tea.Cmd {
	var msg tea.KeyMsg
	switch s {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestSpaceTogglesPlayback(t *testing.T) {
	f := newFixture(t)

	press(f.model, " ")
	if !f.engine.IsPlaying() {
		t.Fatalf("expected playback to start")
	}
	if !strings.Contains(f.model.View(), "⏸ Pause") {
		t.Fatalf("expected pause button in view")
	}

	press(f.model, " ")
	if f.engine.State() != playback.Paused || !f.speaker.paused {
		t.Fatalf("expected paused, got %v", f.engine.State())
	}
	if !strings.Contains(f.model.View(), "▶ Play") {
		t.Fatalf("expected play button in view")
	}
}

func TestDoneMessageAdvancesEngine(t *testing.T) {
	f := newFixture(t)
	press(f.model, " ")

	_, cmd := f.model.Update(doneMsg{Handle: f.speaker.next, Tag: f.speaker.last.Tag})
	if f.engine.State() != playback.SilentPad {
		t.Fatalf("expected pad state, got %v", f.engine.State())
	}
	if cmd == nil {
		t.Fatalf("expected model to keep waiting for completions")
	}
}

func TestViewShowsPhraseAndProgress(t *testing.T) {
	f := newFixture(t)
	view := f.model.View()
	first, _ := f.engine.CurrentPhrase()
	for _, want := range []string{collection.DefaultName, first.Source, "Listening progress: 0 / 260", "Rate 1.0x", "Listened: 0"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEmptyCollectionView(t *testing.T) {
	f := newFixture(t)
	if err := f.engine.AddCollection("Empty", nil); err != nil {
		t.Fatalf("add collection: %v", err)
	}
	press(f.model, "tab")
	view := f.model.View()
	if !strings.Contains(view, playback.NoPhrases) || !strings.Contains(view, emptyCollection) {
		t.Fatalf("expected empty collection notice:\n%s", view)
	}

	press(f.model, " ")
	if f.engine.IsPlaying() {
		t.Fatalf("expected empty collection not to play")
	}
}

func TestThemeToggleIsPersisted(t *testing.T) {
	f := newFixture(t)
	press(f.model, "t")
	if f.prefs.Theme() != store.ThemeDark {
		t.Fatalf("expected dark theme persisted")
	}
	press(f.model, "t")
	if f.prefs.Theme() != store.ThemeLight {
		t.Fatalf("expected light theme persisted")
	}
}

func TestRateKeys(t *testing.T) {
	f := newFixture(t)
	press(f.model, "+")
	press(f.model, "+")
	press(f.model, "-")
	if f.engine.Rate() != 1.1 {
		t.Fatalf("expected rate 1.1, got %v", f.engine.Rate())
	}
	press(f.model, "r")
	if f.engine.TargetLanguageEnabled() {
		t.Fatalf("expected target disabled")
	}
}

func TestAddPhraseForm(t *testing.T) {
	f := newFixture(t)
	before := f.repo.PhraseCount(0)

	press(f.model, "a")
	press(f.model, "see you")
	press(f.model, "enter")
	press(f.model, "пока")
	press(f.model, "enter")

	if f.model.adding {
		t.Fatalf("expected form to close")
	}
	if got := f.repo.PhraseCount(0); got != before+1 {
		t.Fatalf("expected %d phrases, got %d", before+1, got)
	}
	p, _ := f.repo.Phrase(0, before)
	if p.Source != "see you" || p.Target != "пока" {
		t.Fatalf("unexpected phrase %+v", p)
	}
}

func TestAddPhraseFormRejectsBlank(t *testing.T) {
	f := newFixture(t)
	press(f.model, "a")
	press(f.model, "enter")
	press(f.model, "enter")
	if !f.model.adding || f.model.errMsg == "" {
		t.Fatalf("expected form to stay open with an error")
	}
	press(f.model, "esc")
	if f.model.adding {
		t.Fatalf("expected esc to close the form")
	}
}

func TestRemoveCurrentPhraseKey(t *testing.T) {
	f := newFixture(t)
	before := f.repo.PhraseCount(0)
	press(f.model, "x")
	if got := f.repo.PhraseCount(0); got != before-1 {
		t.Fatalf("expected %d phrases, got %d", before-1, got)
	}
}

func TestQuitStopsEngine(t *testing.T) {
	f := newFixture(t)
	press(f.model, " ")
	if cmd := press(f.model, "q"); cmd == nil {
		t.Fatalf("expected quit command")
	}
	if f.engine.IsPlaying() {
		t.Fatalf("expected engine stopped on quit")
	}
}
