package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/phrasedrill/internal/collection"
	"github.com/verte-zerg/phrasedrill/internal/model"
	"github.com/verte-zerg/phrasedrill/internal/playback"
	"github.com/verte-zerg/phrasedrill/internal/speech"
	"github.com/verte-zerg/phrasedrill/internal/stats"
	"github.com/verte-zerg/phrasedrill/internal/store"
)

// newLogger returns a file logger when path is set, so the TUI keeps the
// screen, and a stderr logger otherwise.
func newLogger(debugMode bool, path string) (*log.Logger, func(), error) {
	level := log.InfoLevel
	if debugMode {
		level = log.DebugLevel
	}
	if path == "" {
		logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "phrasedrill"})
		return logger, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
	return logger, func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for the log file.
			_ = cerr
		}
	}, nil
}

// app bundles the persistent drill state shared by every command.
type app struct {
	cfg     model.Config
	log     *log.Logger
	kv      store.KV
	db      *store.Store
	repo    *collection.Repository
	listens *stats.Listens
	prefs   *store.Prefs
}

func openApp(cfg model.Config, logger *log.Logger) (*app, error) {
	a := &app{cfg: cfg, log: logger}
	if cfg.Ephemeral {
		a.kv = store.NewMemory()
	} else {
		db, err := store.Open(cfg.DataPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		a.db = db
		a.kv = db
	}
	a.prefs = store.NewPrefs(a.kv, logger)
	a.repo = collection.Load(a.kv, logger)
	a.listens = stats.Load(a.kv, logger, stats.Options{Cap: cfg.StatsCap, Slots: cfg.StatsSlots})
	if cfg.Theme != "" {
		a.prefs.SetTheme(cfg.Theme)
	}
	return a, nil
}

func (a *app) close() {
	if a.db == nil {
		return
	}
	if cerr := a.db.Close(); cerr != nil {
		a.log.Error("failed to close db", "err", cerr)
	}
}

// newSpeaker builds the configured speaker. When espeak-ng or the audio
// device is unavailable it falls back to the simulated speaker.
func (a *app) newSpeaker() speech.Speaker {
	if a.cfg.Engine == "simulated" {
		return speech.NewSimulated(speech.SimulatedOptions{}, a.log)
	}
	synth, err := speech.NewESpeak(speech.ESpeakConfig{
		WordsPerMinute: a.cfg.WordsPerMin,
		Voices:         a.voices(),
	})
	if err != nil {
		a.log.Warn("espeak-ng unavailable, using simulated speech", "err", err)
		return speech.NewSimulated(speech.SimulatedOptions{}, a.log)
	}
	speaker, err := speech.NewAudio(synth, a.log)
	if err != nil {
		a.log.Warn("audio device unavailable, using simulated speech", "err", err)
		return speech.NewSimulated(speech.SimulatedOptions{}, a.log)
	}
	return speaker
}

func (a *app) voices() map[string]string {
	voices := map[string]string{}
	if a.cfg.VoiceSource != "" {
		voices[a.cfg.SourceLang] = a.cfg.VoiceSource
	}
	if a.cfg.VoiceTarget != "" {
		voices[a.cfg.TargetLang] = a.cfg.VoiceTarget
	}
	return voices
}

func (a *app) newEngine(speaker speech.Speaker) *playback.Engine {
	rate := a.cfg.Rate
	if rate == 0 {
		rate = a.prefs.Rate()
	}
	targetEnabled := a.prefs.TargetEnabled()
	if a.cfg.TargetEnabled != nil {
		targetEnabled = *a.cfg.TargetEnabled
	}
	return playback.New(a.repo, a.listens, speaker, playback.Options{
		SourceLang:    a.cfg.SourceLang,
		TargetLang:    a.cfg.TargetLang,
		Rate:          rate,
		TargetRate:    a.cfg.TargetRate,
		TargetEnabled: targetEnabled,
		Prefs:         a.prefs,
	}, a.log)
}

// editEngine returns an engine for commands that only mutate collections.
// Its speaker never plays anything.
func (a *app) editEngine() (*playback.Engine, io.Closer) {
	speaker := speech.NewSimulated(speech.SimulatedOptions{}, a.log)
	return a.newEngine(speaker), speaker
}
