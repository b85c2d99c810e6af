// Package model defines shared data structures.
package model

import "strings"

// Phrase is a source/target pair. Insertion order is playback order.
type Phrase struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Blank reports whether either side of the phrase is empty after trimming.
func (p Phrase) Blank() bool {
	return strings.TrimSpace(p.Source) == "" || strings.TrimSpace(p.Target) == ""
}

// Collection is a named, ordered set of phrases.
type Collection struct {
	Name    string   `json:"name"`
	Phrases []Phrase `json:"phrases"`
}

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	return Collection{Name: c.Name, Phrases: ClonePhrases(c.Phrases)}
}

// ClonePhrases copies a phrase slice so callers cannot alias repository state.
func ClonePhrases(phrases []Phrase) []Phrase {
	out := make([]Phrase, len(phrases))
	copy(out, phrases)
	return out
}

// Config defines drill settings after flags and the config file are merged.
// Zero Rate, empty Theme and nil TargetEnabled defer to stored preferences.
type Config struct {
	Rate          float64
	TargetEnabled *bool
	SourceLang    string
	TargetLang    string
	TargetRate    float64

	Engine      string
	VoiceSource string
	VoiceTarget string
	WordsPerMin int
	StatsCap    int
	StatsSlots  int
	Theme       string
	DataPath    string
	Ephemeral   bool
	Debug       bool
}

// StatsConfig defines filters for the stats report.
type StatsConfig struct {
	Collection int // -1 means all collections
	Width      int
}
