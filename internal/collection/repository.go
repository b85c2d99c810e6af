// Package collection owns the list of named phrase collections.
package collection

import (
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/phrasedrill/internal/model"
	"github.com/verte-zerg/phrasedrill/internal/store"
)

const unnamed = "Unnamed collection"

// Rejection reasons for repository mutations.
var (
	ErrEmptyName       = errors.New("collection name is empty")
	ErrDuplicateName   = errors.New("collection name already exists")
	ErrLastCollection  = errors.New("cannot remove the last collection")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyPhrase     = errors.New("phrase source and target must not be empty")
)

// Repository holds collections in memory and persists every mutation.
type Repository struct {
	kv          store.KV
	log         *log.Logger
	collections []model.Collection
}

// Load reads collections from kv. Missing, corrupt or empty data is replaced by
// the built-in collection, which is persisted immediately.
func Load(kv store.KV, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.Default()
	}
	r := &Repository{kv: kv, log: logger}

	var stored []model.Collection
	found, err := store.LoadJSON(kv, store.KeyCollections, &stored)
	if err != nil {
		logger.Error("failed to load collections, using defaults", "err", err)
	}
	if err != nil || !found || len(stored) == 0 {
		r.collections = []model.Collection{Default()}
		r.save()
		return r
	}

	r.collections = make([]model.Collection, 0, len(stored))
	for _, c := range stored {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = unnamed
		}
		// Stored phrases keep their positions; listen counts are keyed by them.
		r.collections = append(r.collections, model.Collection{Name: name, Phrases: model.ClonePhrases(c.Phrases)})
	}
	return r
}

// Len returns the number of collections. It is always at least one.
func (r *Repository) Len() int {
	return len(r.collections)
}

// Collection returns a copy of the collection at index.
func (r *Repository) Collection(index int) (model.Collection, bool) {
	if index < 0 || index >= len(r.collections) {
		return model.Collection{}, false
	}
	return r.collections[index].Clone(), true
}

// Phrases returns a copy of the phrases of the collection at index, or nil.
func (r *Repository) Phrases(index int) []model.Phrase {
	if index < 0 || index >= len(r.collections) {
		return nil
	}
	return model.ClonePhrases(r.collections[index].Phrases)
}

// PhraseCount returns the number of phrases in the collection at index.
func (r *Repository) PhraseCount(index int) int {
	if index < 0 || index >= len(r.collections) {
		return 0
	}
	return len(r.collections[index].Phrases)
}

// Phrase returns one phrase without copying the whole collection.
func (r *Repository) Phrase(index, phraseIndex int) (model.Phrase, bool) {
	if index < 0 || index >= len(r.collections) {
		return model.Phrase{}, false
	}
	phrases := r.collections[index].Phrases
	if phraseIndex < 0 || phraseIndex >= len(phrases) {
		return model.Phrase{}, false
	}
	return phrases[phraseIndex], true
}

// Names lists collection names in order.
func (r *Repository) Names() []string {
	names := make([]string, len(r.collections))
	for i, c := range r.collections {
		names[i] = c.Name
	}
	return names
}

// Add appends a new collection.
func (r *Repository) Add(name string, phrases []model.Phrase) error {
	if err := r.validateName(name, -1); err != nil {
		return err
	}
	kept := make([]model.Phrase, 0, len(phrases))
	for _, p := range phrases {
		if !p.Blank() {
			kept = append(kept, p)
		}
	}
	r.collections = append(r.collections, model.Collection{Name: name, Phrases: kept})
	r.save()
	return nil
}

// Remove deletes the collection at index and returns the neighbouring index the
// caller should select next.
func (r *Repository) Remove(index int) (int, error) {
	if index < 0 || index >= len(r.collections) {
		return 0, ErrIndexOutOfRange
	}
	if len(r.collections) == 1 {
		return 0, ErrLastCollection
	}
	r.collections = append(r.collections[:index], r.collections[index+1:]...)
	r.save()
	next := index
	if next >= len(r.collections) {
		next = len(r.collections) - 1
	}
	return next, nil
}

// Rename changes the name of the collection at index.
func (r *Repository) Rename(index int, name string) error {
	if index < 0 || index >= len(r.collections) {
		return ErrIndexOutOfRange
	}
	if err := r.validateName(name, index); err != nil {
		return err
	}
	r.collections[index].Name = name
	r.save()
	return nil
}

// AddPhrase appends a phrase to the collection at index.
func (r *Repository) AddPhrase(index int, phrase model.Phrase) error {
	if index < 0 || index >= len(r.collections) {
		return ErrIndexOutOfRange
	}
	if phrase.Blank() {
		return ErrEmptyPhrase
	}
	r.collections[index].Phrases = append(r.collections[index].Phrases, phrase)
	r.save()
	return nil
}

// RemovePhrase deletes one phrase from the collection at index.
func (r *Repository) RemovePhrase(index, phraseIndex int) error {
	if index < 0 || index >= len(r.collections) {
		return ErrIndexOutOfRange
	}
	phrases := r.collections[index].Phrases
	if phraseIndex < 0 || phraseIndex >= len(phrases) {
		return ErrIndexOutOfRange
	}
	r.collections[index].Phrases = append(phrases[:phraseIndex], phrases[phraseIndex+1:]...)
	r.save()
	return nil
}

func (r *Repository) validateName(name string, self int) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	for i, c := range r.collections {
		if i != self && c.Name == name {
			return ErrDuplicateName
		}
	}
	return nil
}

func (r *Repository) save() {
	if err := store.SaveJSON(r.kv, store.KeyCollections, r.collections); err != nil {
		r.log.Error("failed to save collections", "err", err)
	}
}
