// Package stats tracks bounded per-phrase listen counts and renders reports.
package stats

import (
	"encoding/json"
	"math"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/phrasedrill/internal/store"
)

// Defaults for the counter table.
const (
	DefaultCap   = 20
	DefaultSlots = 20
)

// Options bound the counter table.
type Options struct {
	Cap   int // listens after which a phrase counts as mastered
	Slots int // tracked phrases per collection
}

func (o Options) withDefaults() Options {
	if o.Cap <= 0 {
		o.Cap = DefaultCap
	}
	if o.Slots <= 0 {
		o.Slots = DefaultSlots
	}
	return o
}

// Listens holds one fixed-length counter row per collection position.
// Rows are resized by EnsureShape; only the first min(phraseCount, Slots)
// slots of a row are tracked.
type Listens struct {
	kv    store.KV
	log   *log.Logger
	cap   int
	slots int

	rows    [][]int
	tracked []int
}

// Load reads the persisted table. Malformed data is replaced by zeroed rows
// and the repaired table is written back.
func Load(kv store.KV, logger *log.Logger, opts Options) *Listens {
	if logger == nil {
		logger = log.Default()
	}
	opts = opts.withDefaults()
	l := &Listens{kv: kv, log: logger, cap: opts.Cap, slots: opts.Slots}

	var raw []json.RawMessage
	found, err := store.LoadJSON(kv, store.KeyListenStats, &raw)
	if err != nil {
		logger.Error("failed to load listen stats, starting fresh", "err", err)
		l.save()
		return l
	}
	if !found {
		return l
	}

	repaired := false
	l.rows = make([][]int, len(raw))
	l.tracked = make([]int, len(raw))
	for i, rowRaw := range raw {
		row, ok := l.decodeRow(rowRaw)
		if !ok {
			logger.Warn("discarding malformed listen stats row", "collection", i)
			repaired = true
		}
		l.rows[i] = row
		l.tracked[i] = l.slots
	}
	if repaired {
		l.save()
	}
	return l
}

func (l *Listens) decodeRow(raw json.RawMessage) ([]int, bool) {
	row := make([]int, l.slots)
	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return row, false
	}
	for i, v := range values {
		var n *float64
		if err := json.Unmarshal(v, &n); err != nil || n == nil || math.IsNaN(*n) || math.IsInf(*n, 0) {
			return make([]int, l.slots), false
		}
		if i >= l.slots {
			continue
		}
		row[i] = l.clampFloat(*n)
	}
	return row, true
}

// clampFloat bounds a decoded count before the int conversion, so huge
// values saturate at the cap.
func (l *Listens) clampFloat(n float64) int {
	if n <= 0 {
		return 0
	}
	if n >= float64(l.cap) {
		return l.cap
	}
	return int(n)
}

// Cap returns the saturation limit.
func (l *Listens) Cap() int {
	return l.cap
}

// Slots returns the number of tracked phrases per collection.
func (l *Listens) Slots() int {
	return l.slots
}

// EnsureShape resizes the row for collection to exactly Slots entries,
// keeping counts for phrases still in range and zeroing the rest.
func (l *Listens) EnsureShape(collection, phraseCount int) {
	if collection < 0 {
		return
	}
	for len(l.rows) <= collection {
		l.rows = append(l.rows, make([]int, l.slots))
		l.tracked = append(l.tracked, 0)
	}
	limit := min(max(phraseCount, 0), l.slots)
	normalized := make([]int, l.slots)
	existing := l.rows[collection]
	for i := 0; i < limit && i < len(existing); i++ {
		normalized[i] = l.clamp(existing[i])
	}
	l.rows[collection] = normalized
	l.tracked[collection] = limit
}

// EnsureAll shapes one row per collection and drops rows past the last one.
func (l *Listens) EnsureAll(phraseCounts []int) {
	for i, n := range phraseCounts {
		l.EnsureShape(i, n)
	}
	if len(l.rows) > len(phraseCounts) {
		l.rows = l.rows[:len(phraseCounts)]
		l.tracked = l.tracked[:len(phraseCounts)]
	}
}

// Increment adds one listen for the phrase and persists the table. It reports
// whether the counter changed; tracked-range misses and saturated counters
// are no-ops.
func (l *Listens) Increment(collection, phrase int) bool {
	if collection < 0 || collection >= len(l.rows) {
		return false
	}
	if phrase < 0 || phrase >= l.tracked[collection] {
		return false
	}
	row := l.rows[collection]
	if row[phrase] >= l.cap {
		return false
	}
	row[phrase]++
	l.save()
	return true
}

// Count returns the listen count for a phrase, or 0 when untracked.
func (l *Listens) Count(collection, phrase int) int {
	if collection < 0 || collection >= len(l.rows) {
		return 0
	}
	if phrase < 0 || phrase >= l.tracked[collection] {
		return 0
	}
	return l.rows[collection][phrase]
}

// Mastered reports whether the phrase has reached the cap.
func (l *Listens) Mastered(collection, phrase int) bool {
	return l.Count(collection, phrase) >= l.cap
}

// Row returns a copy of the tracked counts for a collection.
func (l *Listens) Row(collection int) []int {
	if collection < 0 || collection >= len(l.rows) {
		return nil
	}
	out := make([]int, l.tracked[collection])
	copy(out, l.rows[collection])
	return out
}

// Totals returns the clamped sum of tracked counters and the theoretical
// maximum (tracked slots × cap).
func (l *Listens) Totals() (listened, maximum int) {
	for c, row := range l.rows {
		for p := 0; p < l.tracked[c]; p++ {
			listened += l.clamp(row[p])
		}
		maximum += l.tracked[c] * l.cap
	}
	return listened, maximum
}

// TotalProgress returns the completion ratio in [0, 1].
func (l *Listens) TotalProgress() float64 {
	listened, maximum := l.Totals()
	if maximum == 0 {
		return 0
	}
	return float64(listened) / float64(maximum)
}

// RemoveCollection drops the row for a removed collection so later rows stay
// aligned with their collections.
func (l *Listens) RemoveCollection(collection int) {
	if collection < 0 || collection >= len(l.rows) {
		return
	}
	l.rows = append(l.rows[:collection], l.rows[collection+1:]...)
	l.tracked = append(l.tracked[:collection], l.tracked[collection+1:]...)
	l.save()
}

// RemovePhrase shifts counts after a removed phrase one slot to the left.
func (l *Listens) RemovePhrase(collection, phrase int) {
	if collection < 0 || collection >= len(l.rows) {
		return
	}
	row := l.rows[collection]
	if phrase < 0 || phrase >= len(row) {
		return
	}
	copy(row[phrase:], row[phrase+1:])
	row[len(row)-1] = 0
	if phrase < l.tracked[collection] {
		l.tracked[collection]--
	}
	l.save()
}

func (l *Listens) clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > l.cap {
		return l.cap
	}
	return n
}

func (l *Listens) save() {
	rows := l.rows
	if rows == nil {
		rows = [][]int{}
	}
	if err := store.SaveJSON(l.kv, store.KeyListenStats, rows); err != nil {
		l.log.Error("failed to save listen stats", "err", err)
	}
}
