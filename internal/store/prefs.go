package store

import (
	"strconv"

	"github.com/charmbracelet/log"
)

// Persistence keys.
const (
	KeyCollections   = "phraseCollections"
	KeyListenStats   = "phraseListenStats"
	KeyTheme         = "phraseTheme"
	KeyRate          = "phraseRate"
	KeyTargetEnabled = "phraseTargetEnabled"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultRate is the speech rate used when nothing valid is stored.
const DefaultRate = 1.0

// Prefs reads and writes small user preferences. Failures are logged and
// fall back to defaults; they never reach the caller.
type Prefs struct {
	kv  KV
	log *log.Logger
}

// NewPrefs wraps kv. A nil logger uses the default charmbracelet logger.
func NewPrefs(kv KV, logger *log.Logger) *Prefs {
	if logger == nil {
		logger = log.Default()
	}
	return &Prefs{kv: kv, log: logger}
}

// Theme returns the stored theme, or light for anything unrecognised.
func (p *Prefs) Theme() string {
	raw, ok := p.get(KeyTheme)
	if !ok {
		return ThemeLight
	}
	if raw == ThemeDark {
		return ThemeDark
	}
	if raw != ThemeLight {
		p.log.Warn("ignoring stored theme", "value", raw)
	}
	return ThemeLight
}

// SetTheme stores the theme. Unknown values are stored as light.
func (p *Prefs) SetTheme(theme string) {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	p.set(KeyTheme, theme)
}

// Rate returns the stored speech rate, or DefaultRate when missing or invalid.
func (p *Prefs) Rate() float64 {
	raw, ok := p.get(KeyRate)
	if !ok {
		return DefaultRate
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0.5 || rate > 2.0 {
		p.log.Warn("ignoring stored rate", "value", raw)
		return DefaultRate
	}
	return rate
}

// SetRate stores the speech rate with one decimal.
func (p *Prefs) SetRate(rate float64) {
	p.set(KeyRate, strconv.FormatFloat(rate, 'f', 1, 64))
}

// TargetEnabled returns the stored target-language toggle, or true.
func (p *Prefs) TargetEnabled() bool {
	raw, ok := p.get(KeyTargetEnabled)
	if !ok {
		return true
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		p.log.Warn("ignoring stored target toggle", "value", raw)
		return true
	}
	return enabled
}

// SetTargetEnabled stores the target-language toggle.
func (p *Prefs) SetTargetEnabled(enabled bool) {
	p.set(KeyTargetEnabled, strconv.FormatBool(enabled))
}

func (p *Prefs) get(key string) (string, bool) {
	raw, ok, err := p.kv.Get(key)
	if err != nil {
		p.log.Error("failed to read preference", "key", key, "err", err)
		return "", false
	}
	return raw, ok
}

func (p *Prefs) set(key, value string) {
	if err := p.kv.Set(key, value); err != nil {
		p.log.Error("failed to save preference", "key", key, "err", err)
	}
}
