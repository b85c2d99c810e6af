// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/phrasedrill/internal/collection"
	"github.com/verte-zerg/phrasedrill/internal/model"
	"github.com/verte-zerg/phrasedrill/internal/playback"
	"github.com/verte-zerg/phrasedrill/internal/speech"
	"github.com/verte-zerg/phrasedrill/internal/stats"
	"github.com/verte-zerg/phrasedrill/internal/store"
)

// Options wires the model to the drill components.
type Options struct {
	Engine  *playback.Engine
	Repo    *collection.Repository
	Listens *stats.Listens
	Prefs   *store.Prefs
	// Done carries speaker completions. Each one is applied inside Update.
	Done       <-chan speech.Done
	TargetLang string
	Logger     *log.Logger
}

type doneMsg speech.Done

// Model implements the Bubble Tea drill UI.
type Model struct {
	engine  *playback.Engine
	repo    *collection.Repository
	listens *stats.Listens
	prefs   *store.Prefs
	done    <-chan speech.Done
	log     *log.Logger

	targetLang string
	snap       playback.Snapshot
	theme      string
	styles     styles
	keys       keyMap
	formKeys   formKeyMap
	help       help.Model
	progress   progress.Model
	table      table.Model
	followed   [2]int // collection and phrase the table cursor last followed
	errMsg     string

	adding bool
	inputs [2]textinput.Model
	focus  int

	width  int
	height int
}

// NewModel constructs the drill TUI.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	m := &Model{
		engine:     opts.Engine,
		repo:       opts.Repo,
		listens:    opts.Listens,
		prefs:      opts.Prefs,
		done:       opts.Done,
		log:        logger,
		targetLang: opts.TargetLang,
		keys:       defaultKeyMap(),
		formKeys:   defaultFormKeyMap(),
		help:       help.New(),
		table: table.New(
			table.WithFocused(true),
			table.WithHeight(8),
		),
		followed: [2]int{-1, -1},
	}
	m.inputs[0] = newInput("source phrase")
	m.inputs[1] = newInput("target phrase")
	m.setTheme(m.prefs.Theme())
	m.engine.OnChange(func(s playback.Snapshot) { m.snap = s })
	m.snap = m.engine.Snapshot()
	m.layout()
	m.refreshTable()
	return m
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 40
	return in
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForDone()
}

func (m *Model) waitForDone() tea.Cmd {
	if m.done == nil {
		return nil
	}
	ch := m.done
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return nil
		}
		return doneMsg(d)
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case doneMsg:
		m.engine.HandleDone(speech.Done(msg))
		m.refreshTable()
		return m, m.waitForDone()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.engine.Stop()
			return m, tea.Quit
		}
		if m.adding {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.PlayPause):
		m.engine.TogglePlay()
	case key.Matches(msg, m.keys.Stop):
		m.engine.Stop()
	case key.Matches(msg, m.keys.Next):
		m.engine.Next()
	case key.Matches(msg, m.keys.Prev):
		m.engine.Prev()
	case key.Matches(msg, m.keys.Target):
		m.engine.SetTargetLanguageEnabled(!m.engine.TargetLanguageEnabled())
	case key.Matches(msg, m.keys.Faster):
		m.engine.AdjustRate(playback.RateStep)
	case key.Matches(msg, m.keys.Slower):
		m.engine.AdjustRate(-playback.RateStep)
	case key.Matches(msg, m.keys.NextColl):
		m.engine.SelectCollection((m.snap.CollectionIndex + 1) % m.repo.Len())
	case key.Matches(msg, m.keys.PrevColl):
		n := m.repo.Len()
		m.engine.SelectCollection((m.snap.CollectionIndex - 1 + n) % n)
	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown(1)
		return m, nil
	case key.Matches(msg, m.keys.PlayRow):
		m.engine.SelectPhrase(m.table.Cursor())
	case key.Matches(msg, m.keys.AddPhrase):
		return m, m.openForm()
	case key.Matches(msg, m.keys.RemoveCurr):
		if m.snap.HasPhrase {
			if err := m.engine.RemovePhrase(m.snap.CollectionIndex, m.snap.PhraseIndex); err != nil {
				m.errMsg = err.Error()
			}
		}
	case key.Matches(msg, m.keys.Theme):
		next := store.ThemeDark
		if m.theme == store.ThemeDark {
			next = store.ThemeLight
		}
		m.prefs.SetTheme(next)
		m.setTheme(next)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	default:
		return m, nil
	}
	m.refreshTable()
	return m, nil
}

func (m *Model) openForm() tea.Cmd {
	m.adding = true
	m.focus = 0
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	return m.inputs[0].Focus()
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.adding = false
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, m.formKeys.Switch):
		return m, m.focusInput(1 - m.focus)
	case key.Matches(msg, m.formKeys.Submit):
		if m.focus == 0 {
			return m, m.focusInput(1)
		}
		phrase := model.Phrase{Source: m.inputs[0].Value(), Target: m.inputs[1].Value()}
		if err := m.engine.AddPhrase(m.snap.CollectionIndex, phrase); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.adding = false
		m.errMsg = ""
		m.refreshTable()
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) setTheme(theme string) {
	m.theme = theme
	m.styles = newStyles(theme)
	m.table.SetStyles(m.styles.table)
	width := m.progress.Width
	m.progress = progress.New(
		progress.WithGradient(m.styles.gradient[0], m.styles.gradient[1]),
		progress.WithoutPercentage(),
	)
	if width > 0 {
		m.progress.Width = width
	}
}

// layout sizes the progress bar and phrase table to the window.
func (m *Model) layout() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.progress.Width = max(10, min(60, width-4))

	cols := tableColumns(width)
	m.table.SetColumns(cols)
	m.table.SetWidth(min(width, tableWidth(cols)))

	if m.height > 0 {
		// header, phrase card, status, progress, help and padding
		reserved := 16
		if m.help.ShowAll {
			reserved += 4
		}
		m.table.SetHeight(max(3, m.height-reserved))
	}
}

func (m *Model) refreshTable() {
	c, ok := m.repo.Collection(m.snap.CollectionIndex)
	if !ok {
		m.table.SetRows(nil)
		return
	}
	rows := make([]table.Row, 0, len(c.Phrases))
	for i, p := range c.Phrases {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			p.Source,
			p.Target,
			listenedLabel(m.listens, m.snap.CollectionIndex, i),
		})
	}
	m.table.SetRows(rows)
	current := [2]int{m.snap.CollectionIndex, m.snap.PhraseIndex}
	if m.snap.HasPhrase && current != m.followed {
		m.table.SetCursor(m.snap.PhraseIndex)
		m.followed = current
	}
}
