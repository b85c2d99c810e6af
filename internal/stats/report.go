package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/phrasedrill/internal/model"
)

const (
	terminalWidthBackup = 80
	minBarWidth         = 10
	maxPhraseColumn     = 36
)

// TerminalWidth returns the width of stdout, or a fallback when it is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return terminalWidthBackup
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return terminalWidthBackup
	}
	return w
}

// ProgressBar renders ratio as a fixed-width ASCII bar such as "[####----]".
func ProgressBar(ratio float64, width int) string {
	if width < minBarWidth {
		width = minBarWidth
	}
	inner := width - 2
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(inner)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", inner-filled) + "]"
}

// ProgressLabel formats the aggregate listen counter line.
func ProgressLabel(l *Listens) string {
	listened, maximum := l.Totals()
	return fmt.Sprintf("Listening progress: %d / %d", listened, maximum)
}

// RenderSummary prints overall progress and one line per collection.
func RenderSummary(w io.Writer, names []string, l *Listens, width int) error {
	if _, err := fmt.Fprintln(w, ProgressLabel(l)); err != nil {
		return err
	}
	barWidth := width - 8
	if _, err := fmt.Fprintf(w, "%s %5.1f%%\n", ProgressBar(l.TotalProgress(), barWidth), l.TotalProgress()*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	cols := []column{
		{title: "#", right: true},
		{title: "Collection", maxWidth: maxPhraseColumn},
		{title: "Listened", right: true},
		{title: "Mastered", right: true},
	}
	rows := make([][]string, 0, len(names))
	for i, name := range names {
		row := l.Row(i)
		total, mastered := 0, 0
		for p, n := range row {
			total += n
			if l.Mastered(i, p) {
				mastered++
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			name,
			fmt.Sprintf("%d / %d", total, len(row)*l.Cap()),
			fmt.Sprintf("%d / %d", mastered, len(row)),
		})
	}
	for _, line := range formatTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTable prints per-phrase listen counts for one collection.
func RenderTable(w io.Writer, index int, c model.Collection, l *Listens) error {
	if _, err := fmt.Fprintf(w, "%s\n", c.Name); err != nil {
		return err
	}
	if len(c.Phrases) == 0 {
		_, err := fmt.Fprintln(w, "This collection has no phrases yet.")
		return err
	}
	cols := []column{
		{title: "#", right: true},
		{title: "Source", maxWidth: maxPhraseColumn},
		{title: "Target", maxWidth: maxPhraseColumn},
		{title: "Listened", right: true},
		{title: ""},
	}
	rows := make([][]string, 0, len(c.Phrases))
	for p, phrase := range c.Phrases {
		listened := "-"
		mark := ""
		if p < l.Slots() {
			listened = strconv.Itoa(l.Count(index, p))
			if l.Mastered(index, p) {
				mark = "mastered"
			}
		}
		rows = append(rows, []string{strconv.Itoa(p + 1), phrase.Source, phrase.Target, listened, mark})
	}
	for _, line := range formatTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(c.Phrases) > l.Slots() {
		if _, err := fmt.Fprintf(w, "Only the first %d phrases are tracked.\n", l.Slots()); err != nil {
			return err
		}
	}
	return nil
}
