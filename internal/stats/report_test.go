package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/phrasedrill/internal/model"
	"github.com/verte-zerg/phrasedrill/internal/store"
)

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0.5, 12); got != "[#####-----]" {
		t.Fatalf("unexpected bar: %q", got)
	}
	if got := ProgressBar(2, 12); got != "[##########]" {
		t.Fatalf("expected ratio clamped to 1, got %q", got)
	}
	if got := ProgressBar(0, 1); len(got) != minBarWidth {
		t.Fatalf("expected minimum width, got %q", got)
	}
}

func TestRenderTableMarksMastered(t *testing.T) {
	l := Load(store.NewMemory(), nil, Options{Cap: 1, Slots: 2})
	c := model.Collection{Name: "Basics", Phrases: []model.Phrase{
		{Source: "hello", Target: "привет"},
		{Source: "bye", Target: "пока"},
		{Source: "yes", Target: "да"},
	}}
	l.EnsureShape(0, len(c.Phrases))
	l.Increment(0, 0)

	var buf bytes.Buffer
	if err := RenderTable(&buf, 0, c, l); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Basics", "hello", "mastered", "Only the first 2 phrases are tracked."} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestRenderSummaryShowsTotals(t *testing.T) {
	l := Load(store.NewMemory(), nil, Options{Cap: 2, Slots: 2})
	l.EnsureAll([]int{2})
	l.Increment(0, 0)

	var buf bytes.Buffer
	if err := RenderSummary(&buf, []string{"Basics"}, l, 40); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Listening progress: 1 / 4") {
		t.Fatalf("missing progress label:\n%s", out)
	}
	if !strings.Contains(out, "25.0%") {
		t.Fatalf("missing percentage:\n%s", out)
	}
}
