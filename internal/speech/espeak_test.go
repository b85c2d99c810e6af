package speech

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestVoiceFor(t *testing.T) {
	cases := map[string]string{
		"en-US": "en-us",
		"ru-RU": "ru",
		"ru":    "ru",
		"de-AT": "de",
		"pt-BR": "pt-br",
	}
	for tag, want := range cases {
		got, err := VoiceFor(tag, "")
		if err != nil {
			t.Fatalf("VoiceFor(%q): %v", tag, err)
		}
		if got != want {
			t.Fatalf("VoiceFor(%q) = %q, want %q", tag, got, want)
		}
	}
	if got, _ := VoiceFor("en-US", "en-gb-x-rp"); got != "en-gb-x-rp" {
		t.Fatalf("expected override, got %q", got)
	}
	if _, err := VoiceFor("not a tag!", ""); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestESpeakArgs(t *testing.T) {
	e := &ESpeak{config: ESpeakConfig{Binary: "espeak-ng", WordsPerMinute: 160}}
	args, err := e.Args(Utterance{Text: "hello", Lang: "en-US", Rate: 1.5, Volume: 0})
	if err != nil {
		t.Fatalf("args: %v", err)
	}
	got := strings.Join(args, " ")
	if got != "--stdout -v en-us -s 240 -a 0" {
		t.Fatalf("unexpected args: %q", got)
	}
}

func TestESpeakSynthesizePassesTextOnStdin(t *testing.T) {
	data := []byte{1, 0}
	var gotStdin string
	e := &ESpeak{
		config: ESpeakConfig{Binary: "espeak-ng", WordsPerMinute: 175},
		run: func(_ context.Context, stdin string, name string, args ...string) ([]byte, error) {
			gotStdin = stdin
			if name != "espeak-ng" {
				t.Fatalf("unexpected binary %q", name)
			}
			return buildWAV(SampleRate, 2, data), nil
		},
	}
	pcm, err := e.Synthesize(context.Background(), Utterance{Text: "-privet", Lang: "ru-RU", Rate: 1, Volume: 1})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if gotStdin != "-privet" {
		t.Fatalf("expected text on stdin, got %q", gotStdin)
	}
	if len(pcm.Data) != 2 {
		t.Fatalf("unexpected pcm length %d", len(pcm.Data))
	}
}

func TestESpeakSynthesizeErrors(t *testing.T) {
	e := &ESpeak{
		config: ESpeakConfig{Binary: "espeak-ng", WordsPerMinute: 175},
		run: func(context.Context, string, string, ...string) ([]byte, error) {
			return nil, errors.New("exit status 1")
		},
	}
	if _, err := e.Synthesize(context.Background(), Utterance{Text: "   ", Lang: "en"}); err == nil {
		t.Fatalf("expected error for blank text")
	}
	if _, err := e.Synthesize(context.Background(), Utterance{Text: "hi", Lang: "en"}); err == nil {
		t.Fatalf("expected error from runner")
	}
}

func TestEstimateDuration(t *testing.T) {
	slow := EstimateDuration("a fairly long sentence to say", 0.5)
	fast := EstimateDuration("a fairly long sentence to say", 2)
	if slow <= fast {
		t.Fatalf("expected slower rate to take longer: %v vs %v", slow, fast)
	}
	if EstimateDuration("", 1) != minUtterance {
		t.Fatalf("expected minimum duration for empty text")
	}
}
