package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultWordsPerMinute is espeak-ng's own default speed.
const DefaultWordsPerMinute = 175

// Synthesizer renders an utterance to PCM.
type Synthesizer interface {
	Synthesize(ctx context.Context, u Utterance) (PCM, error)
}

// ESpeakConfig holds espeak-ng tuning.
type ESpeakConfig struct {
	Binary         string
	WordsPerMinute int
	// Voices overrides the voice chosen for a language tag.
	Voices map[string]string
}

type runFunc func(ctx context.Context, stdin string, name string, args ...string) ([]byte, error)

// ESpeak synthesizes speech with the espeak-ng command line tool.
type ESpeak struct {
	config ESpeakConfig
	run    runFunc
}

// NewESpeak checks that espeak-ng is installed and returns a synthesizer.
func NewESpeak(config ESpeakConfig) (*ESpeak, error) {
	if config.Binary == "" {
		config.Binary = "espeak-ng"
	}
	if config.WordsPerMinute <= 0 {
		config.WordsPerMinute = DefaultWordsPerMinute
	}
	if _, err := exec.LookPath(config.Binary); err != nil {
		return nil, fmt.Errorf("%s is not installed or not in PATH: %w", config.Binary, err)
	}
	return &ESpeak{config: config, run: runCommand}, nil
}

// Args returns the espeak-ng arguments used for u.
func (e *ESpeak) Args(u Utterance) ([]string, error) {
	voice, err := VoiceFor(u.Lang, e.config.Voices[u.Lang])
	if err != nil {
		return nil, err
	}
	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}
	wpm := int(math.Round(float64(e.config.WordsPerMinute) * rate))
	amplitude := int(math.Round(clampVolume(u.Volume) * 100))
	return []string{
		"--stdout",
		"-v", voice,
		"-s", strconv.Itoa(wpm),
		"-a", strconv.Itoa(amplitude),
	}, nil
}

// Synthesize runs espeak-ng and decodes its WAV output. The text is passed on
// stdin so phrases starting with a dash are not read as flags.
func (e *ESpeak) Synthesize(ctx context.Context, u Utterance) (PCM, error) {
	if strings.TrimSpace(u.Text) == "" {
		return PCM{}, errors.New("text cannot be empty")
	}
	args, err := e.Args(u)
	if err != nil {
		return PCM{}, err
	}
	out, err := e.run(ctx, u.Text, e.config.Binary, args...)
	if err != nil {
		return PCM{}, fmt.Errorf("espeak-ng failed: %w", err)
	}
	pcm, err := DecodeWAV(out)
	if err != nil {
		return PCM{}, fmt.Errorf("decode espeak-ng output: %w", err)
	}
	return pcm, nil
}

func runCommand(ctx context.Context, stdin string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
