package speech

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// SampleRate matches espeak-ng's native output.
	SampleRate = 22050
	channels   = 1
	cacheSize  = 128
)

var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

// audioContext returns the process-wide oto context. oto allows only one.
func audioContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoErr = fmt.Errorf("failed to create audio context: %w", err)
			return
		}
		<-ready
		otoCtx = ctx
	})
	return otoCtx, otoErr
}

type cacheKey struct {
	text string
	lang string
	rate float64
}

// NewAudio returns a speaker that synthesizes with synth and plays through
// the system audio device. Synthesized audio is cached per text, language
// and rate; volume is applied at playback so a muted repeat reuses the
// cached sound.
func NewAudio(synth Synthesizer, logger *log.Logger) (*Queue, error) {
	ctx, err := audioContext()
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[cacheKey, PCM](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create audio cache: %w", err)
	}
	return newQueue(&audioPreparer{ctx: ctx, synth: synth, cache: cache}, logger), nil
}

type audioPreparer struct {
	ctx   *oto.Context
	synth Synthesizer
	cache *lru.Cache[cacheKey, PCM]
}

func (p *audioPreparer) prepare(ctx context.Context, u Utterance) (clip, error) {
	pcm, err := p.synthesize(ctx, u)
	if err != nil {
		return nil, err
	}
	player := p.ctx.NewPlayer(bytes.NewReader(pcm.Data))
	player.SetVolume(clampVolume(u.Volume))
	return &playerClip{player: player}, nil
}

func (p *audioPreparer) synthesize(ctx context.Context, u Utterance) (PCM, error) {
	key := cacheKey{text: u.Text, lang: u.Lang, rate: u.Rate}
	if pcm, ok := p.cache.Get(key); ok {
		return pcm, nil
	}
	full := u
	full.Volume = 1
	pcm, err := p.synth.Synthesize(ctx, full)
	if err != nil {
		return PCM{}, err
	}
	if pcm.SampleRate != SampleRate || pcm.Channels != channels {
		return PCM{}, fmt.Errorf("unsupported audio format: %d Hz, %d channels", pcm.SampleRate, pcm.Channels)
	}
	p.cache.Add(key, pcm)
	return pcm, nil
}

// playerClip adapts an oto player. A player that has drained its reader
// reports !IsPlaying.
type playerClip struct {
	player *oto.Player
}

func (c *playerClip) Start()  { c.player.Play() }
func (c *playerClip) Pause()  { c.player.Pause() }
func (c *playerClip) Resume() { c.player.Play() }

func (c *playerClip) Finished() bool { return !c.player.IsPlaying() }

func (c *playerClip) Close() error { return c.player.Close() }
