// Package sound plays the dial's tick and done clips.
package sound

import (
	"bytes"
	"embed"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"dialtimer/internal/core/model"
)

// SampleRate is the speaker output rate; clips recorded at another rate are
// resampled on load.
const SampleRate beep.SampleRate = 44100

// Player plays pre-rendered clips on the default speaker. The speaker is
// opened on first use so a machine without audio only loses sound.
type Player struct {
	format beep.Format
	clips  map[model.Clip]*beep.Buffer
	volume float64
	logger *log.Logger

	initOnce sync.Once
	initErr  error
	open     func(beep.SampleRate, int) error
	play     func(...beep.Streamer)
}

// Option customizes a Player.
type Option func(*Player)

// WithVolume sets the gain in beep's exponential scale; 0 is unchanged and
// negative values are quieter.
func WithVolume(volume float64) Option {
	return func(player *Player) {
		player.volume = volume
	}
}

// WithLogger sets where playback failures are reported.
func WithLogger(logger *log.Logger) Option {
	return func(player *Player) {
		if logger != nil {
			player.logger = logger
		}
	}
}

//go:embed clips/*.wav
var clipFS embed.FS

var clipFiles = map[model.Clip]string{
	model.ClipTick: "clips/tick.wav",
	model.ClipDone: "clips/done.wav",
}

// NewPlayer decodes all clips up front. A clip that fails to decode is
// logged and stays silent.
func NewPlayer(options ...Option) *Player {
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	player := &Player{
		format: format,
		clips:  make(map[model.Clip]*beep.Buffer),
		volume: -1,
		logger: log.Default(),
		open:   speaker.Init,
		play:   speaker.Play,
	}
	for _, option := range options {
		option(player)
	}
	for clip, name := range clipFiles {
		buffer, err := player.load(name)
		if err != nil {
			player.logger.Printf("load sound %s: %v", clip, err)
			continue
		}
		player.clips[clip] = buffer
	}
	return player
}

// Play starts clip and returns immediately.
func (player *Player) Play(clip model.Clip) {
	buffer, ok := player.clips[clip]
	if !ok {
		player.logger.Printf("play sound: unknown clip %q", clip)
		return
	}
	if err := player.ensureSpeaker(); err != nil {
		return
	}
	player.play(&effects.Volume{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Base:     2,
		Volume:   player.volume,
	})
}

// Duration returns the length of clip, or zero when unknown.
func (player *Player) Duration(clip model.Clip) time.Duration {
	buffer, ok := player.clips[clip]
	if !ok {
		return 0
	}
	return player.format.SampleRate.D(buffer.Len())
}

func (player *Player) ensureSpeaker() error {
	player.initOnce.Do(func() {
		bufferSize := player.format.SampleRate.N(time.Second / 20)
		if err := player.open(player.format.SampleRate, bufferSize); err != nil {
			player.initErr = fmt.Errorf("init speaker: %w", err)
			player.logger.Printf("sound disabled: %v", player.initErr)
		}
	})
	return player.initErr
}

func (player *Player) load(name string) (*beep.Buffer, error) {
	data, err := clipFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read clip: %w", err)
	}
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clip: %w", err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != player.format.SampleRate {
		source = beep.Resample(4, format.SampleRate, player.format.SampleRate, streamer)
	}
	buffer := beep.NewBuffer(player.format)
	buffer.Append(source)
	return buffer, nil
}
