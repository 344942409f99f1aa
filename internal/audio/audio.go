// Package audio turns game cues into short synthesized sounds played through
// the system speaker.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/astroops/internal/object"
)

const (
	sampleRate = beep.SampleRate(44100)
	// maxVoices bounds simultaneous sounds so held fire cannot pile up.
	maxVoices = 16
)

const (
	defaultAttack  = 2 * time.Millisecond
	defaultRelease = 80 * time.Millisecond
)

// Sounds maps each cue to its tone.
var Sounds = map[object.Cue]Tone{
	object.CueFire:       {Freq: 880, Wave: WaveSquare, Duration: 60 * time.Millisecond, Volume: 0.18, Slide: 0.7},
	object.CueThrust:     {Freq: 120, Wave: WaveSaw, Duration: 80 * time.Millisecond, Volume: 0.14},
	object.CueExplosion:  {Freq: 90, Wave: WaveTriangle, Duration: 180 * time.Millisecond, Volume: 0.30, Slide: 0.5},
	object.CueHyperspace: {Freq: 600, Wave: WaveSine, Duration: 200 * time.Millisecond, Volume: 0.20},
}

func init() {
	for cue, tone := range Sounds {
		tone.Attack = defaultAttack
		tone.Release = defaultRelease
		Sounds[cue] = tone
	}
}

// Sink plays cues through the speaker. The zero value is not usable; create
// one with New.
type Sink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	logger      *log.Logger
	initialized bool
}

// Compile-time check that Sink implements object.CueSink.
var _ object.CueSink = (*Sink)(nil)

// New creates a sink with a master volume in [0, 1].
func New(volume float64, logger *log.Logger) *Sink {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sink{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
		logger: logger,
	}
}

// Init opens the speaker. Without a working audio device it returns an
// error and the sink stays silent.
func (s *Sink) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play starts the sound for cue. It never blocks on playback.
func (s *Sink) Play(cue object.Cue) {
	tone, ok := Sounds[cue]
	if !ok {
		return
	}
	tone.Volume *= s.volume

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if s.mixer.Len() >= maxVoices {
		s.logger.Debug("dropping cue, too many voices", "cue", cue)
		return
	}
	s.mixer.Add(tone.Streamer(sampleRate))
}

// Close silences the sink and releases the speaker.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// Nop is a sink that drops every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(object.Cue) {}
