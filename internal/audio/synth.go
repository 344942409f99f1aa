package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// minSlideFrequency is the floor of a frequency slide in Hz.
const minSlideFrequency = 50.0

// Tone describes one synthesized blip.
type Tone struct {
	Freq     float64       // Start frequency in Hz
	Wave     WaveType
	Duration time.Duration // Length of the pitched part
	Volume   float64       // Peak gain in [0, 1]
	Slide    float64       // End frequency as a factor of Freq; 0 for none
	Attack   time.Duration
	Release  time.Duration // Tail after Duration
}

// Length returns the total play time of the tone.
func (t Tone) Length() time.Duration {
	return t.Duration + t.Release
}

// Streamer renders the tone at the given sample rate.
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	osc := &oscillator{
		start:    t.Freq,
		end:      t.endFrequency(),
		slideLen: rate.N(t.Duration),
		total:    rate.N(t.Length()),
		wave:     t.Wave,
		rate:     rate,
	}
	shaped := newEnvelope(osc, rate.N(t.Attack), rate.N(t.Release), osc.total)
	return newVolume(shaped, t.Volume)
}

// endFrequency is where the slide lands, never below minSlideFrequency.
func (t Tone) endFrequency() float64 {
	if t.Slide <= 0 {
		return t.Freq
	}
	return max(minSlideFrequency, t.Freq*t.Slide)
}

// oscillator generates a wave whose frequency glides exponentially from start
// to end over slideLen samples, then holds.
type oscillator struct {
	start    float64
	end      float64
	slideLen int
	total    int
	position int
	phase    float64
	wave     WaveType
	rate     beep.SampleRate
}

func (o *oscillator) frequency() float64 {
	if o.start == o.end || o.slideLen <= 0 {
		return o.start
	}
	progress := min(float64(o.position)/float64(o.slideLen), 1)
	return o.start * math.Pow(o.end/o.start, progress)
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.frequency() / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, attack, release, total int) *envelope {
	return &envelope{streamer: s, attack: attack, release: release, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			gain = max(float64(e.total-e.position)/float64(e.release), 0)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. effects.Volume works in exponent
// space, so a zero gain becomes silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
