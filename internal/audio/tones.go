package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

const sampleRate = beep.SampleRate(44100)

// Sweep is a sine tone gliding linearly from one frequency to another
// under a short attack and a linear release. It ends after its duration.
type Sweep struct {
	sr       beep.SampleRate
	from, to float64
	volume   float64
	total    int
	pos      int
	phase    float64
}

// NewSweep creates a finite frequency sweep.
func NewSweep(sr beep.SampleRate, from, to float64, d time.Duration, volume float64) *Sweep {
	return &Sweep{
		sr:     sr,
		from:   from,
		to:     to,
		volume: volume,
		total:  sr.N(d),
	}
}

func (s *Sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	attack := s.sr.N(5 * time.Millisecond)

	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		s.phase += 2 * math.Pi * freq / float64(s.sr)

		env := 1 - progress
		if s.pos < attack {
			env *= float64(s.pos) / float64(attack)
		}
		sample := s.volume * env * math.Sin(s.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		s.pos++
	}
	return len(samples), true
}

func (s *Sweep) Err() error {
	return nil
}

// Buzz is a low tone with odd harmonics and a fast decay, used for crashes.
type Buzz struct {
	sr    beep.SampleRate
	freq  float64
	total int
	pos   int
}

// NewBuzz creates a finite buzz at freq.
func NewBuzz(sr beep.SampleRate, freq float64, d time.Duration) *Buzz {
	return &Buzz{sr: sr, freq: freq, total: sr.N(d)}
}

func (b *Buzz) Stream(samples [][2]float64) (n int, ok bool) {
	if b.pos >= b.total {
		return 0, false
	}
	for i := range samples {
		if b.pos >= b.total {
			return i, true
		}
		t := float64(b.pos) / float64(b.sr)

		sample := 0.3 * math.Sin(2*math.Pi*b.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*b.freq*3*t)
		sample += 0.075 * math.Sin(2*math.Pi*b.freq*5*t)

		decay := math.Exp(-4 * float64(b.pos) / float64(b.total))
		sample *= decay

		samples[i][0] = sample
		samples[i][1] = sample
		b.pos++
	}
	return len(samples), true
}

func (b *Buzz) Err() error {
	return nil
}

// Tone returns a fresh finite streamer for cue.
//
//	Jump:  rising chirp
//	Hit:   low buzz
//	Score: two-note ding
func Tone(cue flappy.Cue) beep.Streamer {
	switch cue {
	case flappy.CueJump:
		return NewSweep(sampleRate, 440, 880, 90*time.Millisecond, 0.25)
	case flappy.CueHit:
		return NewBuzz(sampleRate, 110, 300*time.Millisecond)
	case flappy.CueScore:
		return beep.Seq(ding(988, 60*time.Millisecond), ding(1319, 120*time.Millisecond))
	default:
		return beep.Silence(0)
	}
}

// ding is a pure sine note at reduced volume.
func ding(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(sampleRate.N(d))
	}
	return beep.Take(sampleRate.N(d), quiet(sine, 0.2))
}

// quiet scales a streamer's amplitude.
func quiet(s beep.Streamer, gain float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		n, ok = s.Stream(samples)
		for i := 0; i < n; i++ {
			samples[i][0] *= gain
			samples[i][1] *= gain
		}
		return n, ok
	})
}
