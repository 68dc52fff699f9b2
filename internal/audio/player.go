// Package audio turns engine cues into short synthesized sound effects.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// cueBuffer bounds how many cues may wait for playback before new ones
// are dropped.
const cueBuffer = 16

// Player plays cues on the local speaker. Cue never blocks: requests are
// queued on a buffered channel and a background goroutine mixes them in.
type Player struct {
	mu      sync.Mutex
	cues    chan flappy.Cue
	done    chan struct{}
	wg      sync.WaitGroup
	mixer   *beep.Mixer
	logger  *log.Logger
	started bool
	closed  bool
}

var _ flappy.CueSink = (*Player)(nil)

// NewPlayer creates a player. Nothing is audible until Start succeeds.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		cues:   make(chan flappy.Cue, cueBuffer),
		done:   make(chan struct{}),
		mixer:  &beep.Mixer{},
		logger: logger.WithPrefix("audio"),
	}
}

// Start opens the speaker and begins consuming cues.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if p.closed {
		return fmt.Errorf("audio: player closed")
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true

	p.wg.Add(1)
	go p.loop()

	p.logger.Debug("speaker ready", "sample_rate", int(sampleRate))
	return nil
}

// Cue queues a sound effect. When the queue is full the cue is dropped.
func (p *Player) Cue(c flappy.Cue) {
	select {
	case p.cues <- c:
	default:
		p.logger.Debug("cue dropped", "cue", c)
	}
}

func (p *Player) loop() {
	defer p.wg.Done()
	for {
		select {
		case c := <-p.cues:
			p.play(c)
		case <-p.done:
			return
		}
	}
}

func (p *Player) play(c flappy.Cue) {
	speaker.Lock()
	p.mixer.Add(Tone(c))
	speaker.Unlock()
}

// Close stops playback. It is safe to call more than once.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.done)
	p.wg.Wait()

	if p.started {
		speaker.Clear()
	}
}
