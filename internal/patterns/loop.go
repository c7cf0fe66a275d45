package patterns

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/arcpixel/matrix"
)

const DefaultFPS = 30

// Stepper draws one frame per call and reports false when done.
type Stepper interface {
	Step(mx *matrix.Matrix) bool
}

// Looper pushes frames from a Stepper at a fixed rate.
type Looper struct {
	FPS int

	frames int
	start  time.Time
}

// Frames is the number of frames pushed by the last Run.
func (l *Looper) Frames() int { return l.frames }

// Run steps s and updates mx once per tick until s finishes or ctx ends.
// A cancelled run blanks the matrix before returning.
func (l *Looper) Run(ctx context.Context, mx *matrix.Matrix, s Stepper) error {
	fps := l.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	delta := time.Second / time.Duration(fps)
	ticker := time.NewTicker(delta)
	defer ticker.Stop()

	l.frames = 0
	l.start = time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("frames", l.frames).Dur("elapsed", time.Since(l.start)).Msg("loop stopped")
			mx.Clear()
			return mx.Update()
		case <-ticker.C:
			t := time.Now()
			if !s.Step(mx) {
				log.Debug().Int("frames", l.frames).Msg("pattern finished")
				return nil
			}
			if err := mx.Update(); err != nil {
				return err
			}
			l.frames++
			if took := time.Since(t); took > delta {
				log.Debug().Dur("took", took).Dur("budget", delta).Msg("frame overran")
			}
		}
	}
}
