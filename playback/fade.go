package playback

import "github.com/katalvlaran/pathviz/grid"

// fade is the frame sequence of one committed cell.
type fade struct {
	p       grid.Point
	state   grid.State
	step    int
	timer   Timer
	stopped bool
}

// fades reports whether st has an alternate colour to fade from.
func fades(st grid.State) bool {
	return st == grid.Wall || st == grid.Explored || st == grid.Path
}

// startFadeLocked replaces any fade running on p and draws its first frame.
func (s *Scheduler) startFadeLocked(p grid.Point, st grid.State) {
	s.stopFadeLocked(p)
	if !fades(st) || s.opts.FadeSteps <= 0 {
		s.drawLocked(p, st)
		return
	}
	f := &fade{p: p, state: st}
	s.fades[p] = f
	s.fadeStepLocked(f)
}

// fadeStepLocked draws f's current frame if the live cell still holds f.state,
// then arms the next one.
func (s *Scheduler) fadeStepLocked(f *fade) {
	if live, err := s.g.Get(f.p); err != nil || live != f.state {
		s.dropFadeLocked(f)
		return
	}
	s.opts.Renderer.Draw(Frame{Point: f.p, State: f.state, Step: f.step, Steps: s.opts.FadeSteps})
	if f.step >= s.opts.FadeSteps {
		s.dropFadeLocked(f)
		return
	}
	f.step++
	f.timer = s.opts.Clock.AfterFunc(s.opts.FadeInterval, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if f.stopped {
			return
		}
		s.fadeStepLocked(f)
	})
}

func (s *Scheduler) dropFadeLocked(f *fade) {
	f.stopped = true
	if s.fades[f.p] == f {
		delete(s.fades, f.p)
	}
}

func (s *Scheduler) stopFadeLocked(p grid.Point) {
	f, ok := s.fades[p]
	if !ok {
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	s.dropFadeLocked(f)
}

func (s *Scheduler) stopFadesLocked() {
	for p := range s.fades {
		s.stopFadeLocked(p)
	}
}

// drawLocked draws the settled colour of st at p once, ending any fade there.
func (s *Scheduler) drawLocked(p grid.Point, st grid.State) {
	s.stopFadeLocked(p)
	s.opts.Renderer.Draw(Frame{Point: p, State: st, Step: s.opts.FadeSteps, Steps: s.opts.FadeSteps})
}
