package engine

// State is the scheduling mode of the flight.
type State int

const (
	// Static evaluates once per discrete input and never on its own.
	Static State = iota
	// Animating evaluates on every Tick.
	Animating
)

func (s State) String() string {
	if s == Animating {
		return "ANIMATING"
	}
	return "STATIC"
}

// Scheduler decides when a frame is due. The motion flag is injected by the
// host; the zero value is stopped with motion off.
type Scheduler struct {
	running bool
	motion  bool
}

func (s *Scheduler) State() State {
	if s.running && s.motion {
		return Animating
	}
	return Static
}

func (s *Scheduler) Running() bool { return s.running }
func (s *Scheduler) Motion() bool  { return s.motion }

// Start reports whether the scheduler was stopped.
func (s *Scheduler) Start() bool {
	if s.running {
		return false
	}
	s.running = true
	return true
}

// Stop reports whether the scheduler was running.
func (s *Scheduler) Stop() bool {
	if !s.running {
		return false
	}
	s.running = false
	return true
}

// SetMotion reports whether the flag changed.
func (s *Scheduler) SetMotion(on bool) bool {
	if s.motion == on {
		return false
	}
	s.motion = on
	return true
}

// Tick reports whether the current display frame should be evaluated.
func (s *Scheduler) Tick() bool { return s.State() == Animating }

// Input reports whether a discrete input must be evaluated synchronously.
func (s *Scheduler) Input() bool { return s.State() != Animating }
