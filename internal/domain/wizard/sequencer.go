package wizard

// Sequencer walks a fixed list of steps. The cursor stays within
// [0, len(steps)-1]; moves past either end are ignored.
type Sequencer struct {
	steps []Step
	index int
}

// NewSequencer starts at the first step.
func NewSequencer(steps []Step) *Sequencer {
	s := make([]Step, len(steps))
	copy(s, steps)
	return &Sequencer{steps: s}
}

// Current returns the active step, or "" for an empty sequence.
func (s *Sequencer) Current() Step {
	if len(s.steps) == 0 {
		return ""
	}
	return s.steps[s.index]
}

func (s *Sequencer) Index() int { return s.index }

func (s *Sequencer) Len() int { return len(s.steps) }

func (s *Sequencer) IsLast() bool { return s.index >= len(s.steps)-1 }

// Advance moves one step forward and reports whether the cursor moved.
func (s *Sequencer) Advance() bool {
	if s.index >= len(s.steps)-1 {
		return false
	}
	s.index++
	return true
}

// Retreat moves one step back and reports whether the cursor moved.
func (s *Sequencer) Retreat() bool {
	if s.index <= 0 {
		return false
	}
	s.index--
	return true
}

// Progress is (index+1)/len, 1.0 on the last step.
func (s *Sequencer) Progress() float64 {
	if len(s.steps) == 0 {
		return 0
	}
	return float64(s.index+1) / float64(len(s.steps))
}

// Reset returns to the first step.
func (s *Sequencer) Reset() {
	s.index = 0
}
