// Package reveal tracks which page sections have scrolled into view.
//
// Every page load gets a mount id. For each (mount, section) pair a latch starts
// NotRevealed and flips to Revealed the first time the browser reports the section
// visible past its threshold. Latches never flip back.
package reveal

// State is the entrance animation state of a section.
type State int

const (
	NotRevealed State = iota
	Revealed
)

func (s State) String() string {
	if s == Revealed {
		return "revealed"
	}
	return "not-revealed"
}

// Latch is a one-way NotRevealed -> Revealed switch.
type Latch struct {
	state State
}

// NewLatch returns a latch in the given state.
func NewLatch(initial State) *Latch {
	if initial != Revealed {
		initial = NotRevealed
	}
	return &Latch{state: initial}
}

// State reports the current state.
func (l *Latch) State() State {
	return l.state
}

// Revealed reports whether the latch has fired.
func (l *Latch) Revealed() bool {
	return l.state == Revealed
}

// Reveal fires the latch. It reports whether this call changed the state.
func (l *Latch) Reveal() bool {
	if l.state == Revealed {
		return false
	}
	l.state = Revealed
	return true
}
