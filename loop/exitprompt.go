package loop

// ExitState is the state of a confirm-before-exit prompt.
type ExitState uint8

const (
	ExitNormal ExitState = iota
	// ExitConfirm waits for a yes or no answer.
	ExitConfirm
	// ExitClose is final: the application should quit.
	ExitClose
)

func (s ExitState) String() string {
	switch s {
	case ExitNormal:
		return "normal"
	case ExitConfirm:
		return "confirm"
	case ExitClose:
		return "close"
	}
	return "unknown"
}

// ExitPrompt asks for confirmation before closing. A close request moves
// it to ExitConfirm; yes then closes and no returns to ExitNormal. Input
// that does not apply to the current state is ignored.
type ExitPrompt struct {
	state ExitState
}

func (p *ExitPrompt) State() ExitState { return p.state }

// Update advances the prompt with this frame's input and returns the new state.
func (p *ExitPrompt) Update(closeRequested, yes, no bool) ExitState {
	switch p.state {
	case ExitNormal:
		if closeRequested {
			p.state = ExitConfirm
		}
	case ExitConfirm:
		switch {
		case yes:
			p.state = ExitClose
		case no:
			p.state = ExitNormal
		}
	}
	return p.state
}
