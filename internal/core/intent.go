package core

// Phase marks where a paint intent sits within a gesture.
type Phase int

const (
	PhaseBegin Phase = iota
	PhaseContinue
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "begin"
	case PhaseContinue:
		return "continue"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Intent is one paint request from the input layer. Inside is false when
// the pointer is off the grid; such intents still carry gesture boundaries
// but paint nothing.
type Intent struct {
	Phase  Phase
	Row    int
	Col    int
	On     bool
	Inside bool
}
