package types

// LIE is the local instance environment: a stack of "wanted constraint"
// frames, one pushed per let-bound group being generalized, collecting the
// class constraints its body's inference accumulates so generalization can
// decide which to quantify over and which to push further out.
type LIE struct {
	frames [][]Constraint
}

func NewLIE() *LIE {
	return &LIE{frames: [][]Constraint{{}}}
}

// Push opens a new frame (entering a let-bound group's inference).
func (l *LIE) Push() {
	l.frames = append(l.frames, []Constraint{})
}

// Pop closes and returns the innermost frame's accumulated constraints.
func (l *LIE) Pop() []Constraint {
	n := len(l.frames)
	top := l.frames[n-1]
	l.frames = l.frames[:n-1]
	return top
}

// Want records a constraint arising from the current inference point,
// against the innermost open frame.
func (l *LIE) Want(c Constraint) {
	n := len(l.frames)
	l.frames[n-1] = append(l.frames[n-1], c)
}

// WantAll records every constraint in cs.
func (l *LIE) WantAll(cs []Constraint) {
	for _, c := range cs {
		l.Want(c)
	}
}
