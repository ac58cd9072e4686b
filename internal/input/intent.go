package input

// Intent is the abstract control snapshot for one frame.
// All fields are level signals: true while the control is held.
type Intent struct {
	TurnLeft   bool
	TurnRight  bool
	Thrust     bool
	Fire       bool
	Hyperspace bool
	Pause      bool
	Confirm    bool
	Quit       bool
}

// FromKeys maps terminal keys to controls.
func FromKeys(k Keys) Intent {
	return Intent{
		TurnLeft:   k.Left,
		TurnRight:  k.Right,
		Thrust:     k.Up,
		Fire:       k.Space,
		Hyperspace: k.Hyper || k.Down,
		Pause:      k.Pause,
		Confirm:    k.Enter,
		Quit:       k.Quit,
	}
}

// Edges holds the one-shot controls that began this frame.
type Edges struct {
	Fire       bool
	Hyperspace bool
	Pause      bool
	Confirm    bool
}

// Frame is what the simulation consumes each tick: the held controls plus
// the presses that started on this tick.
type Frame struct {
	Intent
	Pressed Edges
}

// EdgeDetector turns level signals into presses by comparing each snapshot
// with the previous one.
type EdgeDetector struct {
	prev Intent
}

// Next records cur and returns it along with the rising edges since the
// previous call.
func (d *EdgeDetector) Next(cur Intent) Frame {
	f := Frame{
		Intent: cur,
		Pressed: Edges{
			Fire:       cur.Fire && !d.prev.Fire,
			Hyperspace: cur.Hyperspace && !d.prev.Hyperspace,
			Pause:      cur.Pause && !d.prev.Pause,
			Confirm:    cur.Confirm && !d.prev.Confirm,
		},
	}
	d.prev = cur
	return f
}
