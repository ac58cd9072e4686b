// Package input decodes raw terminal bytes into key state and translates it
// into the control intent consumed by the simulation.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses, so holding is inferred from key repeat.
const keyHoldDuration = 30 * time.Millisecond

// Keys represents the current frame's raw key state.
type Keys struct {
	Quit  bool
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Space bool
	Enter bool
	Pause bool
	Hyper bool
}

// Any reports whether any key is down.
func (k Keys) Any() bool {
	return k != Keys{}
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	space time.Time
	enter time.Time
	pause time.Time
	hyper time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
	now   func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
}

// ReadKeys drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys. A closed stream reports Quit.
func ReadKeys(s *Stream) Keys {
	now := s.now()
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
			case 'B':
				s.state.down = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
			continue
		}

		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool {
		return now.Sub(t) < keyHoldDuration
	}

	return Keys{
		Quit:  closed || held(s.state.quit),
		Left:  held(s.state.left),
		Right: held(s.state.right),
		Up:    held(s.state.up),
		Down:  held(s.state.down),
		Space: held(s.state.space),
		Enter: held(s.state.enter),
		Pause: held(s.state.pause),
		Hyper: held(s.state.hyper),
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case 's', 'S', 'k', 'K':
		state.down = now
	case 'h', 'H':
		state.hyper = now
	case 'p', 'P':
		state.pause = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	}
}
