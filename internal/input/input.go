// Package input turns a raw terminal byte stream into game controls.
//
// Terminals report key presses (and auto-repeat) but never key releases, so
// continuous controls are considered held for a short window after their last
// byte arrived. One-shot actions are reported only in the frame they arrive.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 60 * time.Millisecond

// Controls is the set of continuously held flight controls.
type Controls struct {
	Left   bool
	Right  bool
	Thrust bool
	Fire   bool
	Hyper  bool // Edge-triggered: true only for the frame the key arrived
}

// Input represents the current frame's input state.
type Input struct {
	Controls
	Start   bool // Space or Enter
	Restart bool
	Pause   bool
	Mute    bool
	Quit    bool
	Pressed []byte
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left   time.Time
	right  time.Time
	thrust time.Time
	fire   time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error (e.g. the session closed).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
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

// ReadInput drains all available bytes from the stream (non-blocking).
// Quit is reported once the underlying reader is exhausted.
func ReadInput(s *Stream) Input {
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

	in := s.parse(buf, time.Now())
	if closed {
		in.Quit = true
	}
	return in
}

// ResetKeyInput forgets all held keys, so a key used to start a game does not
// immediately act as a flight control.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// parse applies buf to the key state at time now and builds the frame's input.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A': // Up arrow
				s.state.thrust = now
				i += 2
				continue
			case 'B': // Down arrow
				in.Hyper = true
				i += 2
				continue
			case 'C': // Right arrow
				s.state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.left = now
				i += 2
				continue
			}
		}

		s.applyByte(&in, b, now)
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Thrust = now.Sub(s.state.thrust) < keyHoldDuration
	in.Fire = now.Sub(s.state.fire) < keyHoldDuration

	return in
}

// applyByte updates held-key timestamps and one-shot flags for a single byte.
func (s *Stream) applyByte(in *Input, b byte, now time.Time) {
	switch b {
	case 'a', 'A', 'j', 'J':
		s.state.left = now
	case 'd', 'D', 'l', 'L':
		s.state.right = now
	case 'w', 'W', 'i', 'I':
		s.state.thrust = now
	case ' ':
		s.state.fire = now
		in.Start = true
	case '\r', '\n':
		in.Start = true
	case 'h', 'H', 's', 'S', 'k', 'K':
		in.Hyper = true
	case 'r', 'R':
		in.Restart = true
	case 'p', 'P':
		in.Pause = true
	case 'm', 'M':
		in.Mute = true
	case 'q', 'Q', 0x03: // 0x03 is Ctrl+C in raw mode
		in.Quit = true
	}
}
