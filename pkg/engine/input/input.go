// Package input turns device events into per-tick input frames.
package input

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// readByte reads a single byte from r
func readByte(r io.Reader) (byte, error) {
	buf := make([]byte, 1)
	_, err := r.Read(buf)
	return buf[0], err
}

// escapeTimeout is how long a lone ESC waits for the rest of a sequence.
const escapeTimeout = 50 * time.Millisecond

// keyDecoder pulls bytes from a reader goroutine so escape sequences can be
// read with a deadline.
type keyDecoder struct {
	bytes   <-chan byte
	pending []byte
}

// next returns the next byte, waiting at most timeout (forever when zero).
// ok is false on timeout or when the reader stopped.
func (d *keyDecoder) next(timeout time.Duration) (b byte, ok bool) {
	if len(d.pending) > 0 {
		b, d.pending = d.pending[0], d.pending[1:]
		return b, true
	}
	if timeout == 0 {
		b, ok = <-d.bytes
		return b, ok
	}
	select {
	case b, ok = <-d.bytes:
		return b, ok
	case <-time.After(timeout):
		return 0, false
	}
}

// unread pushes b back to be decoded next.
func (d *keyDecoder) unread(b byte) {
	d.pending = append([]byte{b}, d.pending...)
}

// escapeSequence decodes what follows an ESC byte. It returns the key code,
// "escape" for a lone ESC, or an empty string for an unknown sequence.
func (d *keyDecoder) escapeSequence() string {
	b2, ok := d.next(escapeTimeout)
	if !ok {
		return "escape"
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		// ESC followed by a regular key: both are pressed.
		d.unread(b2)
		return "escape"
	}

	b3, ok := d.next(escapeTimeout)
	if !ok {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	case '2':
		// F9 is ESC [ 2 0 ~
		b4, ok4 := d.next(escapeTimeout)
		b5, ok5 := d.next(escapeTimeout)
		if ok4 && ok5 && b4 == '0' && b5 == '~' {
			return "f9"
		}
	}
	// Unknown escape sequence - discard it
	return ""
}

// codeForByte maps a single raw byte to a device code.
func codeForByte(b byte) string {
	switch {
	case b == '\r' || b == '\n':
		return "enter"
	case b == ' ':
		return "space"
	case b == 3:
		return "ctrl_c"
	case b >= '0' && b <= '9':
		return string(b)
	case b >= 'a' && b <= 'z':
		return string(b)
	case b >= 'A' && b <= 'Z':
		return string(b + ('a' - 'A'))
	}
	return ""
}

// ReadKeys decodes key presses from r and sends them on out until r fails.
// It is meant to run on its own goroutine; the game loop drains out once per
// tick.
func ReadKeys(r io.Reader, out chan<- RawInput) error {
	bytes := make(chan byte, 64)
	errc := make(chan error, 1)
	go func() {
		defer close(bytes)
		for {
			b, err := readByte(r)
			if err != nil {
				errc <- err
				return
			}
			bytes <- b
		}
	}()

	d := &keyDecoder{bytes: bytes}
	for {
		b, ok := d.next(0)
		if !ok {
			return <-errc
		}

		var code string
		if b == 0x1b {
			code = d.escapeSequence()
		} else {
			code = codeForByte(b)
		}
		if code == "" {
			continue
		}

		ev := RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}
		select {
		case out <- ev:
		default:
			// Channel full, drop input
		}
	}
}

// RawTerminal puts stdin into raw mode and returns a function restoring it.
func RawTerminal() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("set terminal raw mode: %w", err)
	}
	return func() {
		term.Restore(fd, oldState)
	}, nil
}

// IsTerminal reports whether stdin is an interactive terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
