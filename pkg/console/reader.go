package console

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/sys/unix"
)

// DefaultEscTimeout is the bounded wait used to tell a bare Escape press
// apart from the start of a longer sequence. Terminal emulators differ in
// how quickly the remaining bytes arrive, so the value is configurable;
// tens of milliseconds is enough for every emulator tested without making
// a lone Escape feel sluggish.
const DefaultEscTimeout = 50 * time.Millisecond

// InputSource is the reader's view of the input stream. *Terminal satisfies
// it; tests substitute scripted sources with a negative fd.
type InputSource interface {
	io.Reader
	InputFd() int
}

// KeyReader turns the raw input byte stream into discrete key events.
// Reads block indefinitely between keys; only escape-sequence
// disambiguation uses the bounded wait.
type KeyReader struct {
	src     InputSource
	parser  *EscapeParser
	timeout time.Duration
	queue   []KeyEvent
	buf     []byte
}

// NewKeyReader creates a reader over src. A timeout of zero selects
// DefaultEscTimeout.
func NewKeyReader(src InputSource, timeout time.Duration) *KeyReader {
	if timeout <= 0 {
		timeout = DefaultEscTimeout
	}
	return &KeyReader{
		src:     src,
		parser:  NewEscapeParser(),
		timeout: timeout,
		buf:     make([]byte, 64),
	}
}

// ReadKey returns the next decoded key event.
func (kr *KeyReader) ReadKey() (KeyEvent, error) {
	for {
		if len(kr.queue) > 0 {
			ev := kr.queue[0]
			kr.queue = kr.queue[1:]
			return ev, nil
		}

		if kr.parser.InSequence() {
			ready, err := kr.pollInput()
			if err != nil {
				return KeyEvent{}, err
			}
			if !ready {
				if ev, ok := kr.parser.Flush(); ok {
					return ev, nil
				}
				continue
			}
		}

		n, err := kr.src.Read(kr.buf)
		if err != nil {
			return KeyEvent{}, fmt.Errorf("stdin read: %w", err)
		}
		for i := 0; i < n; i++ {
			kr.queue = append(kr.queue, kr.parser.Parse(kr.buf[i])...)
		}
	}
}

// TryReadKey returns the next key event if one becomes available within d.
// Used while streaming output, where the reader must not block the stream
// but a Ctrl+C still has to get through.
func (kr *KeyReader) TryReadKey(d time.Duration) (KeyEvent, bool, error) {
	if len(kr.queue) > 0 {
		ev := kr.queue[0]
		kr.queue = kr.queue[1:]
		return ev, true, nil
	}
	ready, err := kr.pollFor(d)
	if err != nil || !ready {
		return KeyEvent{}, false, err
	}
	n, err := kr.src.Read(kr.buf)
	if err != nil {
		return KeyEvent{}, false, fmt.Errorf("stdin read: %w", err)
	}
	for i := 0; i < n; i++ {
		kr.queue = append(kr.queue, kr.parser.Parse(kr.buf[i])...)
	}
	if len(kr.queue) == 0 {
		return KeyEvent{}, false, nil
	}
	ev := kr.queue[0]
	kr.queue = kr.queue[1:]
	return ev, true, nil
}

// pollInput waits up to the escape timeout for more input. Sources without
// a real fd (scripted test sources) report readiness from their buffered
// byte count instead of a poll.
func (kr *KeyReader) pollInput() (bool, error) {
	return kr.pollFor(kr.timeout)
}

func (kr *KeyReader) pollFor(d time.Duration) (bool, error) {
	fd := kr.src.InputFd()
	if fd < 0 {
		if b, ok := kr.src.(interface{ Buffered() int }); ok {
			return b.Buffered() > 0, nil
		}
		return false, nil
	}
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, int(d.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("poll stdin: %w", err)
		}
		return n > 0, nil
	}
}
