package console

import (
	"bytes"
	"io"
	"testing"
	"time"
)

// scriptSource replays a fixed byte script. Its negative fd makes the
// reader consult Buffered instead of polling a descriptor, so the bounded
// wait resolves instantly in tests.
type scriptSource struct {
	r *bytes.Reader
}

func newScriptSource(input string) *scriptSource {
	return &scriptSource{r: bytes.NewReader([]byte(input))}
}

func (s *scriptSource) Read(p []byte) (int, error) {
	if s.r.Len() == 0 {
		return 0, io.EOF
	}
	// One byte at a time, mimicking the dribble of a slow terminal.
	return s.r.Read(p[:1])
}

func (s *scriptSource) InputFd() int { return -1 }

func (s *scriptSource) Buffered() int { return s.r.Len() }

func readAll(t *testing.T, kr *KeyReader, n int) []KeyEvent {
	t.Helper()
	events := make([]KeyEvent, 0, n)
	for i := 0; i < n; i++ {
		ev, err := kr.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey %d: %v", i, err)
		}
		events = append(events, ev)
	}
	return events
}

func TestReadKeySimpleLine(t *testing.T) {
	kr := NewKeyReader(newScriptSource("Hi\r"), 0)
	events := readAll(t, kr, 3)
	want := []KeyKind{KeyChar, KeyChar, KeyEnter}
	for i, k := range want {
		if events[i].Kind != k {
			t.Errorf("event %d: got kind %d, want %d", i, events[i].Kind, k)
		}
	}
	if events[0].Rune != 'H' || events[1].Rune != 'i' {
		t.Errorf("runes: got %c%c, want Hi", events[0].Rune, events[1].Rune)
	}
}

func TestReadKeyArrowSpansReads(t *testing.T) {
	// The script source hands out one byte per read, so the sequence
	// arrives in three reads and must still decode to a single event.
	kr := NewKeyReader(newScriptSource("\x1b[A"), 0)
	ev := readAll(t, kr, 1)[0]
	if ev.Kind != KeyUp {
		t.Errorf("got kind %d, want KeyUp", ev.Kind)
	}
}

func TestReadKeyLoneEscapeResolvesByTimeout(t *testing.T) {
	kr := NewKeyReader(newScriptSource("\x1b"), 0)
	ev := readAll(t, kr, 1)[0]
	if ev.Kind != KeyEscape {
		t.Errorf("got kind %d, want KeyEscape", ev.Kind)
	}
}

func TestReadKeyEscapeThenLaterInput(t *testing.T) {
	// ESC with more input already buffered is the start of a sequence,
	// not a bare Escape.
	kr := NewKeyReader(newScriptSource("\x1b[Bx"), 0)
	events := readAll(t, kr, 2)
	if events[0].Kind != KeyDown {
		t.Errorf("first event: got kind %d, want KeyDown", events[0].Kind)
	}
	if events[1].Kind != KeyChar || events[1].Rune != 'x' {
		t.Errorf("second event: got %+v, want char x", events[1])
	}
}

func TestReadKeyEOF(t *testing.T) {
	kr := NewKeyReader(newScriptSource(""), 0)
	if _, err := kr.ReadKey(); err == nil {
		t.Error("expected an error at end of input")
	}
}

func TestNewKeyReaderDefaultTimeout(t *testing.T) {
	kr := NewKeyReader(newScriptSource(""), 0)
	if kr.timeout != DefaultEscTimeout {
		t.Errorf("timeout: got %v, want %v", kr.timeout, DefaultEscTimeout)
	}
	kr = NewKeyReader(newScriptSource(""), 10*time.Millisecond)
	if kr.timeout != 10*time.Millisecond {
		t.Errorf("timeout: got %v, want 10ms", kr.timeout)
	}
}
