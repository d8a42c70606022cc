package console

import (
	"bytes"
	"testing"
)

func feed(t *testing.T, p *EscapeParser, input string) []KeyEvent {
	t.Helper()
	var events []KeyEvent
	for i := 0; i < len(input); i++ {
		events = append(events, p.Parse(input[i])...)
	}
	return events
}

func TestParseArrowSequences(t *testing.T) {
	cases := []struct {
		input string
		want  KeyKind
	}{
		{"\x1b[A", KeyUp},
		{"\x1b[B", KeyDown},
		{"\x1b[C", KeyRight},
		{"\x1b[D", KeyLeft},
		{"\x1b[H", KeyHome},
		{"\x1b[F", KeyEnd},
		{"\x1b[3~", KeyDelete},
		{"\x1b[1~", KeyHome},
		{"\x1b[4~", KeyEnd},
		{"\x1bOA", KeyUp},
		{"\x1bOB", KeyDown},
		{"\x1bOH", KeyHome},
		{"\x1bOF", KeyEnd},
	}
	for _, tc := range cases {
		p := NewEscapeParser()
		events := feed(t, p, tc.input)
		if len(events) != 1 {
			t.Errorf("%q: got %d events, want 1", tc.input, len(events))
			continue
		}
		if events[0].Kind != tc.want {
			t.Errorf("%q: got kind %d, want %d", tc.input, events[0].Kind, tc.want)
		}
		if p.InSequence() {
			t.Errorf("%q: parser still in sequence", tc.input)
		}
	}
}

func TestParseControlKeys(t *testing.T) {
	cases := []struct {
		b    byte
		want KeyKind
	}{
		{3, KeyCtrlC},
		{9, KeyTab},
		{10, KeyCtrlJ},
		{13, KeyEnter},
		{8, KeyBackspace},
		{127, KeyBackspace},
	}
	for _, tc := range cases {
		p := NewEscapeParser()
		events := p.Parse(tc.b)
		if len(events) != 1 || events[0].Kind != tc.want {
			t.Errorf("byte %d: got %v, want kind %d", tc.b, events, tc.want)
		}
	}
}

func TestParsePrintableAndUTF8(t *testing.T) {
	p := NewEscapeParser()
	events := feed(t, p, "aé漢")
	want := []rune{'a', 'é', '漢'}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, r := range want {
		if events[i].Kind != KeyChar || events[i].Rune != r {
			t.Errorf("event %d: got %+v, want rune %q", i, events[i], r)
		}
	}
}

func TestParseEscapeThenPrintable(t *testing.T) {
	// ESC followed by a plain character: the ESC stands alone and the
	// character is kept as input.
	p := NewEscapeParser()
	events := feed(t, p, "\x1bx")
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != KeyEscape {
		t.Errorf("first event: got kind %d, want KeyEscape", events[0].Kind)
	}
	if events[1].Kind != KeyChar || events[1].Rune != 'x' {
		t.Errorf("second event: got %+v, want char x", events[1])
	}
}

func TestParseMalformedSequenceBecomesOther(t *testing.T) {
	p := NewEscapeParser()
	events := feed(t, p, "\x1b[Z")
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Kind != KeyOther {
		t.Fatalf("got kind %d, want KeyOther", events[0].Kind)
	}
	if !bytes.Equal(events[0].Raw, []byte("\x1b[Z")) {
		t.Errorf("raw bytes: got %q, want %q", events[0].Raw, "\x1b[Z")
	}
}

func TestParseUnterminatedTildeSequence(t *testing.T) {
	p := NewEscapeParser()
	events := feed(t, p, "\x1b[3x")
	if len(events) != 1 || events[0].Kind != KeyOther {
		t.Fatalf("got %v, want one KeyOther", events)
	}
	if !bytes.Equal(events[0].Raw, []byte("\x1b[3x")) {
		t.Errorf("raw bytes: got %q", events[0].Raw)
	}
}

func TestFlushLoneEscape(t *testing.T) {
	p := NewEscapeParser()
	if events := p.Parse(27); len(events) != 0 {
		t.Fatalf("ESC alone produced events: %v", events)
	}
	if !p.InSequence() {
		t.Fatal("parser should be mid-sequence after ESC")
	}
	ev, ok := p.Flush()
	if !ok || ev.Kind != KeyEscape {
		t.Fatalf("flush: got %+v ok=%v, want KeyEscape", ev, ok)
	}
	if p.InSequence() {
		t.Error("parser still in sequence after flush")
	}
}

func TestFlushUnfinishedSequence(t *testing.T) {
	p := NewEscapeParser()
	feed(t, p, "\x1b[")
	ev, ok := p.Flush()
	if !ok || ev.Kind != KeyOther {
		t.Fatalf("flush: got %+v ok=%v, want KeyOther", ev, ok)
	}
	if !bytes.Equal(ev.Raw, []byte("\x1b[")) {
		t.Errorf("raw bytes: got %q", ev.Raw)
	}
}

func TestFlushIdleReturnsNothing(t *testing.T) {
	p := NewEscapeParser()
	if _, ok := p.Flush(); ok {
		t.Error("flush on idle parser returned an event")
	}
}
