package console

import "unicode/utf8"

// KeyKind identifies a decoded key event.
type KeyKind int

const (
	KeyChar KeyKind = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyTab
	KeyCtrlC
	KeyCtrlJ
	KeyEscape
	KeyOther
)

// KeyEvent is a single decoded key press. Multi-byte ANSI escape sequences
// are collapsed into one event; byte sequences that match no known pattern
// become KeyOther carrying the raw bytes so input is never silently dropped.
type KeyEvent struct {
	Kind KeyKind
	Rune rune   // set for KeyChar
	Raw  []byte // set for KeyOther
}

// Parser states for escape sequence decoding.
const (
	stateIdle = iota
	stateEsc        // got ESC
	stateCSI        // got ESC [
	stateCSIDelete  // got ESC [ 3, expecting ~
	stateCSIHome    // got ESC [ 1, expecting ~
	stateCSIEnd     // got ESC [ 4, expecting ~
	stateSS3        // got ESC O (application cursor keys)
)

// EscapeParser decodes a raw byte stream into key events using a small state
// machine. Each byte is fed through Parse; a bare ESC that turns out not to
// start a recognized sequence is resolved by the reader via Flush after its
// bounded wait expires.
type EscapeParser struct {
	state   int
	seq     []byte // bytes consumed since ESC, for KeyOther recovery
	pending []KeyEvent
	utf8buf []byte // partial multi-byte rune
}

// NewEscapeParser creates a parser in the idle state.
func NewEscapeParser() *EscapeParser {
	return &EscapeParser{seq: make([]byte, 0, 8)}
}

// InSequence reports whether the parser is waiting for more bytes of an
// escape sequence or a partial UTF-8 rune.
func (p *EscapeParser) InSequence() bool {
	return p.state != stateIdle || len(p.utf8buf) > 0
}

// Parse consumes one byte and returns zero or more completed events.
func (p *EscapeParser) Parse(b byte) []KeyEvent {
	p.pending = p.pending[:0]

	switch p.state {
	case stateIdle:
		p.parseIdle(b)
	case stateEsc:
		p.seq = append(p.seq, b)
		switch b {
		case '[':
			p.state = stateCSI
		case 'O':
			p.state = stateSS3
		default:
			// ESC followed by something that is not a sequence introducer:
			// the ESC stands alone and the byte is re-examined as input.
			p.emit(KeyEvent{Kind: KeyEscape})
			p.reset()
			p.parseIdle(b)
		}
	case stateCSI:
		p.seq = append(p.seq, b)
		switch b {
		case 'A':
			p.finish(KeyEvent{Kind: KeyUp})
		case 'B':
			p.finish(KeyEvent{Kind: KeyDown})
		case 'C':
			p.finish(KeyEvent{Kind: KeyRight})
		case 'D':
			p.finish(KeyEvent{Kind: KeyLeft})
		case 'H':
			p.finish(KeyEvent{Kind: KeyHome})
		case 'F':
			p.finish(KeyEvent{Kind: KeyEnd})
		case '3':
			p.state = stateCSIDelete
		case '1':
			p.state = stateCSIHome
		case '4':
			p.state = stateCSIEnd
		default:
			if b >= '0' && b <= '9' || b == ';' {
				// Parameter bytes of a longer sequence we do not map.
				return p.pending
			}
			p.finish(KeyEvent{Kind: KeyOther, Raw: p.rawSeq()})
		}
	case stateCSIDelete:
		p.seq = append(p.seq, b)
		if b == '~' {
			p.finish(KeyEvent{Kind: KeyDelete})
		} else {
			p.finish(KeyEvent{Kind: KeyOther, Raw: p.rawSeq()})
		}
	case stateCSIHome:
		p.seq = append(p.seq, b)
		if b == '~' {
			p.finish(KeyEvent{Kind: KeyHome})
		} else {
			p.finish(KeyEvent{Kind: KeyOther, Raw: p.rawSeq()})
		}
	case stateCSIEnd:
		p.seq = append(p.seq, b)
		if b == '~' {
			p.finish(KeyEvent{Kind: KeyEnd})
		} else {
			p.finish(KeyEvent{Kind: KeyOther, Raw: p.rawSeq()})
		}
	case stateSS3:
		p.seq = append(p.seq, b)
		switch b {
		case 'A':
			p.finish(KeyEvent{Kind: KeyUp})
		case 'B':
			p.finish(KeyEvent{Kind: KeyDown})
		case 'C':
			p.finish(KeyEvent{Kind: KeyRight})
		case 'D':
			p.finish(KeyEvent{Kind: KeyLeft})
		case 'H':
			p.finish(KeyEvent{Kind: KeyHome})
		case 'F':
			p.finish(KeyEvent{Kind: KeyEnd})
		default:
			p.finish(KeyEvent{Kind: KeyOther, Raw: p.rawSeq()})
		}
	}

	return p.pending
}

// parseIdle handles a byte outside any escape sequence.
func (p *EscapeParser) parseIdle(b byte) {
	if len(p.utf8buf) > 0 {
		p.utf8buf = append(p.utf8buf, b)
		if r, _ := utf8.DecodeRune(p.utf8buf); r != utf8.RuneError {
			p.emit(KeyEvent{Kind: KeyChar, Rune: r})
			p.utf8buf = p.utf8buf[:0]
		} else if len(p.utf8buf) >= utf8.UTFMax {
			p.emit(KeyEvent{Kind: KeyOther, Raw: append([]byte(nil), p.utf8buf...)})
			p.utf8buf = p.utf8buf[:0]
		}
		return
	}

	switch {
	case b == 27:
		p.state = stateEsc
	case b == 3:
		p.emit(KeyEvent{Kind: KeyCtrlC})
	case b == 10:
		p.emit(KeyEvent{Kind: KeyCtrlJ})
	case b == 13:
		p.emit(KeyEvent{Kind: KeyEnter})
	case b == 9:
		p.emit(KeyEvent{Kind: KeyTab})
	case b == 8 || b == 127:
		p.emit(KeyEvent{Kind: KeyBackspace})
	case b >= 32 && b < 127:
		p.emit(KeyEvent{Kind: KeyChar, Rune: rune(b)})
	case b >= utf8.RuneSelf:
		p.utf8buf = append(p.utf8buf, b)
	default:
		p.emit(KeyEvent{Kind: KeyOther, Raw: []byte{b}})
	}
}

// Flush resolves an in-flight sequence after the reader's bounded wait
// expired with no further bytes. A lone ESC becomes KeyEscape; a longer
// unfinished sequence becomes KeyOther with the raw bytes. Returns false
// when there is nothing to resolve.
func (p *EscapeParser) Flush() (KeyEvent, bool) {
	if len(p.utf8buf) > 0 {
		ev := KeyEvent{Kind: KeyOther, Raw: append([]byte(nil), p.utf8buf...)}
		p.utf8buf = p.utf8buf[:0]
		return ev, true
	}
	switch p.state {
	case stateIdle:
		return KeyEvent{}, false
	case stateEsc:
		p.reset()
		return KeyEvent{Kind: KeyEscape}, true
	default:
		ev := KeyEvent{Kind: KeyOther, Raw: p.rawSeq()}
		p.reset()
		return ev, true
	}
}

func (p *EscapeParser) emit(ev KeyEvent) {
	p.pending = append(p.pending, ev)
}

func (p *EscapeParser) finish(ev KeyEvent) {
	p.emit(ev)
	p.reset()
}

func (p *EscapeParser) rawSeq() []byte {
	raw := make([]byte, 0, len(p.seq)+1)
	raw = append(raw, 27)
	raw = append(raw, p.seq...)
	return raw
}

func (p *EscapeParser) reset() {
	p.state = stateIdle
	p.seq = p.seq[:0]
}
