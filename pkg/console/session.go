package console

import (
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// InputMode tags which component owns incoming key events.
type InputMode int

const (
	// ModeNormal routes keys to the line editor.
	ModeNormal InputMode = iota
	// ModePalette routes keys to the command palette overlay.
	ModePalette
)

const (
	hintLine      = "\x1b[2mEnter = send, Ctrl+J = newline, Ctrl+C = quit, / = commands\x1b[0m"
	exitArmedLine = "\x1b[31mPress Ctrl+C again to exit\x1b[0m"
	clearArmed    = "\x1b[31mPress Esc again to start over\x1b[0m"
)

// SessionConfig configures a Session. Input and Output are required;
// everything else has a sensible zero value.
type SessionConfig struct {
	Input      InputSource
	Output     io.Writer
	Prompt     string
	Entries    []PaletteEntry
	EscTimeout time.Duration
	// Logf receives diagnostics for unrecognized input sequences. They are
	// never written to the terminal. Nil disables them.
	Logf func(format string, args ...any)
}

// Session is the interactive input loop. It owns the editor, the palette,
// the history, and the renderer, routes key events by mode, and reports
// what the user asked for as Action values. It never executes command side
// effects itself.
type Session struct {
	reader   *KeyReader
	renderer *Renderer
	editor   *Editor
	palette  *Palette
	history  *History
	prompt   string
	logf     func(format string, args ...any)

	mode InputMode
	// pendingExit arms after the first Ctrl+C; the next Ctrl+C exits,
	// any other key disarms. pendingClear works the same way for Escape.
	pendingExit  bool
	pendingClear bool
}

// NewSession wires a session over the given input and output.
func NewSession(cfg SessionConfig) *Session {
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = "> "
	}
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Session{
		reader:   NewKeyReader(cfg.Input, cfg.EscTimeout),
		renderer: NewRenderer(cfg.Output),
		editor:   NewEditor(),
		palette:  NewPalette(cfg.Entries),
		history:  NewHistory(),
		prompt:   prompt,
		logf:     logf,
	}
}

// Mode returns the current input mode.
func (s *Session) Mode() InputMode {
	return s.mode
}

// Editor exposes the line editor, mainly for inspecting state after a
// palette round trip.
func (s *Session) Editor() *Editor {
	return s.editor
}

// History exposes the recall history so callers can list or prefill it.
func (s *Session) History() *History {
	return s.history
}

// Renderer exposes the screen renderer. Callers that print output outside
// the session must call Reset on it before the next Next.
func (s *Session) Renderer() *Renderer {
	return s.renderer
}

// Reader exposes the key reader so callers can watch for interrupts while
// the session is not driving input.
func (s *Session) Reader() *KeyReader {
	return s.reader
}

// Next blocks until the user produces an action the caller must handle:
// a submitted line, a selected command, a cancel, or an exit request.
// Keys that only change console-internal state are absorbed here.
func (s *Session) Next() (Action, error) {
	for {
		if err := s.redraw(); err != nil {
			return Action{}, err
		}
		ev, err := s.reader.ReadKey()
		if err != nil {
			return Action{}, err
		}
		act, err := s.handleKey(ev)
		if err != nil {
			return Action{}, err
		}
		if act.Kind != ActionNone {
			return act, nil
		}
	}
}

// OpenPalette switches to palette mode, saving the editor state for
// restoration on cancel.
func (s *Session) OpenPalette() {
	s.palette.Open(s.editor.Snapshot())
	s.mode = ModePalette
}

// Finish erases the session's screen block. Call once when the loop ends.
func (s *Session) Finish() error {
	return s.renderer.ClearBlock()
}

func (s *Session) handleKey(ev KeyEvent) (Action, error) {
	if ev.Kind == KeyOther {
		s.logf("discarding unrecognized input sequence %q", ev.Raw)
		return Action{Kind: ActionNone}, nil
	}
	if s.mode == ModePalette {
		return s.handlePaletteKey(ev), nil
	}
	return s.handleNormalKey(ev)
}

func (s *Session) handleNormalKey(ev KeyEvent) (Action, error) {
	if ev.Kind != KeyCtrlC {
		s.pendingExit = false
	}
	if ev.Kind != KeyEscape {
		s.pendingClear = false
	}

	switch ev.Kind {
	case KeyCtrlC:
		if s.pendingExit {
			return Action{Kind: ActionExit}, nil
		}
		s.pendingExit = true
		s.editor.Clear()
		s.history.Stop()
		return Action{Kind: ActionCancel}, nil

	case KeyEscape:
		if s.editor.Empty() {
			return Action{Kind: ActionNone}, nil
		}
		if s.pendingClear {
			s.pendingClear = false
			s.editor.Clear()
		} else {
			s.pendingClear = true
		}
		return Action{Kind: ActionNone}, nil

	case KeyUp:
		if line, ok := s.history.Prev(s.editor.Text()); ok {
			s.editor.SetText(line)
		}
		return Action{Kind: ActionNone}, nil

	case KeyDown:
		if line, ok := s.history.Next(); ok {
			s.editor.SetText(line)
		}
		return Action{Kind: ActionNone}, nil
	}

	act := s.editor.Handle(ev)
	switch act.Kind {
	case ActionOpenPalette:
		s.OpenPalette()
		return Action{Kind: ActionNone}, nil
	case ActionSubmit:
		s.history.Add(act.Text)
		if err := s.commitSubmitted(act.Text); err != nil {
			return Action{}, err
		}
		return act, nil
	}
	return Action{Kind: ActionNone}, nil
}

func (s *Session) handlePaletteKey(ev KeyEvent) Action {
	if ev.Kind == KeyCtrlC {
		s.closePalette()
		return Action{Kind: ActionCancelPalette}
	}
	act := s.palette.Handle(ev)
	switch act.Kind {
	case ActionRunCommand, ActionCancelPalette:
		s.closePalette()
	}
	return act
}

func (s *Session) closePalette() {
	s.editor.Restore(s.palette.Saved())
	s.mode = ModeNormal
}

// commitSubmitted repaints the submitted line without the hint and scrolls
// past it so it stays in the terminal's history.
func (s *Session) commitSubmitted(text string) error {
	lines := s.editorLines(text)
	last := len(lines) - 1
	if err := s.renderer.RedrawBlock(lines, last, runewidth.StringWidth(lines[last])); err != nil {
		return err
	}
	return s.renderer.Commit()
}

func (s *Session) redraw() error {
	if s.mode == ModePalette {
		lines := s.palette.Lines()
		return s.renderer.RedrawBlock(lines, 0, runewidth.StringWidth(lines[0]))
	}

	lines := s.editorLines(s.editor.Text())
	row, col := s.cursorPosition()
	lines = append(lines, s.statusLine())
	return s.renderer.RedrawBlock(lines, row, col)
}

// editorLines splits the logical line on newlines and prefixes the prompt,
// indenting continuation rows to the prompt width.
func (s *Session) editorLines(text string) []string {
	rows := strings.Split(text, "\n")
	indent := strings.Repeat(" ", runewidth.StringWidth(s.prompt))
	lines := make([]string, len(rows))
	for i, r := range rows {
		if i == 0 {
			lines[i] = s.prompt + r
		} else {
			lines[i] = indent + r
		}
	}
	return lines
}

// cursorPosition maps the editor's rune cursor to a display row and column
// within the rendered block.
func (s *Session) cursorPosition() (int, int) {
	runes := []rune(s.editor.Text())
	row, start := 0, 0
	for i := 0; i < s.editor.Cursor(); i++ {
		if runes[i] == '\n' {
			row++
			start = i + 1
		}
	}
	col := runewidth.StringWidth(s.prompt) + runewidth.StringWidth(string(runes[start:s.editor.Cursor()]))
	return row, col
}

func (s *Session) statusLine() string {
	switch {
	case s.pendingExit:
		return exitArmedLine
	case s.pendingClear:
		return clearArmed
	default:
		return hintLine
	}
}
