package console

// ActionKind classifies what the session asks its caller to do. The console
// never executes command side effects itself; it only reports intent.
type ActionKind int

const (
	// ActionNone means the event was consumed with no caller-visible effect.
	ActionNone ActionKind = iota
	// ActionSubmit carries a completed input line in Text.
	ActionSubmit
	// ActionRunCommand carries the selected palette entry's name in Command.
	ActionRunCommand
	// ActionOpenPalette is emitted by the editor when '/' is typed on an
	// empty buffer; the session switches to palette mode.
	ActionOpenPalette
	// ActionCancelPalette closes the palette with no selection.
	ActionCancelPalette
	// ActionCancel is the first Ctrl+C: clear state, arm the exit prompt.
	ActionCancel
	// ActionExit ends the session (second Ctrl+C, or the exit command).
	ActionExit
)

// Action is the session's output to its caller.
type Action struct {
	Kind    ActionKind
	Text    string
	Command string
}

// EditorState is a snapshot of the editor's buffer and cursor, used to
// restore the exact pre-palette state on smart-cancel.
type EditorState struct {
	text   []rune
	cursor int
}

// Editor is a single logical input line: a rune buffer and a cursor.
// The cursor is always within [0, len(buffer)]. Ctrl+J inserts a literal
// newline, so the logical line may span several display rows.
type Editor struct {
	buf    []rune
	cursor int
}

// NewEditor creates an empty editor.
func NewEditor() *Editor {
	return &Editor{}
}

// Handle applies one key event to the buffer and returns the resulting
// action. Keys the editor does not own (Ctrl+C, Escape, arrows up/down)
// return ActionNone untouched; the session layers its own handling on top.
func (e *Editor) Handle(ev KeyEvent) Action {
	switch ev.Kind {
	case KeyChar:
		if ev.Rune == '/' && len(e.buf) == 0 {
			return Action{Kind: ActionOpenPalette}
		}
		e.insert(ev.Rune)
	case KeyEnter:
		if len(e.buf) == 0 {
			return Action{Kind: ActionNone}
		}
		text := string(e.buf)
		e.Clear()
		return Action{Kind: ActionSubmit, Text: text}
	case KeyCtrlJ:
		e.insert('\n')
	case KeyBackspace:
		if e.cursor > 0 {
			e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
			e.cursor--
		}
	case KeyDelete:
		if e.cursor < len(e.buf) {
			e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
		}
	case KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case KeyRight:
		if e.cursor < len(e.buf) {
			e.cursor++
		}
	case KeyHome:
		e.cursor = 0
	case KeyEnd:
		e.cursor = len(e.buf)
	}
	return Action{Kind: ActionNone}
}

func (e *Editor) insert(r rune) {
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = r
	e.cursor++
}

// Text returns the buffer contents.
func (e *Editor) Text() string {
	return string(e.buf)
}

// SetText replaces the buffer wholesale and puts the cursor at the end.
// Used by history recall.
func (e *Editor) SetText(s string) {
	e.buf = []rune(s)
	e.cursor = len(e.buf)
}

// Cursor returns the cursor's rune index.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Empty reports whether the buffer holds no runes.
func (e *Editor) Empty() bool {
	return len(e.buf) == 0
}

// Clear empties the buffer and resets the cursor.
func (e *Editor) Clear() {
	e.buf = e.buf[:0]
	e.cursor = 0
}

// Snapshot captures the current buffer and cursor.
func (e *Editor) Snapshot() EditorState {
	return EditorState{text: append([]rune(nil), e.buf...), cursor: e.cursor}
}

// Restore puts the editor back to a previously captured state.
func (e *Editor) Restore(s EditorState) {
	e.buf = append(e.buf[:0], s.text...)
	e.cursor = s.cursor
}
