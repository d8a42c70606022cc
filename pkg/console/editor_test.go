package console

import "testing"

func typeString(e *Editor, s string) {
	for _, r := range s {
		e.Handle(KeyEvent{Kind: KeyChar, Rune: r})
	}
}

func TestEditorInsertAndSubmit(t *testing.T) {
	e := NewEditor()
	typeString(e, "Hi")
	if e.Text() != "Hi" || e.Cursor() != 2 {
		t.Fatalf("after typing: text %q cursor %d", e.Text(), e.Cursor())
	}
	act := e.Handle(KeyEvent{Kind: KeyEnter})
	if act.Kind != ActionSubmit || act.Text != "Hi" {
		t.Fatalf("enter: got %+v, want submit Hi", act)
	}
	if !e.Empty() || e.Cursor() != 0 {
		t.Errorf("editor not cleared after submit: %q cursor %d", e.Text(), e.Cursor())
	}
}

func TestEditorEnterOnEmptyBufferIgnored(t *testing.T) {
	e := NewEditor()
	if act := e.Handle(KeyEvent{Kind: KeyEnter}); act.Kind != ActionNone {
		t.Errorf("got %+v, want none", act)
	}
}

func TestEditorCursorMovementClamped(t *testing.T) {
	e := NewEditor()
	typeString(e, "abc")
	for i := 0; i < 5; i++ {
		e.Handle(KeyEvent{Kind: KeyLeft})
	}
	if e.Cursor() != 0 {
		t.Errorf("cursor after left past start: %d", e.Cursor())
	}
	for i := 0; i < 5; i++ {
		e.Handle(KeyEvent{Kind: KeyRight})
	}
	if e.Cursor() != 3 {
		t.Errorf("cursor after right past end: %d", e.Cursor())
	}
	e.Handle(KeyEvent{Kind: KeyHome})
	if e.Cursor() != 0 {
		t.Errorf("cursor after home: %d", e.Cursor())
	}
	e.Handle(KeyEvent{Kind: KeyEnd})
	if e.Cursor() != 3 {
		t.Errorf("cursor after end: %d", e.Cursor())
	}
}

func TestEditorInsertAtCursor(t *testing.T) {
	e := NewEditor()
	typeString(e, "ac")
	e.Handle(KeyEvent{Kind: KeyLeft})
	e.Handle(KeyEvent{Kind: KeyChar, Rune: 'b'})
	if e.Text() != "abc" {
		t.Errorf("got %q, want abc", e.Text())
	}
	if e.Cursor() != 2 {
		t.Errorf("cursor: got %d, want 2", e.Cursor())
	}
}

func TestEditorBackspaceAndDelete(t *testing.T) {
	e := NewEditor()
	typeString(e, "abc")
	e.Handle(KeyEvent{Kind: KeyBackspace})
	if e.Text() != "ab" || e.Cursor() != 2 {
		t.Fatalf("after backspace: %q cursor %d", e.Text(), e.Cursor())
	}
	e.Handle(KeyEvent{Kind: KeyHome})
	e.Handle(KeyEvent{Kind: KeyDelete})
	if e.Text() != "b" || e.Cursor() != 0 {
		t.Fatalf("after delete: %q cursor %d", e.Text(), e.Cursor())
	}
	// Backspace at the start and delete at the end are no-ops.
	e.Handle(KeyEvent{Kind: KeyBackspace})
	e.Handle(KeyEvent{Kind: KeyEnd})
	e.Handle(KeyEvent{Kind: KeyDelete})
	if e.Text() != "b" {
		t.Errorf("boundary edits changed buffer: %q", e.Text())
	}
}

func TestEditorSlashOpensPaletteOnlyWhenEmpty(t *testing.T) {
	e := NewEditor()
	if act := e.Handle(KeyEvent{Kind: KeyChar, Rune: '/'}); act.Kind != ActionOpenPalette {
		t.Fatalf("slash on empty buffer: got %+v, want open palette", act)
	}
	if !e.Empty() {
		t.Fatal("slash on empty buffer should not enter the buffer")
	}

	typeString(e, "a")
	if act := e.Handle(KeyEvent{Kind: KeyChar, Rune: '/'}); act.Kind != ActionNone {
		t.Fatalf("slash mid-text: got %+v, want none", act)
	}
	if e.Text() != "a/" {
		t.Errorf("slash mid-text: got %q, want a/", e.Text())
	}
}

func TestEditorCtrlJInsertsNewline(t *testing.T) {
	e := NewEditor()
	typeString(e, "ab")
	e.Handle(KeyEvent{Kind: KeyCtrlJ})
	typeString(e, "cd")
	if e.Text() != "ab\ncd" {
		t.Errorf("got %q, want ab\\ncd", e.Text())
	}
}

func TestEditorMultiByteRunes(t *testing.T) {
	e := NewEditor()
	typeString(e, "漢字")
	if e.Cursor() != 2 {
		t.Fatalf("cursor counts runes, got %d", e.Cursor())
	}
	e.Handle(KeyEvent{Kind: KeyBackspace})
	if e.Text() != "漢" {
		t.Errorf("backspace removed wrong rune: %q", e.Text())
	}
}

func TestEditorSnapshotRestore(t *testing.T) {
	e := NewEditor()
	typeString(e, "hello")
	e.Handle(KeyEvent{Kind: KeyLeft})
	snap := e.Snapshot()

	e.Clear()
	typeString(e, "other")
	e.Restore(snap)
	if e.Text() != "hello" || e.Cursor() != 4 {
		t.Errorf("restore: text %q cursor %d, want hello/4", e.Text(), e.Cursor())
	}
}
