package console

import (
	"fmt"
	"strings"
)

// PaletteEntry is one selectable command. The console treats the entry list
// as read-only; its order is the registry's declaration order and breaks
// ranking ties.
type PaletteEntry struct {
	Name        string
	Category    string
	Description string
}

// maxPaletteRows caps how many matches are drawn at once.
const maxPaletteRows = 8

// Palette is the command overlay: a filter string typed by the user, the
// ranked matches, and a selection index. Matching is a case-insensitive
// substring test on the entry name; entries whose name starts with the
// filter rank ahead of the rest, and within each group the declaration
// order is kept. The empty filter matches everything.
type Palette struct {
	entries  []PaletteEntry
	filter   []rune
	matches  []PaletteEntry
	selected int
	saved    EditorState
}

// NewPalette creates a closed palette over entries.
func NewPalette(entries []PaletteEntry) *Palette {
	return &Palette{entries: entries}
}

// Open resets the palette to an empty filter and remembers the editor state
// to restore on smart-cancel.
func (p *Palette) Open(saved EditorState) {
	p.filter = p.filter[:0]
	p.saved = saved
	p.refilter()
}

// Saved returns the editor state captured at open time.
func (p *Palette) Saved() EditorState {
	return p.saved
}

// Handle applies one key event in palette mode and returns the resulting
// action. Backspace on an empty filter is the smart-cancel: the palette
// closes and the session restores the saved editor state.
func (p *Palette) Handle(ev KeyEvent) Action {
	switch ev.Kind {
	case KeyChar:
		p.filter = append(p.filter, ev.Rune)
		p.refilter()
	case KeyBackspace:
		if len(p.filter) == 0 {
			return Action{Kind: ActionCancelPalette}
		}
		p.filter = p.filter[:len(p.filter)-1]
		p.refilter()
	case KeyUp:
		if p.selected > 0 {
			p.selected--
		}
	case KeyDown:
		if p.selected < len(p.matches)-1 {
			p.selected++
		}
	case KeyEnter:
		if entry, ok := p.Selected(); ok {
			return Action{Kind: ActionRunCommand, Command: entry.Name}
		}
	case KeyEscape:
		return Action{Kind: ActionCancelPalette}
	}
	return Action{Kind: ActionNone}
}

// Filter returns the current filter text.
func (p *Palette) Filter() string {
	return string(p.filter)
}

// Matches returns the ranked match list.
func (p *Palette) Matches() []PaletteEntry {
	return p.matches
}

// Selected returns the highlighted entry, or false when nothing matches.
func (p *Palette) Selected() (PaletteEntry, bool) {
	if len(p.matches) == 0 {
		return PaletteEntry{}, false
	}
	return p.matches[p.selected], true
}

// refilter rebuilds the match list for the current filter and resets the
// selection to the top.
func (p *Palette) refilter() {
	p.matches = p.matches[:0]
	p.selected = 0

	needle := strings.ToLower(string(p.filter))
	var rest []PaletteEntry
	for _, e := range p.entries {
		name := strings.ToLower(e.Name)
		switch {
		case strings.HasPrefix(name, needle):
			p.matches = append(p.matches, e)
		case strings.Contains(name, needle):
			rest = append(rest, e)
		}
	}
	p.matches = append(p.matches, rest...)
}

// Lines renders the palette as a block: the filter line on top, then the
// visible window of matches with the selection marked. The window scrolls
// to keep the selection visible.
func (p *Palette) Lines() []string {
	lines := []string{"/" + string(p.filter)}
	if len(p.matches) == 0 {
		lines = append(lines, "  (no matching commands)")
		return lines
	}

	start := 0
	if p.selected >= maxPaletteRows {
		start = p.selected - maxPaletteRows + 1
	}
	end := start + maxPaletteRows
	if end > len(p.matches) {
		end = len(p.matches)
	}

	width := 0
	for _, e := range p.matches[start:end] {
		if len(e.Name) > width {
			width = len(e.Name)
		}
	}
	for i := start; i < end; i++ {
		e := p.matches[i]
		marker := "  "
		if i == p.selected {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-*s  %s", marker, width, e.Name, e.Description))
	}
	return lines
}
