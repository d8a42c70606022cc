package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Renderer owns the screen region below the last committed output. The whole
// block (prompt line plus any overlay lines) is redrawn on every visible
// change; per-character echo is never used, so the display can only lag,
// never diverge. It remembers what it last drew and skips writes that would
// repaint the identical block with the identical cursor position.
type Renderer struct {
	out io.Writer

	lastLines  []string
	lastRow    int
	lastCol    int
	haveState  bool
	paintedLen int // rows currently occupied on screen
}

// NewRenderer creates a renderer over out with no painted state.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// RedrawLine repaints a single-line block: the prompt plus the editor text,
// cursor at rune index cursor within text.
func (r *Renderer) RedrawLine(prompt, text string, cursor int) error {
	col := runewidth.StringWidth(prompt) + runewidth.StringWidth(string([]rune(text)[:cursor]))
	return r.RedrawBlock([]string{prompt + text}, 0, col)
}

// RedrawBlock repaints the block as lines, leaving the terminal cursor at
// display column col of line row. Lines the previous block occupied beyond
// len(lines) are erased so no stale content survives.
func (r *Renderer) RedrawBlock(lines []string, row, col int) error {
	if r.haveState && r.lastRow == row && r.lastCol == col && equalLines(r.lastLines, lines) {
		return nil
	}

	var b strings.Builder
	// Move from wherever the cursor sits to the top of the painted region.
	if r.paintedLen > 0 && r.lastRow > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", r.lastRow)
	}
	b.WriteString("\r")

	total := len(lines)
	if r.paintedLen > total {
		total = r.paintedLen
	}
	for i := 0; i < total; i++ {
		b.WriteString("\x1b[2K")
		if i < len(lines) {
			b.WriteString(lines[i])
		}
		if i < total-1 {
			b.WriteString("\r\n")
		}
	}

	// Cursor is on the last painted row; move it to the target position.
	if up := total - 1 - row; up > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", up)
	}
	fmt.Fprintf(&b, "\x1b[%dG", col+1)

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return fmt.Errorf("render block: %w", err)
	}

	r.lastLines = append(r.lastLines[:0], lines...)
	r.lastRow = row
	r.lastCol = col
	r.haveState = true
	r.paintedLen = len(lines)
	return nil
}

// ClearBlock erases the painted block entirely and leaves the cursor at the
// start of its first line.
func (r *Renderer) ClearBlock() error {
	if r.paintedLen == 0 {
		return nil
	}
	if err := r.RedrawBlock([]string{""}, 0, 0); err != nil {
		return err
	}
	r.reset()
	return nil
}

// Commit finalizes the block: the cursor moves past it and the renderer
// forgets its state, so the next redraw paints fresh rows below.
func (r *Renderer) Commit() error {
	if r.paintedLen > 0 {
		if down := r.paintedLen - 1 - r.lastRow; down > 0 {
			if _, err := fmt.Fprintf(r.out, "\x1b[%dB", down); err != nil {
				return fmt.Errorf("render commit: %w", err)
			}
		}
	}
	if _, err := io.WriteString(r.out, "\r\n"); err != nil {
		return fmt.Errorf("render commit: %w", err)
	}
	r.reset()
	return nil
}

// Reset forgets the painted state without touching the screen. Call after
// writing output outside the renderer so the next redraw starts clean.
func (r *Renderer) Reset() {
	r.reset()
}

func (r *Renderer) reset() {
	r.lastLines = r.lastLines[:0]
	r.lastRow = 0
	r.lastCol = 0
	r.haveState = false
	r.paintedLen = 0
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
