package console

// historyLimit bounds how many submitted lines are kept for recall.
const historyLimit = 100

// History holds previously submitted input lines for ArrowUp/ArrowDown
// recall. Adding a line that already exists moves it to the most-recent
// slot instead of duplicating it. While the user browses, the unsent draft
// is kept so ArrowDown past the newest entry brings it back.
type History struct {
	entries  []string
	pos      int
	draft    string
	browsing bool
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Add records a submitted line and ends any in-progress browsing. Empty
// lines are not recorded.
func (h *History) Add(line string) {
	h.browsing = false
	if line == "" {
		return
	}
	for i, e := range h.entries {
		if e == line {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			break
		}
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > historyLimit {
		h.entries = h.entries[len(h.entries)-historyLimit:]
	}
}

// Prev steps back to the previous entry. On the first step it saves current
// as the draft. Returns false at the oldest entry (or when empty).
func (h *History) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if !h.browsing {
		h.draft = current
		h.pos = len(h.entries)
		h.browsing = true
	}
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Next steps forward toward the draft. Stepping past the newest entry
// returns the draft and ends browsing. Returns false when not browsing.
func (h *History) Next() (string, bool) {
	if !h.browsing {
		return "", false
	}
	h.pos++
	if h.pos >= len(h.entries) {
		h.browsing = false
		return h.draft, true
	}
	return h.entries[h.pos], true
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns the stored lines, oldest first.
func (h *History) Entries() []string {
	return h.entries
}

// Stop ends browsing without changing the editor.
func (h *History) Stop() {
	h.browsing = false
}
