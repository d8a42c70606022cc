package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fratq/gpt-cli/pkg/conversation"
)

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "User", RoleLabel("user"))
	assert.Equal(t, "Assistant", RoleLabel("assistant"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a ve...", Truncate("a very long line", 7))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	// Rune-safe on multi-byte text.
	assert.Equal(t, "漢字", Truncate("漢字", 2))
}

func TestWelcomeNamesModel(t *testing.T) {
	out := Welcome("openai/gpt-oss-20b")
	assert.Contains(t, out, "GPT-OSS 20B")
}

func TestStatusLines(t *testing.T) {
	conv := conversation.New("openai/gpt-oss-20b")
	conv.Add(conversation.RoleUser, "q")
	conv.Add(conversation.RoleAssistant, "a")

	lines := StatusLines(conv)
	assert.Contains(t, lines[0], "GPT-OSS 20B")
	assert.Contains(t, lines[1], "reasoning")
	assert.Contains(t, lines[3], "2 (1 from you, 1 replies)")
}

func TestHistoryLines(t *testing.T) {
	conv := conversation.New("m")
	assert.Equal(t, []string{"No messages yet."}, HistoryLines(conv, 40))

	conv.Add(conversation.RoleUser, "line one\nline two")
	lines := HistoryLines(conv, 40)
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "User: line one line two")
}

func TestMarkdownRendererFallsBackToPlain(t *testing.T) {
	r := &MarkdownRenderer{}
	assert.Equal(t, "# hi", r.Render("# hi"))
}

func TestMarkdownRendererRenders(t *testing.T) {
	r := NewMarkdownRenderer(60)
	out := r.Render("plain words")
	assert.Contains(t, out, "plain words")
}
