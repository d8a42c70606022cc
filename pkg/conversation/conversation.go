package conversation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Roles used in chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a full chat session.
type Conversation struct {
	SessionID string    `json:"session_id"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Messages  []Message `json:"messages"`
}

// New creates an empty conversation for the given model with a fresh
// session ID.
func New(model string) *Conversation {
	return &Conversation{
		SessionID: uuid.NewString(),
		Model:     model,
		CreatedAt: time.Now(),
	}
}

// Add appends a message and returns it.
func (c *Conversation) Add(role, content string) Message {
	msg := Message{Role: role, Content: content, Timestamp: time.Now()}
	c.Messages = append(c.Messages, msg)
	return msg
}

// Clear drops all messages but keeps the session identity.
func (c *Conversation) Clear() {
	c.Messages = c.Messages[:0]
}

// Len returns the message count.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// CountByRole returns how many messages carry the given role.
func (c *Conversation) CountByRole(role string) int {
	n := 0
	for _, m := range c.Messages {
		if m.Role == role {
			n++
		}
	}
	return n
}

// APIMessages returns the role/content pairs the provider APIs expect,
// without timestamps.
func (c *Conversation) APIMessages() []map[string]string {
	out := make([]map[string]string, len(c.Messages))
	for i, m := range c.Messages {
		out[i] = map[string]string{"role": m.Role, "content": m.Content}
	}
	return out
}

// Save writes the conversation as indented JSON to path, creating parent
// directories as needed.
func (c *Conversation) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create conversation dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write conversation: %w", err)
	}
	return nil
}

// Load reads a conversation saved by Save.
func Load(path string) (*Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read conversation: %w", err)
	}
	var c Conversation
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse conversation %s: %w", path, err)
	}
	return &c, nil
}

// SanitizeFilename strips characters that are illegal in filenames on the
// platforms we care about.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			return -1
		}
		return r
	}, name)
}
