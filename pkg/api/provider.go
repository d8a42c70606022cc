package api

import "context"

// Message is one chat turn as the providers see it.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a provider-independent chat completion request.
type Request struct {
	Model            string
	Messages         []Message
	MaxTokens        int
	Temperature      float64
	ReasoningEffort  string
	IncludeReasoning bool
}

// Usage is the token accounting for one completion. Estimated is set when
// the provider does not report real counts.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Estimated        bool
}

// Response is a complete, non-streamed completion.
type Response struct {
	Content   string
	Reasoning string
	Model     string
	Usage     Usage
}

// StreamFunc receives each content delta as it arrives.
type StreamFunc func(delta string)

// Provider is a chat completion backend. Stream delivers content
// incrementally through onDelta and honors ctx cancellation mid-stream;
// Complete waits for the full response.
type Provider interface {
	Name() string
	Stream(ctx context.Context, req Request, onDelta StreamFunc) (*Usage, error)
	Complete(ctx context.Context, req Request) (*Response, error)
}
