package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// retryBaseDelay is the first backoff step; each retry doubles it.
const retryBaseDelay = 100 * time.Millisecond

// GroqClient talks to Groq's OpenAI-compatible chat completions endpoint.
type GroqClient struct {
	apiKey     string
	baseURL    string
	attempts   int
	httpClient *http.Client
}

// GroqOption adjusts a GroqClient.
type GroqOption func(*GroqClient)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(url string) GroqOption {
	return func(c *GroqClient) { c.baseURL = strings.TrimSuffix(url, "/") }
}

// WithAttempts sets how many times a request is tried in total.
func WithAttempts(n int) GroqOption {
	return func(c *GroqClient) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) GroqOption {
	return func(c *GroqClient) { c.httpClient.Timeout = d }
}

// NewGroqClient creates a client authenticated with apiKey.
func NewGroqClient(apiKey string, opts ...GroqOption) *GroqClient {
	c := &GroqClient{
		apiKey:     apiKey,
		baseURL:    defaultGroqBaseURL,
		attempts:   3,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies the provider.
func (c *GroqClient) Name() string { return "groq" }

type chatRequest struct {
	Model               string    `json:"model"`
	Messages            []Message `json:"messages"`
	Temperature         float64   `json:"temperature"`
	MaxCompletionTokens int       `json:"max_completion_tokens"`
	TopP                int       `json:"top_p"`
	Stream              bool      `json:"stream"`
	ReasoningEffort     string    `json:"reasoning_effort,omitempty"`
	IncludeReasoning    *bool     `json:"include_reasoning,omitempty"`
}

type chatChoice struct {
	Message struct {
		Content   string `json:"content"`
		Reasoning string `json:"reasoning"`
	} `json:"message"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
	FinishReason string `json:"finish_reason"`
}

type chatResponse struct {
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (c *GroqClient) buildRequest(req Request, stream bool) ([]byte, error) {
	body := chatRequest{
		Model:               req.Model,
		Messages:            req.Messages,
		Temperature:         req.Temperature,
		MaxCompletionTokens: req.MaxTokens,
		TopP:                1,
		Stream:              stream,
	}
	if isReasoningModel(req.Model) {
		body.ReasoningEffort = req.ReasoningEffort
		include := req.IncludeReasoning
		body.IncludeReasoning = &include
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return data, nil
}

// doWithRetry posts the request, retrying transient failures (network
// errors, 429, 5xx) with exponential backoff. Other HTTP errors are final.
func (c *GroqClient) doWithRetry(ctx context.Context, body []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("groq request: %w", err)
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			data, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("groq API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			data, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("groq API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return resp, nil
	}
	return nil, fmt.Errorf("groq request failed after %d attempts: %w", c.attempts, lastErr)
}

// Stream runs a streaming completion, invoking onDelta for each content
// chunk. Canceling ctx aborts the stream.
func (c *GroqClient) Stream(ctx context.Context, req Request, onDelta StreamFunc) (*Usage, error) {
	body, err := c.buildRequest(req, true)
	if err != nil {
		return nil, err
	}
	resp, err := c.doWithRetry(ctx, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	received := 0
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			break
		}
		var chunk chatResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Skip malformed chunks.
			continue
		}
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			onDelta(chunk.Choices[0].Delta.Content)
			received += len(chunk.Choices[0].Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("read stream: %w", err)
	}

	return &Usage{CompletionTokens: estimateTokens(received), TotalTokens: estimateTokens(received), Estimated: true}, nil
}

// Complete runs a blocking completion and returns the whole response.
func (c *GroqClient) Complete(ctx context.Context, req Request) (*Response, error) {
	body, err := c.buildRequest(req, false)
	if err != nil {
		return nil, err
	}
	resp, err := c.doWithRetry(ctx, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("groq response has no choices")
	}

	return &Response{
		Content:   parsed.Choices[0].Message.Content,
		Reasoning: parsed.Choices[0].Message.Reasoning,
		Model:     parsed.Model,
		Usage: Usage{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
		},
	}, nil
}

// estimateTokens approximates tokens from byte length, roughly four bytes
// per token.
func estimateTokens(chars int) int {
	return chars / 4
}
