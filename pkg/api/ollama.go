package api

import (
	"context"
	"fmt"
	"strings"

	ollama "github.com/ollama/ollama/api"
)

// OllamaClient serves ollama: prefixed models from a local Ollama
// instance, located via OLLAMA_HOST.
type OllamaClient struct {
	client *ollama.Client
}

// NewOllamaClient connects to the Ollama instance named by the
// environment.
func NewOllamaClient() (*OllamaClient, error) {
	client, err := ollama.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return &OllamaClient{client: client}, nil
}

// Name identifies the provider.
func (c *OllamaClient) Name() string { return "ollama" }

// CheckConnection verifies the local instance is reachable.
func (c *OllamaClient) CheckConnection(ctx context.Context) error {
	if err := c.client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("ollama is not running: %w", err)
	}
	return nil
}

func (c *OllamaClient) buildRequest(req Request, stream bool) *ollama.ChatRequest {
	messages := make([]ollama.Message, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = ollama.Message{Role: m.Role, Content: m.Content}
	}
	return &ollama.ChatRequest{
		Model:    strings.TrimPrefix(req.Model, OllamaPrefix),
		Messages: messages,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": req.Temperature,
			"num_predict": req.MaxTokens,
		},
	}
}

// Stream runs a streaming chat against the local instance. Token counts
// are estimated from byte length when the final chunk omits them.
func (c *OllamaClient) Stream(ctx context.Context, req Request, onDelta StreamFunc) (*Usage, error) {
	usage := &Usage{Estimated: true}
	received := 0
	err := c.client.Chat(ctx, c.buildRequest(req, true), func(res ollama.ChatResponse) error {
		if res.Message.Content != "" {
			onDelta(res.Message.Content)
			received += len(res.Message.Content)
		}
		if res.Done {
			if res.EvalCount > 0 {
				usage.CompletionTokens = res.EvalCount
				usage.PromptTokens = res.PromptEvalCount
				usage.TotalTokens = res.EvalCount + res.PromptEvalCount
				usage.Estimated = false
			}
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("ollama chat: %w", err)
	}
	if usage.Estimated {
		usage.CompletionTokens = estimateTokens(received)
		usage.TotalTokens = usage.CompletionTokens
	}
	return usage, nil
}

// Complete runs a blocking chat and returns the whole response.
func (c *OllamaClient) Complete(ctx context.Context, req Request) (*Response, error) {
	var out Response
	out.Model = req.Model
	err := c.client.Chat(ctx, c.buildRequest(req, false), func(res ollama.ChatResponse) error {
		out.Content += res.Message.Content
		if res.Done && res.EvalCount > 0 {
			out.Usage = Usage{
				PromptTokens:     res.PromptEvalCount,
				CompletionTokens: res.EvalCount,
				TotalTokens:      res.EvalCount + res.PromptEvalCount,
			}
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("ollama chat: %w", err)
	}
	if out.Usage.TotalTokens == 0 {
		out.Usage = Usage{CompletionTokens: estimateTokens(len(out.Content)), TotalTokens: estimateTokens(len(out.Content)), Estimated: true}
	}
	return &out, nil
}
