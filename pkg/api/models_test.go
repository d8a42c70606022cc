package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelsTable(t *testing.T) {
	models := Models()
	assert.Len(t, models, 4)

	byID := map[string]ModelInfo{}
	for _, m := range models {
		byID[m.ID] = m
	}
	assert.True(t, byID["openai/gpt-oss-20b"].SupportsReasoning)
	assert.True(t, byID["openai/gpt-oss-20b"].SupportsStreaming)
	assert.False(t, byID["compound-beta"].SupportsStreaming)
	assert.True(t, byID["compound-beta"].SupportsTools)
}

func TestLookupModel(t *testing.T) {
	m := LookupModel("openai/gpt-oss-120b")
	assert.Equal(t, "GPT-OSS 120B", m.Name)

	m = LookupModel("ollama:llama3")
	assert.Equal(t, "llama3", m.Name)
	assert.True(t, m.SupportsStreaming)

	m = LookupModel("mystery")
	assert.Equal(t, "Unknown model", m.Description)
}

func TestValidModel(t *testing.T) {
	assert.True(t, ValidModel("openai/gpt-oss-20b"))
	assert.True(t, ValidModel("compound-beta-mini"))
	assert.True(t, ValidModel("ollama:llama3"))
	assert.False(t, ValidModel("ollama:"))
	assert.False(t, ValidModel("gpt-5"))
}

func TestIsReasoningModel(t *testing.T) {
	assert.True(t, isReasoningModel("openai/gpt-oss-20b"))
	assert.False(t, isReasoningModel("compound-beta"))
}
