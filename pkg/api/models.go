package api

import "strings"

// OllamaPrefix marks a model ID as served by a local Ollama instance.
const OllamaPrefix = "ollama:"

// ModelInfo describes a known model's capabilities.
type ModelInfo struct {
	ID                string
	Name              string
	Description       string
	SupportsStreaming bool
	SupportsTools     bool
	SupportsReasoning bool
	MaxTokens         int
}

var groqModels = []ModelInfo{
	{
		ID:                "openai/gpt-oss-20b",
		Name:              "GPT-OSS 20B",
		Description:       "Standard 20B parameter model",
		SupportsStreaming: true,
		SupportsReasoning: true,
		MaxTokens:         8192,
	},
	{
		ID:                "openai/gpt-oss-120b",
		Name:              "GPT-OSS 120B",
		Description:       "Larger 120B parameter model",
		SupportsStreaming: true,
		SupportsReasoning: true,
		MaxTokens:         8192,
	},
	{
		ID:                "compound-beta",
		Name:              "Compound AI Beta",
		Description:       "AI with web search & code execution (multiple tools)",
		SupportsTools:     true,
		MaxTokens:         8192,
	},
	{
		ID:                "compound-beta-mini",
		Name:              "Compound AI Beta Mini",
		Description:       "AI with web search & code execution (single tool, 3x faster)",
		SupportsTools:     true,
		MaxTokens:         8192,
	},
}

// Models returns the known Groq model table.
func Models() []ModelInfo {
	out := make([]ModelInfo, len(groqModels))
	copy(out, groqModels)
	return out
}

// LookupModel resolves a model ID to its info. Unknown IDs get a permissive
// default so user-supplied and ollama: models still work.
func LookupModel(id string) ModelInfo {
	for _, m := range groqModels {
		if m.ID == id {
			return m
		}
	}
	if IsOllamaModel(id) {
		return ModelInfo{
			ID:                id,
			Name:              strings.TrimPrefix(id, OllamaPrefix),
			Description:       "Local model served by Ollama",
			SupportsStreaming: true,
			MaxTokens:         8192,
		}
	}
	return ModelInfo{
		ID:                id,
		Name:              id,
		Description:       "Unknown model",
		SupportsStreaming: true,
		MaxTokens:         8192,
	}
}

// ValidModel reports whether id names a known Groq model or any ollama:
// prefixed model.
func ValidModel(id string) bool {
	if IsOllamaModel(id) {
		return strings.TrimPrefix(id, OllamaPrefix) != ""
	}
	for _, m := range groqModels {
		if m.ID == id {
			return true
		}
	}
	return false
}

// IsOllamaModel reports whether id routes to the local Ollama provider.
func IsOllamaModel(id string) bool {
	return strings.HasPrefix(id, OllamaPrefix)
}

// isReasoningModel reports whether the reasoning knobs apply to id. The
// compound models reject them.
func isReasoningModel(id string) bool {
	return !strings.HasPrefix(id, "compound-")
}
