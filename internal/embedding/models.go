package embedding

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/llm"
)

// Family groups models that share input conventions
type Family string

// Model families
const (
	FamilyGeneric Family = "generic"
	FamilyE5      Family = "e5"
	FamilyBGE     Family = "bge"
)

// DefaultModel is used when no model is configured
const DefaultModel = "all-mpnet-base-v2"

// ModelInfo describes a known embedding model
type ModelInfo struct {
	Name      string       `json:"name"`
	Dimension int          `json:"dimension"`
	Family    Family       `json:"family"`
	Backend   llm.Provider `json:"backend"`
}

var registry = map[string]ModelInfo{
	"all-minilm-l6-v2":   {Name: "all-MiniLM-L6-v2", Dimension: 384, Family: FamilyGeneric, Backend: llm.ProviderHTTP},
	"all-mpnet-base-v2":  {Name: "all-mpnet-base-v2", Dimension: 768, Family: FamilyGeneric, Backend: llm.ProviderHTTP},
	"e5-large-v2":        {Name: "e5-large-v2", Dimension: 1024, Family: FamilyE5, Backend: llm.ProviderHTTP},
	"e5-base-v2":         {Name: "e5-base-v2", Dimension: 768, Family: FamilyE5, Backend: llm.ProviderHTTP},
	"bge-large-en-v1.5":  {Name: "bge-large-en-v1.5", Dimension: 1024, Family: FamilyBGE, Backend: llm.ProviderHTTP},
	"bge-small-en-v1.5":  {Name: "bge-small-en-v1.5", Dimension: 384, Family: FamilyBGE, Backend: llm.ProviderHTTP},
	"text-embedding-004": {Name: "text-embedding-004", Dimension: 768, Family: FamilyGeneric, Backend: llm.ProviderGemini},
}

// organisation prefixes accepted in front of registry names
var orgPrefixes = []string{"sentence-transformers/", "intfloat/", "baai/", "models/"}

// ResolveModel looks a model name up in the registry.
// Matching ignores case and a leading organisation prefix such as "sentence-transformers/".
func ResolveModel(name string) (ModelInfo, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, prefix := range orgPrefixes {
		key = strings.TrimPrefix(key, prefix)
	}

	info, ok := registry[key]
	if !ok {
		return ModelInfo{}, &ModelUnavailableError{Model: name, Cause: ErrUnknownModel}
	}
	return info, nil
}

// Models returns every registered model, sorted by name
func Models() []ModelInfo {
	models := make([]ModelInfo, 0, len(registry))
	for _, info := range registry {
		models = append(models, info)
	}
	sort.Slice(models, func(i, j int) bool {
		return strings.ToLower(models[i].Name) < strings.ToLower(models[j].Name)
	})
	return models
}
