package embedding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/llm"
)

func TestResolveModel(t *testing.T) {
	tests := []struct {
		input     string
		name      string
		dimension int
		family    Family
	}{
		{"all-MiniLM-L6-v2", "all-MiniLM-L6-v2", 384, FamilyGeneric},
		{"sentence-transformers/all-MiniLM-L6-v2", "all-MiniLM-L6-v2", 384, FamilyGeneric},
		{"sentence-transformers/all-mpnet-base-v2", "all-mpnet-base-v2", 768, FamilyGeneric},
		{"intfloat/e5-large-v2", "e5-large-v2", 1024, FamilyE5},
		{"E5-BASE-V2", "e5-base-v2", 768, FamilyE5},
		{"BAAI/bge-large-en-v1.5", "bge-large-en-v1.5", 1024, FamilyBGE},
		{" bge-small-en-v1.5 ", "bge-small-en-v1.5", 384, FamilyBGE},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			info, err := ResolveModel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.name, info.Name)
			assert.Equal(t, tt.dimension, info.Dimension)
			assert.Equal(t, tt.family, info.Family)
		})
	}
}

func TestResolveModel_Gemini(t *testing.T) {
	info, err := ResolveModel("models/text-embedding-004")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, info.Backend)
	assert.Equal(t, 768, info.Dimension)
}

func TestResolveModel_Unknown(t *testing.T) {
	_, err := ResolveModel("word2vec")
	require.Error(t, err)

	var unavailable *ModelUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "word2vec", unavailable.Model)
	assert.True(t, errors.Is(err, ErrUnknownModel))
}

func TestModels(t *testing.T) {
	models := Models()
	require.Len(t, models, len(registry))

	for i := 1; i < len(models); i++ {
		assert.Less(t, lower(models[i-1].Name), lower(models[i].Name))
	}

	_, err := ResolveModel(DefaultModel)
	assert.NoError(t, err)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}

func TestApplyPrefix(t *testing.T) {
	e5, _ := ResolveModel("e5-large-v2")
	bge, _ := ResolveModel("bge-small-en-v1.5")
	mini, _ := ResolveModel("all-MiniLM-L6-v2")

	assert.Equal(t, "query: golang", ApplyPrefix(e5, "golang", true))
	assert.Equal(t, "passage: golang", ApplyPrefix(e5, "golang", false))
	assert.Equal(t, BGEQueryInstruction+"golang", ApplyPrefix(bge, "golang", true))
	assert.Equal(t, "golang", ApplyPrefix(bge, "golang", false))
	assert.Equal(t, "golang", ApplyPrefix(mini, "golang", true))

	// the family is inferred from the name for models outside the registry
	custom := ModelInfo{Name: "my-E5-finetune", Family: FamilyGeneric}
	assert.Equal(t, "query: x", ApplyPrefix(custom, "x", true))
}
