package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "fenced",
			input: "```json\n{\"a\":1}\n```",
			want:  `{"a":1}`,
		},
		{
			name:  "leading and trailing prose",
			input: `Aquí tienes: {"a":1} espero que sirva`,
			want:  `{"a":1}`,
		},
		{
			name:  "array",
			input: `texto ["a","b"] texto`,
			want:  `["a","b"]`,
		},
		{
			name:  "no json returns original",
			input: "sin json",
			want:  "sin json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONObject(tt.input))
		})
	}
}

func TestSplitFencedSuggestions(t *testing.T) {
	content := "¡Bienvenido al programa!\n\n```json\n[\"¿Qué trabajamos esta semana?\", \"Dame la sesión 1\"]\n```\n"

	body, suggestions := splitFencedSuggestions(content)

	assert.Equal(t, "¡Bienvenido al programa!", body)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "¿Qué trabajamos esta semana?", suggestions[0])
	assert.Equal(t, "Dame la sesión 1", suggestions[1])
}

func TestSplitFencedSuggestionsNoBlock(t *testing.T) {
	body, suggestions := splitFencedSuggestions("solo texto de bienvenida")
	assert.Equal(t, "solo texto de bienvenida", body)
	assert.Nil(t, suggestions)
}

func TestSplitFencedSuggestionsMalformedBlock(t *testing.T) {
	body, suggestions := splitFencedSuggestions("hola\n```json\nno es json\n```")
	assert.Equal(t, "hola", body)
	assert.Nil(t, suggestions)
}
