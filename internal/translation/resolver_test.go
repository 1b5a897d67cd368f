package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRequestedLanguage(t *testing.T) {
	translations := map[string]Translation{
		"tr": {Language: "tr", Name: "Domates"},
		"en": {Language: "en", Name: "Tomato"},
	}

	got := Resolve(translations, "en", "tr")
	assert.Equal(t, "Tomato", got.Name)
	assert.Equal(t, "en", got.Language)
	assert.True(t, got.HasTranslation)
	assert.False(t, got.FallbackUsed)
}

func TestResolveFallsBackToSystemDefault(t *testing.T) {
	translations := map[string]Translation{
		"tr": {Language: "tr", Name: "Domates"},
	}

	got := Resolve(translations, "fr", "tr")
	assert.Equal(t, "Domates", got.Name)
	assert.Equal(t, "tr", got.Language)
	assert.True(t, got.HasTranslation)
	assert.True(t, got.FallbackUsed)
}

func TestResolveLowestCodeWhenDefaultMissing(t *testing.T) {
	translations := map[string]Translation{
		"fr": {Name: "Tomate"},
		"de": {Name: "Tomate (de)"},
		"es": {Name: "Tomate (es)"},
	}

	for i := 0; i < 20; i++ {
		got := Resolve(translations, "it", "tr")
		assert.Equal(t, "de", got.Language)
		assert.Equal(t, "Tomate (de)", got.Name)
		assert.True(t, got.FallbackUsed)
	}
}

func TestResolveUntranslated(t *testing.T) {
	got := Resolve(nil, "en", "tr")
	assert.False(t, got.HasTranslation)
	assert.Empty(t, got.Name)
	assert.Empty(t, got.Language)

	got = Resolve(map[string]Translation{}, "en", "tr")
	assert.Equal(t, ResolvedText{}, got)
}

func TestResolveCopiesSteps(t *testing.T) {
	steps := []string{"chop", "fry"}
	translations := map[string]Translation{
		"en": {Name: "Menemen", Description: "Eggs with tomato", Steps: steps},
	}

	got := Resolve(translations, "en", "tr")
	assert.Equal(t, []string{"chop", "fry"}, got.Steps)
	assert.Equal(t, "Eggs with tomato", got.Description)

	got.Steps[0] = "changed"
	assert.Equal(t, "chop", steps[0])
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tr", "tr"},
		{"TR", "tr"},
		{" en ", "en"},
		{"pt-br", "pt-BR"},
		{"", ""},
		{"   ", ""},
		{"not_a_tag!", "not_a_tag!"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCode(tt.in))
		})
	}
}
