// Package translation resolves localized display text for translatable
// entities through a deterministic language fallback chain.
package translation

import "sort"

// Translation is one language-specific text record of an entity.
type Translation struct {
	Language    string   `json:"language"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Steps       []string `json:"steps,omitempty"`
}

// ResolvedText is the display text chosen for an entity in one request.
// A zero ResolvedText is the untranslated sentinel.
type ResolvedText struct {
	Language       string   `json:"language,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Steps          []string `json:"steps,omitempty"`
	HasTranslation bool     `json:"has_translation"`
	FallbackUsed   bool     `json:"fallback_used"`
}

// Resolve picks the translation to display. It tries the requested
// language, then the system default, then the lowest language code
// present. An empty map yields the untranslated sentinel.
func Resolve(translations map[string]Translation, requested, systemDefault string) ResolvedText {
	if t, ok := translations[requested]; ok {
		return resolved(requested, t, false)
	}
	if t, ok := translations[systemDefault]; ok {
		return resolved(systemDefault, t, true)
	}
	if len(translations) == 0 {
		return ResolvedText{}
	}

	codes := make([]string, 0, len(translations))
	for code := range translations {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return resolved(codes[0], translations[codes[0]], true)
}

func resolved(code string, t Translation, fallback bool) ResolvedText {
	var steps []string
	if len(t.Steps) > 0 {
		steps = append([]string(nil), t.Steps...)
	}
	return ResolvedText{
		Language:       code,
		Name:           t.Name,
		Description:    t.Description,
		Steps:          steps,
		HasTranslation: true,
		FallbackUsed:   fallback,
	}
}
