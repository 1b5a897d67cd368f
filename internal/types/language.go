package types

// LanguageItem is one active catalog language
type LanguageItem struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

// LanguagesResponse lists the active languages
type LanguagesResponse struct {
	Success bool           `json:"success"`
	Data    []LanguageItem `json:"data"`
}
