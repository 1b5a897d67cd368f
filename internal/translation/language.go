package translation

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeCode returns the canonical form of a language code so that
// "TR", " tr " and "tr" compare equal. Codes that are not valid BCP 47 tags
// are lower-cased and returned as they are.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	return tag.String()
}
