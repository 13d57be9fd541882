package amiv

import (
	"encoding/json"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// textFields are the upstream fields searched for keywords, both languages.
var textFields = []string{
	"title_en", "description_en", "catchphrase_en",
	"title_de", "description_de", "catchphrase_de",
}

// foldTransformer strips diacritics: decompose, drop combining marks,
// recompose. "apéro" folds to "apero".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and removes diacritical marks.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// Matches reports whether any of the event's text fields contains one of
// the keywords, compared case-insensitively after folding.
func (e Event) Matches(keywords []string) bool {
	combined := Fold(strings.Join([]string{
		e.TitleEN, e.DescriptionEN, e.CatchphraseEN,
		e.TitleDE, e.DescriptionDE, e.CatchphraseDE,
	}, " "))
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(combined, Fold(kw)) {
			return true
		}
	}
	return false
}

// Where builds the server-side Eve filter document matching any keyword in
// any text field, case-insensitively. Returns an empty string for no
// keywords, which means no filtering.
func Where(keywords []string) string {
	var clauses []map[string]any
	for _, field := range textFields {
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			clauses = append(clauses, map[string]any{
				field: map[string]string{"$regex": kw, "$options": "i"},
			})
		}
	}
	if len(clauses) == 0 {
		return ""
	}
	doc, err := json.Marshal(map[string]any{"$or": clauses})
	if err != nil {
		return ""
	}
	return string(doc)
}
