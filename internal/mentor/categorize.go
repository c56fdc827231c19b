package mentor

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Task categories.
const (
	CategoryVideo   = "edicao_video"
	CategoryText    = "texto"
	CategoryDesign  = "design"
	CategoryData    = "analise_dados"
	CategoryGeneral = "geral"
)

// categoryRules are checked in order; the first rule with a matching keyword wins.
// Keywords are compared without accents.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{CategoryVideo, []string{"tiktok", "reels", "video"}},
	{CategoryText, []string{"post", "artigo", "texto", "redacao", "article", "blog"}},
	{CategoryDesign, []string{"design", "imagem", "banner", "image"}},
	{CategoryData, []string{"dados", "planilha", "analise", "spreadsheet", "dataset"}},
}

// Categorize assigns a task description to a category by keyword.
func Categorize(description string) string {
	text := fold(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

// fold lower-cases s and strips diacritics ("Análise" → "analise").
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
