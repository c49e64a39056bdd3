package classifier

import (
	"regexp"
	"strings"

	"clinic-etl/internal/lexicon"
)

var significantRe = regexp.MustCompile(`significativas?:\s*(.*)`)

// Interactions is the coded drug-interaction block of a report row.
type Interactions struct {
	Present   int
	Major     int
	Relevance int
	Mechanism int
	Molecules string
}

// ClassifyInteractions reads what follows "significativa(s):". Nothing, or
// "ninguna", means no interaction. Otherwise the interaction is recorded as
// major and relevant, with mechanism 1 when a known molecule is named and
// 2 when it is not.
func ClassifyInteractions(text string, keyDrugs []string) Interactions {
	lower := strings.ToLower(text)
	content := ""
	if m := significantRe.FindStringSubmatch(lower); m != nil {
		content = strings.TrimSpace(m[1])
	}
	if content == "" || strings.Contains(content, "ninguna") {
		return Interactions{}
	}

	found := lexicon.Contained(content, keyDrugs)
	names := make([]string, 0, len(found))
	for _, d := range found {
		names = append(names, capitalizeWord(d))
	}

	res := Interactions{
		Present:   1,
		Major:     2,
		Relevance: 3,
		Mechanism: 2,
		Molecules: strings.Join(names, "; "),
	}
	if res.Molecules != "" {
		res.Mechanism = 1
	}
	return res
}

func capitalizeWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
