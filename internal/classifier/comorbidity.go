package classifier

import (
	"regexp"
	"strings"

	"clinic-etl/internal/lexicon"
)

var diagnosisSplitRe = regexp.MustCompile(`[;,.\n]+`)

// Comorbidities is the result of classifying the "other diagnosis" text.
type Comorbidities struct {
	// Flags has one entry per disease category, 0 or 1.
	Flags map[string]int
	// Others are the fragments no category claimed.
	Others []string
}

// Count returns how many categories are flagged.
func (c Comorbidities) Count() int {
	n := 0
	for _, v := range c.Flags {
		n += v
	}
	return n
}

// ClassifyComorbidities splits the other-diagnosis text into fragments and
// assigns each fragment to the first category whose keyword it contains.
func ClassifyComorbidities(otherDiagnosis string, categories []lexicon.Category) Comorbidities {
	res := Comorbidities{Flags: make(map[string]int, len(categories))}
	for _, c := range categories {
		res.Flags[c.Name] = 0
	}

	for _, fragment := range diagnosisSplitRe.Split(strings.ToLower(otherDiagnosis), -1) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		claimed := false
		for _, c := range categories {
			if lexicon.ContainsAny(fragment, c.Keywords) {
				res.Flags[c.Name] = 1
				claimed = true
				break
			}
		}
		if !claimed && fragment != "niega" && fragment != "no especificado" {
			res.Others = append(res.Others, fragment)
		}
	}
	return res
}

// ComorbidityCode is 2 for one listed comorbidity, 4 for two or more, else 0.
func ComorbidityCode(c Comorbidities) int {
	switch n := c.Count(); {
	case n == 1:
		return 2
	case n >= 2:
		return 4
	default:
		return 0
	}
}
