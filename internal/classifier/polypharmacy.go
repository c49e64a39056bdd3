package classifier

import (
	"regexp"
	"strings"
)

var medicationSplitRe = regexp.MustCompile(`[\n,]`)

// polypharmacyThreshold is the number of distinct drugs that counts as
// polypharmacy.
const polypharmacyThreshold = 5

// DistinctMedications counts the drugs listed across the given texts. A
// drug is identified by the first two words of its line so that
// "metotrexato 15 mg" and "metotrexato 15 mg semanal" count once.
func DistinctMedications(texts ...string) int {
	seen := make(map[string]bool)
	for _, text := range texts {
		for _, med := range medicationSplitRe.Split(text, -1) {
			words := strings.Fields(med)
			if len(words) == 0 {
				continue
			}
			if len(words) > 2 {
				words = words[:2]
			}
			seen[strings.Join(words, " ")] = true
		}
	}
	return len(seen)
}

// Polypharmacy is 4 from five distinct drugs on, else 0.
func Polypharmacy(texts ...string) int {
	if DistinctMedications(texts...) >= polypharmacyThreshold {
		return 4
	}
	return 0
}
