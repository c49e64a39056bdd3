package classifier

import (
	"strings"

	"clinic-etl/internal/lexicon"
	"clinic-etl/internal/models"
)

var ramNegations = map[string]bool{
	"no":       true,
	"ninguna":  true,
	"ninguno":  true,
	"negativo": true,
	"negativa": true,
}

// RAMFlag is 1 when an adverse drug reaction was reported.
func RAMFlag(ram string) int {
	v := lexicon.Fold(strings.TrimSpace(ram))
	if v == "" || v == lexicon.Fold(models.NotSpecified) || strings.Contains(v, "niega") || ramNegations[v] {
		return 0
	}
	return 1
}
