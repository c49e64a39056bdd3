package classifier

import (
	"strings"

	"clinic-etl/internal/lexicon"
	"clinic-etl/internal/models"
)

// Dispensing returns the oral and parenteral dispensation codes. They are
// only evaluated for adherent or partially adherent patients: oral is 1 for
// complete, 2 for partial and 3 for no dispensation; parenteral is 1 when a
// partial dispensation involves a parenteral drug.
func Dispensing(label, dispensation, treatment string, parenteralDrugs []string) (oral, parenteral int) {
	if !isAdherent(label) {
		return 0, 0
	}
	d := strings.ToLower(dispensation)
	switch {
	case strings.Contains(d, models.DispensationPartial):
		oral = 2
		if lexicon.ContainsAny(treatment, parenteralDrugs) {
			parenteral = 1
		}
	case strings.Contains(d, models.DispensationComplete):
		oral = 1
	case strings.Contains(d, models.DispensationNone):
		oral = 3
	}
	return oral, parenteral
}
