package classifier

import (
	"strings"

	"clinic-etl/internal/lexicon"
	"clinic-etl/internal/models"
)

// IdentificationType is 1 (adult document) from 18 years on, 2 below, and
// nil when the age is unknown.
func IdentificationType(age *int) *int {
	if age == nil {
		return nil
	}
	code := 2
	if *age >= 18 {
		code = 1
	}
	return &code
}

// Gender reads the observations cell: 1 female, 2 male. Unmarked records
// default to 1; the clinic population is mostly female.
func Gender(observations string) int {
	upper := strings.ToUpper(observations)
	switch {
	case strings.Contains(upper, "FEMENINO"):
		return 1
	case strings.Contains(upper, "MASCULINO"):
		return 2
	default:
		return 1
	}
}

var schoolingTypos = strings.NewReplacer(
	"ptofesional", "profesional",
	"bachillera", "bachillerato",
)

// Schooling codes the education level: 0 professional or postgraduate,
// 1 technical, 2 secondary, 3 primary, 4 illiterate. Unknown defaults to 2.
func Schooling(raw string) int {
	s := schoolingTypos.Replace(lexicon.Fold(strings.TrimSpace(raw)))

	// the cell sometimes carries the occupation instead of the level
	if strings.Contains(s, "ocupacion") {
		return 2
	}
	switch {
	case strings.Contains(s, "analfabeta"):
		return 4
	case strings.Contains(s, "primaria"):
		return 3
	case strings.Contains(s, "bachiller"):
		return 2
	case strings.Contains(s, "tecnico"), strings.Contains(s, "tecnologo"):
		return 1
	case strings.Contains(s, "profesional"):
		return 0
	case strings.Contains(s, "maestria"), strings.Contains(s, "posgrado"):
		return 0
	default:
		return 2
	}
}

// SPAConsumption codes psychoactive substance use: 0 none, 1 tobacco,
// 2 alcohol, 3 other substances. Tobacco wins over alcohol over substances.
func SPAConsumption(alcohol, tobacco, substances string) int {
	a, t, s := denies(alcohol), denies(tobacco), denies(substances)
	switch {
	case a && t && s:
		return 0
	case !t:
		return 1
	case !a:
		return 2
	case !s:
		return 3
	default:
		return 0
	}
}

func denies(v string) bool {
	v = strings.ToUpper(strings.Trim(strings.TrimSpace(v), `"`))
	switch v {
	case "NIEGA", strings.ToUpper(models.NotSpecified):
		return true
	}
	return false
}

// Hospitalization is 4 when the patient was hospitalized in the last six
// months, 0 otherwise.
func Hospitalization(raw string) int {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "no", strings.ToLower(models.NotSpecified):
		return 0
	default:
		return 4
	}
}
