package classifier

import (
	"strings"

	"clinic-etl/internal/models"
)

// AppliesClinimetry is 4 when a score was recorded, 0 otherwise.
func AppliesClinimetry(clinimetryType string) int {
	t := strings.ToLower(strings.TrimSpace(clinimetryType))
	if t == "" || t == strings.ToLower(models.NotApplicable) {
		return 0
	}
	return 4
}

// ClinimetryBands returns the DAS28, SLEDAI and ASDAS activity codes. Only
// the column matching the score type is non-zero.
func ClinimetryBands(clinimetryType string, score models.Score) (das28, sledai, asdas int) {
	if !score.Valid {
		return 0, 0, 0
	}
	v := score.Value
	t := strings.ToLower(clinimetryType)
	switch {
	case strings.Contains(t, "das28"):
		das28 = band(v, []threshold{{2.6, 1}, {3.2, 2}, {5.1, 3}}, 4)
	case strings.Contains(t, "asdas"):
		asdas = band(v, []threshold{{1.3, 1}, {2.1, 2}, {3.5, 3}}, 4)
	case strings.Contains(t, "sledai"):
		switch {
		case v == 0:
			sledai = 0
		case v <= 5:
			sledai = 1
		case v <= 10:
			sledai = 2
		case v <= 19:
			sledai = 3
		default:
			sledai = 4
		}
	}
	return das28, sledai, asdas
}

// threshold maps values strictly below Below to Code.
type threshold struct {
	Below float64
	Code  int
}

func band(v float64, thresholds []threshold, above int) int {
	for _, t := range thresholds {
		if v < t.Below {
			return t.Code
		}
	}
	return above
}
