package classifier

import (
	"testing"

	"clinic-etl/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAppliesClinimetry(t *testing.T) {
	assert.Equal(t, 0, AppliesClinimetry(models.NotApplicable))
	assert.Equal(t, 0, AppliesClinimetry(""))
	assert.Equal(t, 4, AppliesClinimetry("SLEDAI"))
}

func TestClinimetryBands(t *testing.T) {
	tests := []struct {
		typ                  string
		value                float64
		das28, sledai, asdas int
	}{
		{"DAS28 PCR", 2.5, 1, 0, 0},
		{"DAS28 PCR", 2.6, 2, 0, 0},
		{"DAS28 VSG", 3.2, 3, 0, 0},
		{"DAS28 NO ESPECIFICADO", 5.0, 3, 0, 0},
		{"DAS28 PCR", 5.1, 4, 0, 0},
		{"SLEDAI", 0, 0, 0, 0},
		{"SLEDAI", 5, 0, 1, 0},
		{"SLEDAI", 6, 0, 2, 0},
		{"SLEDAI", 10, 0, 2, 0},
		{"SLEDAI", 19, 0, 3, 0},
		{"SLEDAI", 20, 0, 4, 0},
		{"ASDAS PCR", 1.2, 0, 0, 1},
		{"ASDAS PCR", 2.0, 0, 0, 2},
		{"ASDAS VSG", 3.4, 0, 0, 3},
		{"ASDAS NO ESPECIFICADO", 3.5, 0, 0, 4},
	}
	for _, tt := range tests {
		d, s, a := ClinimetryBands(tt.typ, models.NewScore(tt.value))
		assert.Equal(t, tt.das28, d, "%s %v", tt.typ, tt.value)
		assert.Equal(t, tt.sledai, s, "%s %v", tt.typ, tt.value)
		assert.Equal(t, tt.asdas, a, "%s %v", tt.typ, tt.value)
	}
}

func TestClinimetryBands_NoScore(t *testing.T) {
	d, s, a := ClinimetryBands("DAS28 PCR", models.Score{})
	assert.Zero(t, d+s+a)

	d, s, a = ClinimetryBands(models.NotApplicable, models.NewScore(7))
	assert.Zero(t, d+s+a)
}
