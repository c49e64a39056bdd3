package classifier

import (
	"testing"

	"clinic-etl/internal/lexicon"
	"clinic-etl/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAdherenceCode(t *testing.T) {
	tests := map[string]int{
		"Adherente":              1,
		"Totalmente adherente":   1,
		"Parcialmente adherente": 3,
		" no adherente ":         4,
		models.NotIdentified:     0,
		"":                       0,
	}
	for label, want := range tests {
		assert.Equal(t, want, AdherenceCode(label), label)
	}
}

func TestClassAdherence(t *testing.T) {
	lex := lexicon.Default()
	assert.Equal(t, 3, ClassAdherence("etanercept 50 mg", "Parcialmente adherente", lex.Biologics))
	assert.Equal(t, 0, ClassAdherence("etanercept 50 mg", "Parcialmente adherente", lex.JAKInhibitors))
	assert.Equal(t, 4, ClassAdherence("Baricitinib 4 mg", "No adherente", lex.JAKInhibitors))
}

func TestDispensing(t *testing.T) {
	parenteral := lexicon.Default().Parenteral
	tests := []struct {
		name                 string
		label, dispensation  string
		treatment            string
		oral, parenteralCode int
	}{
		{"partial with biologic", "Parcialmente adherente", models.DispensationPartial, "etanercept 50 mg", 2, 1},
		{"partial oral only", "Adherente", models.DispensationPartial, "leflunomida 20 mg", 2, 0},
		{"complete", "Adherente", models.DispensationComplete, "etanercept 50 mg", 1, 0},
		{"none", "Totalmente adherente", models.DispensationNone, "leflunomida 20 mg", 3, 0},
		{"not identified", "Adherente", models.NotIdentified, "leflunomida 20 mg", 0, 0},
		{"non adherent", "No adherente", models.DispensationPartial, "etanercept 50 mg", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oral, par := Dispensing(tt.label, tt.dispensation, tt.treatment, parenteral)
			assert.Equal(t, tt.oral, oral)
			assert.Equal(t, tt.parenteralCode, par)
		})
	}
}

func TestClassifyInteractions(t *testing.T) {
	drugs := lexicon.Default().InteractionDrugs

	got := ClassifyInteractions("Interacciones farmacológicas significativas: Metotrexato - omeprazol", drugs)
	assert.Equal(t, Interactions{Present: 1, Major: 2, Relevance: 3, Mechanism: 1, Molecules: "Metotrexato"}, got)

	got = ClassifyInteractions("significativas: etanercept y metotrexato", drugs)
	assert.Equal(t, "Metotrexato; Etanercept", got.Molecules)

	got = ClassifyInteractions("significativa: omeprazol con clopidogrel", drugs)
	assert.Equal(t, Interactions{Present: 1, Major: 2, Relevance: 3, Mechanism: 2}, got)
}

func TestClassifyInteractions_None(t *testing.T) {
	drugs := lexicon.Default().InteractionDrugs
	for _, text := range []string{"significativas: ninguna", "significativas:", models.NotSpecified, ""} {
		assert.Equal(t, Interactions{}, ClassifyInteractions(text, drugs), text)
	}
}

func TestRAMFlag(t *testing.T) {
	for _, v := range []string{"", "niega", "Niega RAM", models.NotSpecified, "no", "Ninguna", "negativo"} {
		assert.Equal(t, 0, RAMFlag(v), v)
	}
	for _, v := range []string{"cefalea", "Rash con sulfasalazina", "si"} {
		assert.Equal(t, 1, RAMFlag(v), v)
	}
}

func TestPolypharmacy(t *testing.T) {
	treatment := "metotrexato 15 mg\nácido fólico 5 mg\nprednisolona 5 mg"
	reconciliation := "losartán 50 mg, levotiroxina 50 mcg, omeprazol 20 mg"

	assert.Equal(t, 6, DistinctMedications(treatment, reconciliation))
	assert.Equal(t, 4, Polypharmacy(treatment, reconciliation))

	// repeated drugs count once
	assert.Equal(t, 3, DistinctMedications(treatment, "metotrexato 15 mg semanal"))
	assert.Equal(t, 0, Polypharmacy(treatment, "metotrexato 15 mg semanal"))
	assert.Equal(t, 0, DistinctMedications("", "\n, "))
}
