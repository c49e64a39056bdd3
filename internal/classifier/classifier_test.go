package classifier

import (
	"testing"
	"time"

	"clinic-etl/internal/lexicon"
	"clinic-etl/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleRecord() models.PatientRecord {
	age := 54
	return models.PatientRecord{
		ID:                       1,
		SourceFile:               "26-03-2025.xlsx",
		Name:                     " MARIA PEREZ ",
		ConsultDate:              "26-03-2025",
		ClinimetryType:           "DAS28 PCR",
		ClinimetryValue:          models.NewScore(4.1),
		Observations:             "Sexo: FEMENINO",
		OtherDiagnosis:           "HTA, hipotiroidismo diabetes tipo 2",
		MainTreatment:            "Metotrexato 15 mg semanal desde 01/2025\nAdalimumab 40 mg SC",
		MedicationReconciliation: "Losartán 50 mg, Levotiroxina 50 mcg",
		Schooling:                "Bachiller",
		Alcohol:                  "Niega",
		Tobacco:                  "Niega",
		Substances:               "Niega",
		Hospitalization6m:        "No",
		Age:                      &age,
		Diagnosis:                "Artritis reumatoide",
		RAM:                      "niega",
		DrugInteractions:         "significativas: metotrexato - omeprazol",
		Adherence:                "Parcialmente adherente",
		Dispensation:             models.DispensationPartial,
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier(lexicon.Default(), time.Time{}, zap.NewNop())
	row := c.Classify(sampleRecord())

	assert.Equal(t, "MARIA PEREZ", row.Name)
	require.NotNil(t, row.IdentificationType)
	assert.Equal(t, 1, *row.IdentificationType)
	require.NotNil(t, row.Age)
	assert.Equal(t, 54, *row.Age)
	assert.Equal(t, 2, row.Schooling)
	assert.Equal(t, 1, row.Gender)
	assert.Equal(t, 0, row.SPAConsumption)
	assert.Equal(t, 0, row.Hospitalization6m)

	assert.Equal(t, 1, row.Diseases[models.ColCardiovascular])
	assert.Equal(t, 1, row.Diseases[models.ColDiabetes])
	assert.Equal(t, 0, row.Diseases[models.ColThyroid])
	assert.Empty(t, row.OtherDiseases)
	assert.Equal(t, 4, row.Comorbidities)

	assert.Equal(t, 4, row.AppliesClinimetry)
	assert.Equal(t, 3, row.DAS28)
	assert.Equal(t, 0, row.SLEDAI)
	assert.Equal(t, 0, row.ASDAS)

	assert.Equal(t, 0, row.Polypharmacy)
	assert.Equal(t, 4, row.MedicationChange)
	assert.Equal(t, 1, row.BiologicJAKOnset)
	assert.Equal(t, 4, row.DMARDOnset)

	assert.Equal(t, 3, row.BiologicAdherence)
	assert.Equal(t, 0, row.JAKAdherence)
	assert.Equal(t, 3, row.DMARDAdherence)
	assert.Equal(t, 3, row.OtherAdherence)
	assert.Equal(t, 2, row.OralDispensing)
	assert.Equal(t, 1, row.ParenteralDispensing)

	assert.Equal(t, 1, row.Interactions)
	assert.Equal(t, 2, row.MajorInteractions)
	assert.Equal(t, 3, row.InteractionRelevance)
	assert.Equal(t, 1, row.InteractionMechanism)
	assert.Equal(t, "Metotrexato", row.InteractingMolecules)
	assert.Equal(t, 1, row.DrugType)
	assert.Equal(t, 0, row.RAM)

	assert.Len(t, row.Cells(), len(models.ReportColumns))
}

func TestClassify_NoReferenceDate(t *testing.T) {
	rec := sampleRecord()
	rec.ConsultDate = models.NotSpecified

	c := NewClassifier(lexicon.Default(), time.Time{}, zap.NewNop())
	row := c.Classify(rec)
	assert.Equal(t, 0, row.MedicationChange)
	assert.Equal(t, 0, row.BiologicJAKOnset)
	assert.Equal(t, 0, row.DMARDOnset)

	// a fallback reference keeps the date columns
	c = NewClassifier(lexicon.Default(), date(2025, time.March, 26), zap.NewNop())
	row = c.Classify(rec)
	assert.Equal(t, 4, row.MedicationChange)
	assert.Equal(t, 4, row.DMARDOnset)
}

func TestClassify_SentinelTreatment(t *testing.T) {
	rec := sampleRecord()
	rec.MainTreatment = models.NotSpecified
	rec.MedicationReconciliation = models.NotSpecified
	rec.RAM = "Rash"

	c := NewClassifier(lexicon.Default(), time.Time{}, zap.NewNop())
	row := c.Classify(rec)
	assert.Equal(t, 0, row.Polypharmacy)
	assert.Equal(t, 0, row.MedicationChange)
	assert.Equal(t, 0, row.BiologicAdherence)
	assert.Equal(t, 0, row.ParenteralDispensing)
	assert.Equal(t, 1, row.RAM)
}

func TestClassify_VitaminAlias(t *testing.T) {
	c := NewClassifier(lexicon.Default(), time.Time{}, zap.NewNop())
	assert.Equal(t, "vitamina d 1000 ui", c.treatmentText("Vita D 1000 UI"))
	assert.Equal(t, "", c.treatmentText(" no especificado "))
}
