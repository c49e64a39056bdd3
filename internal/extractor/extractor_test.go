package extractor

import (
	"testing"

	"clinic-etl/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const evaluationText = "Paciente de 54 años con diagnóstico de artritis reumatoide (M069), en seguimiento.\n" +
	"RAM: niega\n" +
	"Interacciones farmacológicas significativas: metotrexato - omeprazol\n" +
	"Test de Morisky: parcialmente adherente. La EPS no ha entregado el medicamento, demora en la entrega."

const objectiveText = "Otros diagnósticos: HTA, hipotiroidismo\n  diabetes tipo 2\n\n" +
	"Tratamiento principal: Metotrexato 15 mg semanal\nAdalimumab 40 mg SC cada 15 días\n\n" +
	"Conciliación medicamentosa: Losartán 50 mg, Levotiroxina 50 mcg\n" +
	"Nivel de escolaridad: Bachiller\n" +
	"Consumo de alcohol: Niega\n" +
	"Consumo de tabaco: Niega\n" +
	"Consumo de sustancias psicoactivas: Niega\n" +
	"Hospitalización en los últimos 6 meses: No"

func TestExtractEvaluation(t *testing.T) {
	ev := ExtractEvaluation(evaluationText)

	require.NotNil(t, ev.Age)
	assert.Equal(t, 54, *ev.Age)
	assert.Equal(t, "artritis reumatoide", ev.Diagnosis)
	assert.Equal(t, "M069", ev.ICD10)
	assert.Equal(t, "niega", ev.RAM)
	assert.Equal(t, "significativas: metotrexato - omeprazol", ev.DrugInteractions)
	assert.Equal(t, "Parcialmente adherente", ev.Adherence)
	assert.Equal(t, models.DispensationPartial, ev.Dispensation)
}

func TestExtractEvaluation_Empty(t *testing.T) {
	ev := ExtractEvaluation("   ")
	assert.Nil(t, ev.Age)
	assert.Equal(t, models.NotSpecified, ev.Diagnosis)
	assert.Equal(t, models.NotSpecified, ev.ICD10)
	assert.Equal(t, models.NotSpecified, ev.RAM)
	assert.Equal(t, models.NotSpecified, ev.DrugInteractions)
	assert.Equal(t, models.NotSpecified, ev.Adherence)
	assert.Equal(t, models.NotIdentified, ev.Dispensation)
}

func TestExtractEvaluation_Dispensation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"not dispensed", "Paciente no adherente, no ha recibido el medicamento", models.DispensationNone},
		{"complete", "Test de Morisky: adherente.", models.DispensationComplete},
		{"misspelled partial", "Parcialmnte adherente, la IPS tiene pendiente de entrega el biologico", models.DispensationPartial},
		{"partial without insurer", "parcialmente adherente por demora", models.NotIdentified},
		{"no label", "Sin datos de adherencia", models.NotIdentified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEvaluation(tt.text).Dispensation)
		})
	}
}

func TestExtractEvaluation_AdherenceLabels(t *testing.T) {
	assert.Equal(t, "Totalmente adherente", ExtractEvaluation("TOTALMENTE ADHERENTE").Adherence)
	assert.Equal(t, "No adherente", ExtractEvaluation("Morisky: No adherente").Adherence)
	assert.Equal(t, "Adherente", ExtractEvaluation("Morisky: adherente").Adherence)
}

func TestExtractEvaluation_RAMNeedsWordBoundary(t *testing.T) {
	ev := ExtractEvaluation("Ingresa al programa: educativo")
	assert.Equal(t, models.NotSpecified, ev.RAM)

	ev = ExtractEvaluation("RAM - cefalea con leflunomida")
	assert.Equal(t, "cefalea", ev.RAM)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 100, Similarity("parcialmente", "parcialmente"))
	assert.GreaterOrEqual(t, Similarity("parcialmnte", "parcialmente"), partialWordThreshold)
	assert.Less(t, Similarity("parcial", "parcialmente"), partialWordThreshold)
	assert.Equal(t, 100, Similarity("", ""))
}

func TestExtractObjective(t *testing.T) {
	obj := ExtractObjective(objectiveText)

	assert.Equal(t, "HTA, hipotiroidismo diabetes tipo 2", obj.OtherDiagnosis)
	assert.Equal(t, "Metotrexato 15 mg semanal\nAdalimumab 40 mg SC cada 15 días", obj.MainTreatment)
	assert.Equal(t, "Losartán 50 mg, Levotiroxina 50 mcg", obj.MedicationReconciliation)
	assert.Equal(t, "Bachiller", obj.Schooling)
	assert.Equal(t, "Niega", obj.Alcohol)
	assert.Equal(t, "Niega", obj.Tobacco)
	assert.Equal(t, "Niega", obj.Substances)
	assert.Equal(t, "No", obj.Hospitalization6m)
}

func TestExtractObjective_DeniedAndMissing(t *testing.T) {
	obj := ExtractObjective("otros diagnosticos - niega\n\nConsumo de tabaco:")
	assert.Equal(t, models.Denies, obj.OtherDiagnosis)
	assert.Equal(t, models.NotSpecified, obj.Tobacco)
	assert.Equal(t, models.NotSpecified, obj.MainTreatment)
	assert.Equal(t, models.NotSpecified, obj.Hospitalization6m)
}

func TestExtractClinimetry(t *testing.T) {
	tests := []struct {
		text      string
		wantType  string
		wantValue float64
	}{
		{"DAS28-PCR: 3,45", "DAS28 PCR", 3.45},
		{"das 28 vsg 5.2", "DAS28 VSG", 5.2},
		{"DAS28 2.1", "DAS28 NO ESPECIFICADO", 2.1},
		{"SLEDAI-2K: 6", "SLEDAI", 6},
		{"SLEDAI 4", "SLEDAI", 4},
		{"ASDAS-PCR 2.4", "ASDAS PCR", 2.4},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			c, ok := ExtractClinimetry(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, c.Type)
			assert.InDelta(t, tt.wantValue, c.Value, 1e-9)
		})
	}

	_, ok := ExtractClinimetry("Sin clinimetría registrada")
	assert.False(t, ok)
	_, ok = ExtractClinimetry("")
	assert.False(t, ok)
}

func TestConsultDateFromFilename(t *testing.T) {
	assert.Equal(t, "26-03-2025", ConsultDateFromFilename(`ENTREVISTAS\TUNJA-26-03-2025.xlsx`))
	assert.Equal(t, "02-04-2025", ConsultDateFromFilename("/data/in/DUITAMA-02-04-2025.xlsx"))
	assert.Equal(t, "", ConsultDateFromFilename("entrevistas.xlsx"))
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	rec := e.Extract(3, models.RawBlock{
		SourceFile:   "TUNJA-26-03-2025.xlsx",
		Name:         "  MARIA PEREZ ",
		Objective:    objectiveText,
		Observations: "Sexo: FEMENINO",
		Evaluation:   evaluationText,
		Clinimetry:   "DAS28 PCR 4.1",
	})

	assert.Equal(t, 3, rec.ID)
	assert.Equal(t, "MARIA PEREZ", rec.Name)
	assert.Equal(t, "26-03-2025", rec.ConsultDate)
	assert.Equal(t, "DAS28 PCR", rec.ClinimetryType)
	assert.Equal(t, models.NewScore(4.1), rec.ClinimetryValue)
	assert.Equal(t, "Bachiller", rec.Schooling)
	require.NotNil(t, rec.Age)
	assert.Equal(t, 54, *rec.Age)
	assert.Equal(t, models.DispensationPartial, rec.Dispensation)
}

func TestExtractor_ExtractWithoutClinimetry(t *testing.T) {
	rec := NewExtractor(zap.NewNop()).Extract(0, models.RawBlock{Name: "JUAN"})
	assert.Equal(t, models.NotApplicable, rec.ClinimetryType)
	assert.False(t, rec.ClinimetryValue.Valid)
	assert.Equal(t, "", rec.ConsultDate)
}
