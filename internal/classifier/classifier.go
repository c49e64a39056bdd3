// Package classifier maps extracted patient records onto the coded columns
// of the report.
package classifier

import (
	"strings"
	"time"

	"clinic-etl/internal/lexicon"
	"clinic-etl/internal/models"

	"go.uber.org/zap"
)

// Classifier assembles report rows.
type Classifier struct {
	lex *lexicon.Lexicon
	// fallbackRef is used when a record carries no consultation date.
	fallbackRef time.Time
	logger      *zap.Logger
}

// NewClassifier creates a Classifier. fallbackRef may be zero.
func NewClassifier(lex *lexicon.Lexicon, fallbackRef time.Time, logger *zap.Logger) *Classifier {
	return &Classifier{
		lex:         lex,
		fallbackRef: fallbackRef,
		logger:      logger,
	}
}

// Classify builds the coded row for one record.
func (c *Classifier) Classify(rec models.PatientRecord) models.ReportRow {
	row := models.ReportRow{
		Name:               strings.TrimSpace(rec.Name),
		IdentificationType: IdentificationType(rec.Age),
		Age:                rec.Age,
		Schooling:          Schooling(rec.Schooling),
		Gender:             Gender(rec.Observations),
		SPAConsumption:     SPAConsumption(rec.Alcohol, rec.Tobacco, rec.Substances),
		Hospitalization6m:  Hospitalization(rec.Hospitalization6m),
		DrugType:           1,
	}

	comorbidities := ClassifyComorbidities(rec.OtherDiagnosis, c.lex.DiseaseCategories)
	row.Diseases = comorbidities.Flags
	row.OtherDiseases = comorbidities.Others
	row.Comorbidities = ComorbidityCode(comorbidities)

	row.AppliesClinimetry = AppliesClinimetry(rec.ClinimetryType)
	row.DAS28, row.SLEDAI, row.ASDAS = ClinimetryBands(rec.ClinimetryType, rec.ClinimetryValue)

	treatment := c.treatmentText(rec.MainTreatment)
	reconciliation := c.treatmentText(rec.MedicationReconciliation)
	row.Polypharmacy = Polypharmacy(treatment, reconciliation)

	if ref, ok := c.reference(rec); ok {
		row.MedicationChange = MedicationChange(ExtractDates(treatment, ref), ref)
		row.BiologicJAKOnset = TreatmentOnset(treatment, ref, c.lex.OnsetBiologics(), BiologicOnsetBands)
		row.DMARDOnset = TreatmentOnset(treatment, ref, c.lex.OnsetDMARDs, DMARDOnsetBands)
	}

	row.BiologicAdherence = ClassAdherence(treatment, rec.Adherence, c.lex.Biologics)
	row.JAKAdherence = ClassAdherence(treatment, rec.Adherence, c.lex.JAKInhibitors)
	row.DMARDAdherence = ClassAdherence(treatment, rec.Adherence, c.lex.AdherenceDMARDs)
	row.OtherAdherence = AdherenceCode(rec.Adherence)

	row.OralDispensing, row.ParenteralDispensing = Dispensing(rec.Adherence, rec.Dispensation, treatment, c.lex.Parenteral)

	in := ClassifyInteractions(rec.DrugInteractions, c.lex.InteractionDrugs)
	row.Interactions = in.Present
	row.MajorInteractions = in.Major
	row.InteractionRelevance = in.Relevance
	row.InteractionMechanism = in.Mechanism
	row.InteractingMolecules = in.Molecules

	row.RAM = RAMFlag(rec.RAM)

	return row
}

// treatmentText normalizes a treatment field; sentinels become empty.
func (c *Classifier) treatmentText(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), models.NotSpecified) {
		return ""
	}
	return c.lex.NormalizeTreatment(s)
}

func (c *Classifier) reference(rec models.PatientRecord) (time.Time, bool) {
	if ref, ok := ParseReference(rec.ConsultDate); ok {
		return ref, true
	}
	if !c.fallbackRef.IsZero() {
		return c.fallbackRef, true
	}
	c.logger.Warn("No reference date for patient, date columns left at 0",
		zap.Int("patient_id", rec.ID),
		zap.String("consult_date", rec.ConsultDate),
	)
	return time.Time{}, false
}
