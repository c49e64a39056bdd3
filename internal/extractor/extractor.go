// Package extractor turns the free-text cells of a patient block into a
// flat PatientRecord. Every field has a sentinel for "not found"; nothing in
// here fails.
package extractor

import (
	"regexp"
	"strings"

	"clinic-etl/internal/models"

	"go.uber.org/zap"
)

var consultDateRe = regexp.MustCompile(`-(\d{2})-(\d{2})-(\d{4})\.`)

// Extractor builds patient records from raw blocks.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract converts one block into a record with the given id.
func (e *Extractor) Extract(id int, block models.RawBlock) models.PatientRecord {
	rec := models.PatientRecord{
		ID:             id,
		SourceFile:     block.SourceFile,
		Name:           strings.TrimSpace(block.Name),
		ConsultDate:    ConsultDateFromFilename(block.SourceFile),
		Observations:   block.Observations,
		ClinimetryType: models.NotApplicable,
	}

	if c, ok := ExtractClinimetry(block.Clinimetry); ok {
		rec.ClinimetryType = c.Type
		rec.ClinimetryValue = models.NewScore(c.Value)
	}

	obj := ExtractObjective(block.Objective)
	rec.OtherDiagnosis = obj.OtherDiagnosis
	rec.MainTreatment = obj.MainTreatment
	rec.MedicationReconciliation = obj.MedicationReconciliation
	rec.Schooling = obj.Schooling
	rec.Alcohol = obj.Alcohol
	rec.Tobacco = obj.Tobacco
	rec.Substances = obj.Substances
	rec.Hospitalization6m = obj.Hospitalization6m

	ev := ExtractEvaluation(block.Evaluation)
	rec.Age = ev.Age
	rec.Diagnosis = ev.Diagnosis
	rec.ICD10 = ev.ICD10
	rec.RAM = ev.RAM
	rec.DrugInteractions = ev.DrugInteractions
	rec.Adherence = ev.Adherence
	rec.Dispensation = ev.Dispensation

	if rec.ConsultDate == "" {
		e.logger.Warn("No consultation date in source file name",
			zap.String("source_file", block.SourceFile),
			zap.Int("patient_id", id),
		)
	}
	e.logger.Debug("Extracted patient record",
		zap.Int("patient_id", id),
		zap.Int("row", block.Row),
		zap.Int("column", block.Column),
		zap.String("clinimetry_type", rec.ClinimetryType),
		zap.String("adherence", rec.Adherence),
		zap.String("dispensation", rec.Dispensation),
	)

	return rec
}

// ConsultDateFromFilename reads the "-dd-mm-yyyy." suffix of an interview
// workbook name (e.g. "TUNJA-26-03-2025.xlsx") and returns "dd-mm-yyyy",
// or "" if the name carries no date.
func ConsultDateFromFilename(path string) string {
	name := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		name = path[i+1:]
	}
	m := consultDateRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1] + "-" + m[2] + "-" + m[3]
}
