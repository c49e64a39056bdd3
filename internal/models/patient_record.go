package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Sentinels written when a field is not present in the source text.
const (
	NotSpecified  = "No especificado"
	NotApplicable = "No aplica"
	NotIdentified = "No identificado"
	Denies        = "Niega"
)

// Dispensation classes derived from the evaluation text.
const (
	DispensationNone     = "no dispensacion"
	DispensationPartial  = "dispensacion parcial"
	DispensationComplete = "dispensacion completa"
)

// PatientRecord is everything extracted from one patient block of an
// interview workbook. JSON keys follow the records file consumed by classify.
type PatientRecord struct {
	ID          int    `json:"-"`
	SourceFile  string `json:"archivo,omitempty"`
	Name        string `json:"nombre"`
	ConsultDate string `json:"fecha_consulta,omitempty"`

	ClinimetryType  string `json:"clinimetria_tipo"`
	ClinimetryValue Score  `json:"clinimetria_valor"`
	Observations    string `json:"observaciones"`

	// objective cell
	OtherDiagnosis           string `json:"otro_diagnostico"`
	MainTreatment            string `json:"tratamiento_principal"`
	MedicationReconciliation string `json:"conciliacion_medicamentos"`
	Schooling                string `json:"nivel_escolaridad"`
	Alcohol                  string `json:"consumo_alcohol"`
	Tobacco                  string `json:"consumo_tabaco"`
	Substances               string `json:"consumo_sustancias"`
	Hospitalization6m        string `json:"hospitalizacion_ultimos_6_meses"`

	// evaluation cell
	Age              *int   `json:"edad"`
	Diagnosis        string `json:"diagnostico"`
	ICD10            string `json:"codigo_cie10"`
	RAM              string `json:"ram"`
	DrugInteractions string `json:"interacciones_farmacologicas"`
	Adherence        string `json:"adherencia_global"`
	Dispensation     string `json:"dispensacion"`
}

// Score is an optional clinimetry value. It decodes from a JSON number, a
// numeric string, or any other string (which leaves it unset).
type Score struct {
	Value float64
	Valid bool
}

// NewScore returns a set score.
func NewScore(v float64) Score {
	return Score{Value: v, Valid: true}
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return json.Marshal(NotApplicable)
	}
	return json.Marshal(s.Value)
}

func (s *Score) UnmarshalJSON(data []byte) error {
	*s = Score{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*s = NewScore(v)
	case string:
		if f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", "."), 64); err == nil {
			*s = NewScore(f)
		}
	}
	return nil
}

// RawBlock is the set of text cells that make up one patient block of an
// interview sheet, before any extraction.
type RawBlock struct {
	SourceFile   string
	Row          int // 0-based start row of the block
	Column       int // 0-based first column of the triplet
	Name         string
	Objective    string
	Observations string
	Evaluation   string
	Clinimetry   string
}
