package models

import "strings"

// ReportRow is one coded output row. Fields map one-to-one onto
// ReportColumns; Cells renders them in that order.
type ReportRow struct {
	Name               string
	IdentificationType *int
	Age                *int
	Schooling          int
	Gender             int
	Pregnancy          int
	SPAConsumption     int
	SPAInteraction     int
	MentalDisorders    int
	PatientCare        int
	Hospitalization6m  int

	// Diseases holds one flag per DiseaseColumns entry.
	Diseases          map[string]int
	OtherDiseases     []string
	Comorbidities     int
	AppliesClinimetry int
	DAS28             int
	SLEDAI            int
	ASDAS             int
	Polypharmacy      int

	MedicationChange     int
	BiologicJAKOnset     int
	DMARDOnset           int
	BiologicAdherence    int
	JAKAdherence         int
	DMARDAdherence       int
	OtherAdherence       int
	ParenteralDispensing int
	OralDispensing       int

	Interactions         int
	MajorInteractions    int
	InteractionRelevance int
	InteractionMechanism int
	DrugType             int
	InteractingMolecules string

	RAM int
}

// Cells returns the row values in ReportColumns order. Optional numbers
// render as nil (empty cell); empty free-text lists render as 0.
func (r *ReportRow) Cells() []any {
	cells := []any{
		r.Name,
		intOrNil(r.IdentificationType),
		intOrNil(r.Age),
		r.Schooling,
		r.Gender,
		r.Pregnancy,
		r.SPAConsumption,
		r.SPAInteraction,
		r.MentalDisorders,
		r.PatientCare,
		r.Hospitalization6m,
	}
	for _, col := range DiseaseColumns {
		cells = append(cells, r.Diseases[col])
	}

	others := 0
	var othersText any = 0
	if len(r.OtherDiseases) > 0 {
		others = 1
		othersText = strings.Join(r.OtherDiseases, ", ")
	}
	var molecules any = 0
	if r.InteractingMolecules != "" {
		molecules = r.InteractingMolecules
	}

	cells = append(cells,
		others,
		othersText,
		r.Comorbidities,
		r.AppliesClinimetry,
		r.DAS28,
		r.SLEDAI,
		r.ASDAS,
		r.Polypharmacy,
		r.MedicationChange,
		r.BiologicJAKOnset,
		r.DMARDOnset,
		r.BiologicAdherence,
		r.JAKAdherence,
		r.DMARDAdherence,
		r.OtherAdherence,
		r.ParenteralDispensing,
		r.OralDispensing,
		r.Interactions,
		r.MajorInteractions,
		r.InteractionRelevance,
		r.InteractionMechanism,
		r.DrugType,
		molecules,
		r.RAM,
		r.RAM,
	)
	for range RAMDetailColumns {
		if r.RAM == 0 {
			cells = append(cells, 0)
		} else {
			cells = append(cells, nil)
		}
	}
	return cells
}

// Map returns the row keyed by column name.
func (r *ReportRow) Map() map[string]any {
	cells := r.Cells()
	m := make(map[string]any, len(cells))
	for i, col := range ReportColumns {
		m[col] = cells[i]
	}
	return m
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
