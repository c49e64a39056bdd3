package extractor

import (
	"regexp"
	"strings"

	"clinic-etl/internal/models"
)

var (
	otherDiagnosisHeaderRe = regexp.MustCompile(`(?i)Otros?\s*diagn[oó]sticos?\s*[:\-]?\s*`)
	mainTreatmentHeaderRe  = regexp.MustCompile(`(?i)Tratamiento\s+principal\s*[:\-]?\s*`)
	reconciliationHeaderRe = regexp.MustCompile(`(?i)Conciliaci[oó]n\s+(?:de\s+medicamentos|medicamentosa)\s*[:\-]?\s*`)

	// A section ends at a blank line or at a line that opens with a short
	// "Label:" heading.
	sectionEndRe = regexp.MustCompile(`\n[ \t\r]*\n|\n\s*\p{L}[\p{L}\p{N}_ ]{0,40}:`)

	schoolingRe       = regexp.MustCompile(`(?i)Nivel\s+de\s+escolaridad\s*[:\-]?[ \t]*(.*)`)
	alcoholRe         = regexp.MustCompile(`(?i)Consumo\s+de\s+alcohol\s*[:\-]?[ \t]*(.*)`)
	tobaccoRe         = regexp.MustCompile(`(?i)Consumo\s+de\s+tabaco\s*[:\-]?[ \t]*(.*)`)
	substancesRe      = regexp.MustCompile(`(?i)Consumo\s+de\s+sustancias?\s+psicoactivas\s*[:\-]?[ \t]*(.*)`)
	hospitalizationRe = regexp.MustCompile(`(?i)Hospitalizaci[oó]n\s*(?:en\s*los\s*|los\s*)?[uú]ltimos\s*6\s*meses\s*[:\-]?[ \t]*(.*)`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Objective holds the fields found in the objective (history) cell.
type Objective struct {
	OtherDiagnosis           string
	MainTreatment            string
	MedicationReconciliation string
	Schooling                string
	Alcohol                  string
	Tobacco                  string
	Substances               string
	Hospitalization6m        string
}

// ExtractObjective pulls the history fields out of text.
func ExtractObjective(text string) Objective {
	obj := Objective{
		OtherDiagnosis:           models.NotSpecified,
		MainTreatment:            models.NotSpecified,
		MedicationReconciliation: models.NotSpecified,
		Schooling:                models.NotSpecified,
		Alcohol:                  models.NotSpecified,
		Tobacco:                  models.NotSpecified,
		Substances:               models.NotSpecified,
		Hospitalization6m:        models.NotSpecified,
	}
	if strings.TrimSpace(text) == "" {
		return obj
	}

	if s, ok := section(text, otherDiagnosisHeaderRe); ok {
		if strings.EqualFold(s, "niega") {
			obj.OtherDiagnosis = models.Denies
		} else {
			obj.OtherDiagnosis = whitespaceRe.ReplaceAllString(s, " ")
		}
	}
	if s, ok := section(text, mainTreatmentHeaderRe); ok {
		obj.MainTreatment = s
	}
	if s, ok := section(text, reconciliationHeaderRe); ok {
		obj.MedicationReconciliation = s
	}

	obj.Schooling = lineValue(text, schoolingRe)
	obj.Alcohol = lineValue(text, alcoholRe)
	obj.Tobacco = lineValue(text, tobaccoRe)
	obj.Substances = lineValue(text, substancesRe)
	obj.Hospitalization6m = lineValue(text, hospitalizationRe)

	return obj
}

// section returns the text that follows header up to the end of the section.
func section(text string, header *regexp.Regexp) (string, bool) {
	loc := header.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]
	if end := sectionEndRe.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}
	return strings.TrimSpace(rest), true
}

// lineValue returns the rest of the line after a labelled field.
func lineValue(text string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return models.NotSpecified
	}
	v := strings.TrimSpace(m[1])
	if v == "" {
		return models.NotSpecified
	}
	return v
}
