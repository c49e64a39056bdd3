package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"clinic-etl/internal/models"

	"github.com/agnivade/levenshtein"
)

var (
	ageRe          = regexp.MustCompile(`(?i)Paciente\s+de\s+(\d+)\s+años`)
	diagnosisRe    = regexp.MustCompile(`(?i)diagn[oó]stico\s+de\s+(.*?)(?:\s+\(|,|\n|$)`)
	icd10Re        = regexp.MustCompile(`\(([A-Z]\d{2,4})\)`)
	ramRe          = regexp.MustCompile(`(?i)\bRAM\s*[:\-]?\s*([\p{L}\p{N}_]+)`)
	interactionsRe = regexp.MustCompile(`(?i)Interacciones\s+farmacol[oó]gicas[:\-]?\s*([^\n]*)`)
	adherenceRe    = regexp.MustCompile(`(?i)\b(totalmente adherente|no adherente|parcialmente adherente|adherente)\b`)

	insurerRe         = regexp.MustCompile(`\b(eps|epps|ep\s|ips|ipss|ip\s)\b`)
	deliveryProblemRe = regexp.MustCompile(`no\s+entregado|no\s+dispensado|no\s+recibido|demora|pendiente\s+de\s+entrega|falta\s+de\s+medicamento`)
	notDispensedRe    = regexp.MustCompile(`no\s+adh[eé]rente.*?(no\s+ha\s+recibido|no\s+entregado|no\s+dispensado|no\s+dispensaron)`)
)

// partialWordThreshold is the minimum similarity (0-100) for a word to be
// read as a misspelling of "parcialmente".
const partialWordThreshold = 85

// Evaluation holds the fields found in the analysis/evaluation cell.
type Evaluation struct {
	Age              *int
	Diagnosis        string
	ICD10            string
	RAM              string
	DrugInteractions string
	Adherence        string
	Dispensation     string
}

// ExtractEvaluation pulls the evaluation fields out of text. Fields that are
// not present take their sentinel values.
func ExtractEvaluation(text string) Evaluation {
	ev := Evaluation{
		Diagnosis:        models.NotSpecified,
		ICD10:            models.NotSpecified,
		RAM:              models.NotSpecified,
		DrugInteractions: models.NotSpecified,
		Adherence:        models.NotSpecified,
		Dispensation:     models.NotIdentified,
	}
	if strings.TrimSpace(text) == "" {
		return ev
	}

	if m := ageRe.FindStringSubmatch(text); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil {
			ev.Age = &age
		}
	}
	if m := diagnosisRe.FindStringSubmatch(text); m != nil {
		ev.Diagnosis = strings.TrimSpace(m[1])
	}
	if m := icd10Re.FindStringSubmatch(text); m != nil {
		ev.ICD10 = m[1]
	}
	if m := ramRe.FindStringSubmatch(text); m != nil {
		ev.RAM = strings.TrimSpace(m[1])
	}
	if m := interactionsRe.FindStringSubmatch(text); m != nil {
		ev.DrugInteractions = strings.TrimSpace(m[1])
	}
	if m := adherenceRe.FindStringSubmatch(text); m != nil {
		ev.Adherence = capitalize(strings.TrimSpace(m[1]))
	}
	ev.Dispensation = classifyDispensation(text)

	return ev
}

func classifyDispensation(text string) string {
	lower := strings.ToLower(text)

	partial := false
	for _, w := range strings.Fields(lower) {
		if Similarity(w, "parcialmente") >= partialWordThreshold {
			partial = true
			break
		}
	}
	mentionsInsurer := insurerRe.MatchString(lower)
	deliveryProblem := deliveryProblemRe.MatchString(lower)

	switch {
	case notDispensedRe.MatchString(lower):
		return models.DispensationNone
	case partial && mentionsInsurer && deliveryProblem:
		return models.DispensationPartial
	case strings.Contains(lower, "adherente") && !deliveryProblem:
		return models.DispensationComplete
	default:
		return models.NotIdentified
	}
}

// Similarity scores two strings from 0 to 100 by edit distance relative to
// the longer one.
func Similarity(a, b string) int {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(d)/float64(longest))))
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
