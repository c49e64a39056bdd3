package classifier

import (
	"strings"

	"clinic-etl/internal/lexicon"
)

// Adherence label values as reported by the Morisky-Green test.
const (
	LabelAdherent          = "adherente"
	LabelFullyAdherent     = "totalmente adherente"
	LabelPartiallyAdherent = "parcialmente adherente"
	LabelNonAdherent       = "no adherente"
)

// AdherenceCode maps the test label to 1 adherent, 3 partially adherent,
// 4 non-adherent and 0 not evaluable.
func AdherenceCode(label string) int {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case LabelAdherent, LabelFullyAdherent:
		return 1
	case LabelPartiallyAdherent:
		return 3
	case LabelNonAdherent:
		return 4
	default:
		return 0
	}
}

// ClassAdherence is AdherenceCode when the treatment names a drug of the
// class and 0 otherwise.
func ClassAdherence(treatment, label string, drugs []string) int {
	if !lexicon.ContainsAny(treatment, drugs) {
		return 0
	}
	return AdherenceCode(label)
}

// isAdherent reports whether the label is adherent or partially adherent.
func isAdherent(label string) bool {
	code := AdherenceCode(label)
	return code == 1 || code == 3
}
