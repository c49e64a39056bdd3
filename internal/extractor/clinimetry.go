package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	das28Re  = regexp.MustCompile(`(?i)\b(?:DAS|AS)\s*[-/]?\s*28\s*[-/]?\s*(PCR|VSG)?\s*[:\-]?\s*([0-9]+(?:[.,][0-9]+)?)`)
	sledaiRe = regexp.MustCompile(`(?i)\bSLEDAI(?:\s*-?\s*2K)?\s*[:\-]?\s*([0-9]+(?:[.,][0-9]+)?)`)
	asdasRe  = regexp.MustCompile(`(?i)\bASDAS\s*[-/]?\s*(PCR|VSG)?\s*[:\-]?\s*([0-9]+(?:[.,][0-9]+)?)`)
)

const unspecifiedSubtype = "NO ESPECIFICADO"

// Clinimetry is a disease-activity score found in a clinimetry cell.
type Clinimetry struct {
	// Type is "DAS28 <subtype>", "SLEDAI" or "ASDAS <subtype>".
	Type  string
	Value float64
}

// ExtractClinimetry returns the first score found, checking DAS28, SLEDAI
// and ASDAS in that order.
func ExtractClinimetry(text string) (Clinimetry, bool) {
	if strings.TrimSpace(text) == "" {
		return Clinimetry{}, false
	}

	if m := das28Re.FindStringSubmatch(text); m != nil {
		if v, ok := parseDecimal(m[2]); ok {
			return Clinimetry{Type: "DAS28 " + subtype(m[1]), Value: v}, true
		}
	}
	if m := sledaiRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseDecimal(m[1]); ok {
			return Clinimetry{Type: "SLEDAI", Value: v}, true
		}
	}
	if m := asdasRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseDecimal(m[2]); ok {
			return Clinimetry{Type: "ASDAS " + subtype(m[1]), Value: v}, true
		}
	}
	return Clinimetry{}, false
}

func subtype(s string) string {
	if s == "" {
		return unspecifiedSubtype
	}
	return strings.ToUpper(s)
}

func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
