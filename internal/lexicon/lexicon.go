// Package lexicon holds the keyword and drug tables the classifiers match
// against. The built-in tables can be overlaid with a YAML file so the
// pharmacy team can add brand names without a release.
package lexicon

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"clinic-etl/internal/models"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Category is one comorbidity column and the keywords that select it.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Lexicon is the full set of lookup tables.
type Lexicon struct {
	DiseaseCategories []Category `yaml:"disease_categories"`
	Biologics         []string   `yaml:"biologics"`
	JAKInhibitors     []string   `yaml:"jak_inhibitors"`
	OnsetDMARDs       []string   `yaml:"onset_dmards"`
	AdherenceDMARDs   []string   `yaml:"adherence_dmards"`
	Parenteral        []string   `yaml:"parenteral"`
	InteractionDrugs  []string   `yaml:"interaction_drugs"`
	// Aliases rewrite shorthand in treatment text before matching.
	Aliases map[string]string `yaml:"aliases"`
}

// Default returns a fresh copy of the built-in tables.
func Default() *Lexicon {
	return &Lexicon{
		DiseaseCategories: []Category{
			{Name: models.ColCardiovascular, Keywords: []string{
				"cardiovascular", "infarto", "angina", "coronaria", "hta", "hipertensión arterial", "cardiopatía",
				"insuficiencia cardiaca", "arritmia", "taquicardia", "bradicardia", "miocardio", "ictus",
				"accidente cerebrovascular", "acv", "trombosis", "embolia", "hipertrofia ventricular",
			}},
			{Name: models.ColHypertension, Keywords: []string{
				"hipertensión", "hipertension", "hta", "presión alta", "tensión alta", "crisis hipertensiva",
			}},
			{Name: models.ColDiabetes, Keywords: []string{
				"diabetes", "hiperglucemia", "glucosa alta", "glucemia elevada", "resistencia a la insulina",
			}},
			{Name: models.ColRenal, Keywords: []string{
				"renal", "riñón", "insuficiencia renal", "nefropatía", "hemodiálisis", "diálisis", "litiasis renal",
				"cálculos renales", "proteinuria", "glomerulonefritis", "pielonefritis",
			}},
			{Name: models.ColHepatic, Keywords: []string{
				"hepática", "hígado", "cirrosis", "esteatosis", "hígado graso", "hepatitis", "transaminasas elevadas",
				"insuficiencia hepática", "colestasis", "fibrosis hepática",
			}},
			{Name: models.ColOsteo, Keywords: []string{
				"osteoporosis", "artrosis", "osteoartrosis", "coxartrosis", "gonartrosis", "desgaste articular",
				"dolor articular", "degeneración ósea", "fractura osteoporótica",
			}},
			{Name: models.ColGastrointestinal, Keywords: []string{
				"gastro", "colon", "gastritis", "úlceras", "gastrointestinal", "reflujo", "esofagitis", "colitis",
				"estreñimiento", "diarrea crónica", "síndrome de intestino irritable", "enfermedad de crohn",
				"rectocolitis", "pancreatitis", "helicobacter", "sucralfato",
			}},
			{Name: models.ColThyroid, Keywords: []string{
				"hipotiroidismo", "hipertiroidismo", "tiroid", "tiroides", "bocio", "nódulo tiroideo", "hashimoto",
				"graves", "trastornos tiroideos",
			}},
			{Name: models.ColCancer, Keywords: []string{
				"cáncer", "tumor", "neoplasia", "carcinoma", "adenocarcinoma", "linfoma", "melanoma", "leucemia",
				"sarcoma", "neoplasias", "cáncer de", "metástasis",
			}},
		},
		Biologics: []string{
			"etanercept", "adalimumab", "rituximab", "tocilizumab", "abatacept",
			"infliximab", "golimumab", "certolizumab", "secukinumab", "belimumab",
		},
		JAKInhibitors: []string{"tofacitinib", "baricitinib", "upadacitinib"},
		OnsetDMARDs: []string{
			"metotrexato", "leflunomida", "sulfasalazina", "hidroxicloroquina", "azatioprina",
			"ciclosporina", "ciclofosfamida", "micofenolato", "cloroquina",
		},
		AdherenceDMARDs: []string{
			"leflunomida", "metotrexato", "cloroquina", "sulfasalazina", "prednisolona",
			"azatioprina", "hidroxicloroquina", "daflazacort", "etoricoxib",
		},
		Parenteral: []string{
			"metotrexato sc", "etanercept", "adalimumab", "rituximab", "tocilizumab", "abatacept",
			"infliximab", "golimumab", "certolizumab", "secukinumab", "belimumab",
		},
		InteractionDrugs: []string{
			"leflunomida", "metotrexato", "cloroquina", "sulfasalazina", "prednisolona",
			"azatioprina", "hidroxicloroquina", "daflazacort", "etoricoxib", "etanercept",
			"adalimumab", "rituximab", "tocilizumab", "abatacept", "infliximab",
			"golimumab", "certolizumab", "secukinumab", "belimumab",
		},
		Aliases: map[string]string{"vita d": "vitamina d"},
	}
}

// Load reads a YAML overlay. Keys absent from the file keep their built-in
// values; a present key replaces the whole table. An empty path returns
// the defaults.
func Load(path string) (*Lexicon, error) {
	lex := Default()
	if path == "" {
		return lex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon %s: %w", path, err)
	}

	var overlay Lexicon
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon %s: %w", path, err)
	}

	if len(overlay.DiseaseCategories) > 0 {
		if err := validateCategories(overlay.DiseaseCategories); err != nil {
			return nil, err
		}
		lex.DiseaseCategories = overlay.DiseaseCategories
	}
	replaceIfSet(&lex.Biologics, overlay.Biologics)
	replaceIfSet(&lex.JAKInhibitors, overlay.JAKInhibitors)
	replaceIfSet(&lex.OnsetDMARDs, overlay.OnsetDMARDs)
	replaceIfSet(&lex.AdherenceDMARDs, overlay.AdherenceDMARDs)
	replaceIfSet(&lex.Parenteral, overlay.Parenteral)
	replaceIfSet(&lex.InteractionDrugs, overlay.InteractionDrugs)
	for k, v := range overlay.Aliases {
		lex.Aliases[k] = v
	}

	return lex, nil
}

// validateCategories rejects overlays that would leave report columns
// without a category behind them.
func validateCategories(cats []Category) error {
	byName := make(map[string]bool, len(cats))
	for _, c := range cats {
		byName[c.Name] = true
	}
	for _, col := range models.DiseaseColumns {
		if !byName[col] {
			return fmt.Errorf("lexicon: disease category %q missing", col)
		}
	}
	if len(cats) != len(models.DiseaseColumns) {
		return fmt.Errorf("lexicon: expected %d disease categories, got %d", len(models.DiseaseColumns), len(cats))
	}
	return nil
}

func replaceIfSet(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}

// OnsetBiologics is the list checked for the biologic/JAK onset column.
func (l *Lexicon) OnsetBiologics() []string {
	out := make([]string, 0, len(l.Biologics)+len(l.JAKInhibitors))
	out = append(out, l.Biologics...)
	return append(out, l.JAKInhibitors...)
}

// NormalizeTreatment lowercases treatment text and expands aliases,
// longest alias first.
func (l *Lexicon) NormalizeTreatment(s string) string {
	s = strings.ToLower(s)
	for _, from := range l.aliasOrder() {
		s = strings.ReplaceAll(s, strings.ToLower(from), strings.ToLower(l.Aliases[from]))
	}
	return s
}

func (l *Lexicon) aliasOrder() []string {
	keys := make([]string, 0, len(l.Aliases))
	for k := range l.Aliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Fold lowercases s and strips diacritics so "Hipertensión" matches
// "hipertension".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// ContainsAny reports whether text contains any of words, ignoring case and
// accents.
func ContainsAny(text string, words []string) bool {
	return FirstContained(text, words) != ""
}

// FirstContained returns the first entry of words found in text, or "".
func FirstContained(text string, words []string) string {
	folded := Fold(text)
	for _, w := range words {
		if w != "" && strings.Contains(folded, Fold(w)) {
			return w
		}
	}
	return ""
}

// Contained returns every entry of words found in text, in words order.
func Contained(text string, words []string) []string {
	folded := Fold(text)
	var out []string
	for _, w := range words {
		if w != "" && strings.Contains(folded, Fold(w)) {
			out = append(out, w)
		}
	}
	return out
}
