package classifier

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"clinic-etl/internal/lexicon"
)

// ReferenceLayout is the consultation date format carried in file names.
const ReferenceLayout = "02-01-2006"

var (
	fullDateRe  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4}|\d{2})\b`)
	monthYearRe = regexp.MustCompile(`\b(\d{1,2})[/-](\d{4}|\d{2})\b`)
	yearRe      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	shortYearRe = regexp.MustCompile(`\b\d{2}\b`)

	notStartedRe = regexp.MustCompile(`(?i)\ba[uú]n\s+no(?:\s+ha)?\s+iniciado\b`)

	// a number followed by one of these is a dose or a frequency, not a date
	doseUnitRe = regexp.MustCompile(`(?i)^\s*(?:(?:mg|mcg|ui|ml|g|vo|sc|d[ií]as?|semanas?|horas?|h)\b|%)`)

	treatmentItemRe = regexp.MustCompile(`[\n,*•]+`)
)

// Band maps a month difference strictly below Below to Code.
type Band struct {
	Below int
	Code  int
}

// Recency bands for each date-driven column. Anything older scores 1.
var (
	MedicationChangeBands = []Band{{6, 4}, {12, 3}}
	BiologicOnsetBands    = []Band{{3, 4}, {6, 3}}
	DMARDOnsetBands       = []Band{{6, 4}, {12, 3}}
)

// ParseReference parses a "dd-mm-yyyy" consultation date.
func ParseReference(s string) (time.Time, bool) {
	t, err := time.Parse(ReferenceLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ExtractDates finds the dates mentioned in treatment text. Partial dates
// resolve to the first day of the month or year. When the text says the
// treatment has not started yet the reference date itself is included.
func ExtractDates(text string, ref time.Time) []time.Time {
	var dates []time.Time
	if notStartedRe.MatchString(text) {
		dates = append(dates, ref)
	}
	return append(dates, scanDates(text, false)...)
}

// scanDates finds dates from the most to the least specific pattern,
// blanking every match so a full date is not read again as month/year.
func scanDates(text string, shortYears bool) []time.Time {
	buf := []byte(text)
	var dates []time.Time

	scan := func(re *regexp.Regexp, parse func(m []string) (time.Time, bool)) {
		for _, loc := range re.FindAllSubmatchIndex(buf, -1) {
			if doseUnitRe.Match(buf[loc[1]:]) {
				continue
			}
			m := make([]string, len(loc)/2)
			for i := range m {
				if loc[2*i] >= 0 {
					m[i] = string(buf[loc[2*i]:loc[2*i+1]])
				}
			}
			if d, ok := parse(m); ok {
				dates = append(dates, d)
			}
			for i := loc[0]; i < loc[1]; i++ {
				buf[i] = '#'
			}
		}
	}

	scan(fullDateRe, func(m []string) (time.Time, bool) {
		return makeDate(atoi(m[3]), len(m[3]), atoi(m[2]), atoi(m[1]))
	})
	scan(monthYearRe, func(m []string) (time.Time, bool) {
		return makeDate(atoi(m[2]), len(m[2]), atoi(m[1]), 1)
	})
	scan(yearRe, func(m []string) (time.Time, bool) {
		return makeDate(atoi(m[0]), 4, 1, 1)
	})
	if shortYears {
		scan(shortYearRe, func(m []string) (time.Time, bool) {
			return makeDate(atoi(m[0]), 2, 1, 1)
		})
	}
	return dates
}

// makeDate validates the parts and expands two-digit years the way strptime
// does: 69-99 are 19xx, 00-68 are 20xx.
func makeDate(year, yearDigits, month, day int) (time.Time, bool) {
	if yearDigits == 2 {
		if year >= 69 {
			year += 1900
		} else {
			year += 2000
		}
	}
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// MonthsBetween counts calendar months from d to ref, ignoring days.
func MonthsBetween(ref, d time.Time) int {
	return (ref.Year()-d.Year())*12 + int(ref.Month()) - int(d.Month())
}

// Newest returns the latest of dates.
func Newest(dates []time.Time) (time.Time, bool) {
	if len(dates) == 0 {
		return time.Time{}, false
	}
	newest := dates[0]
	for _, d := range dates[1:] {
		if d.After(newest) {
			newest = d
		}
	}
	return newest, true
}

func recencyCode(ref, newest time.Time, bands []Band) int {
	diff := MonthsBetween(ref, newest)
	for _, b := range bands {
		if diff < b.Below {
			return b.Code
		}
	}
	return 1
}

// MedicationChange scores how recently the treatment changed: 4 under six
// months, 3 under a year, 1 older, 0 when no date is mentioned.
func MedicationChange(dates []time.Time, ref time.Time) int {
	newest, ok := Newest(dates)
	if !ok {
		return 0
	}
	return recencyCode(ref, newest, MedicationChangeBands)
}

// TreatmentOnset scores how recently a drug class was started. Only list
// items that name a drug of the class are searched for dates. A class drug
// without any date scores 1; no class drug scores 0.
func TreatmentOnset(treatment string, ref time.Time, drugs []string, bands []Band) int {
	var dates []time.Time
	mentioned := false

	for _, item := range treatmentItemRe.Split(strings.ToLower(treatment), -1) {
		item = strings.TrimLeft(strings.TrimSpace(item), "- ")
		if item == "" || !lexicon.ContainsAny(item, drugs) {
			continue
		}
		mentioned = true
		dates = append(dates, scanDates(item, true)...)
	}

	if !mentioned {
		return 0
	}
	newest, ok := Newest(dates)
	if !ok {
		return 1
	}
	return recencyCode(ref, newest, bands)
}
