package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Criterion option labels as shown to the respondent. Each label starts with
// its 1–4 code followed by an en dash; ParseChoiceLabel depends on that
// format, so the sets are unit-tested against it.
var (
	ModulationOptions = []string{
		"1 – hardly adjustable",
		"2 – somewhat adjustable",
		"3 – well adjustable",
		"4 – very well adjustable",
	}
	DurationOptions = []string{
		"1 – <15 min",
		"2 – 15–45 min",
		"3 – 45–120 min",
		"4 – ≥2 h",
	}
	ReboundOptions = []string{
		"1 – very high make-up energy",
		"2 – high make-up energy",
		"3 – little make-up energy",
		"4 – hardly any make-up energy",
	}
	OperatingWindowOptions = []string{
		"1 – fixed times",
		"2 – somewhat flexible",
		"3 – rather flexible",
		"4 – fully flexible",
	}
)

// ChoiceParseError reports a criterion label whose leading token does not
// decode to an ordinal code. With well-formed option sets this never happens
// at runtime.
type ChoiceParseError struct {
	Label string
}

func (e *ChoiceParseError) Error() string {
	return fmt.Sprintf("choice label %q has no leading ordinal code", e.Label)
}

// ParseChoiceLabel extracts the ordinal code from an "N – label" option
// string. An empty label means no selection and yields 0 with no error.
func ParseChoiceLabel(label string) (int, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return 0, nil
	}
	// Split on en dash first (the shipped format), fall back to whitespace so
	// a plain "3" or "3 label" still decodes.
	head := s
	if i := strings.Index(s, "–"); i >= 0 {
		head = s[:i]
	} else if i := strings.IndexAny(s, " \t"); i >= 0 {
		head = s[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, &ChoiceParseError{Label: label}
	}
	return n, nil
}

// ValidOrdinal reports whether n is a legal 1–4 criterion code.
func ValidOrdinal(n int) bool {
	return n >= 1 && n <= 4
}
