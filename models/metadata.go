package models

import "strings"

// SurveyMetadata is captured once on the intro/consent screen and broadcast
// onto every export row at submission time.
type SurveyMetadata struct {
	Hotel             string `json:"hotel"`
	Department        string `json:"department"`
	Position          string `json:"position"`
	Date              string `json:"date"`
	ParticipantName   string `json:"participantName"`
	ConsentGiven      bool   `json:"consentGiven"`
	ConfirmationGiven bool   `json:"confirmationGiven"`
}

// MissingFields returns the human-readable names of everything still
// required before the questionnaire may start. Empty result means the
// metadata gate passes.
func (m SurveyMetadata) MissingFields() []string {
	var missing []string
	if !m.ConsentGiven {
		missing = append(missing, "consent declaration")
	}
	if !m.ConfirmationGiven {
		missing = append(missing, "confirmation")
	}
	if strings.TrimSpace(m.Hotel) == "" {
		missing = append(missing, "hotel")
	}
	if strings.TrimSpace(m.Department) == "" {
		missing = append(missing, "department")
	}
	return missing
}
