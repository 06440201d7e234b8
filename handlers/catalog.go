package handlers

import (
	"net/http"

	"p9e.in/hotelflex/models"
)

// GetCatalog returns the equipment taxonomy plus the criterion option
// labels, enough for any front end to render the questionnaire.
func GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := Sessions.Catalog()
	writeJSON(w, http.StatusOK, map[string]any{
		"catalog":   catalog,
		"flattened": catalog.Flatten(),
		"options": map[string][]string{
			"modulation":      models.ModulationOptions,
			"duration":        models.DurationOptions,
			"rebound":         models.ReboundOptions,
			"operatingWindow": models.OperatingWindowOptions,
		},
	})
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
