package models

// CatalogEntry is one position in the questionnaire traversal.
type CatalogEntry struct {
	Section string `json:"section"`
	Device  string `json:"device"`
}

// CatalogSection groups the devices surveyed for one area of the hotel.
type CatalogSection struct {
	Name    string   `json:"name"`
	Devices []string `json:"devices"`
}

// Catalog is the fixed equipment taxonomy presented to every respondent.
// Section and device order is significant: it defines the questionnaire
// traversal and the row order of the export.
type Catalog struct {
	Sections []CatalogSection `json:"sections"`
}

// DefaultCatalog returns the equipment taxonomy of the deployed survey.
func DefaultCatalog() Catalog {
	return Catalog{Sections: []CatalogSection{
		{
			Name: "Kitchen",
			Devices: []string{
				"Cold room",
				"Freezer room",
				"Combi steamer",
				"Deep fryer",
				"Induction range",
				"Dishwasher",
			},
		},
		{
			Name: "Wellness / Spa / Pool",
			Devices: []string{
				"Sauna",
				"Steam bath",
				"Pool circulation pump",
				"Pool hall ventilation/dehumidification",
			},
		},
		{
			Name: "Rooms & Common Areas",
			Devices: []string{
				"Room lighting",
				"Elevators",
				"Washing machine",
				"Tumble dryer",
				"EV wallbox",
			},
		},
	}}
}

// Flatten returns one entry per catalog device in declared order. The result
// is computed once per session and reused; answered devices reference it by
// index, so callers must not reorder it mid-session.
func (c Catalog) Flatten() []CatalogEntry {
	var flat []CatalogEntry
	for _, sec := range c.Sections {
		for _, dev := range sec.Devices {
			flat = append(flat, CatalogEntry{Section: sec.Name, Device: dev})
		}
	}
	return flat
}

// Contains reports whether the (section, device) pair exists in the catalog.
func (c Catalog) Contains(section, device string) bool {
	for _, sec := range c.Sections {
		if sec.Name != section {
			continue
		}
		for _, dev := range sec.Devices {
			if dev == device {
				return true
			}
		}
	}
	return false
}
