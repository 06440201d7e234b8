package models

import "testing"

func TestFlattenOrderAndUniqueness(t *testing.T) {
	catalog := DefaultCatalog()
	flat := catalog.Flatten()

	wantTotal := 0
	for _, sec := range catalog.Sections {
		wantTotal += len(sec.Devices)
	}
	if len(flat) != wantTotal {
		t.Fatalf("Flatten() returned %d entries, expected %d", len(flat), wantTotal)
	}

	// Declared order is preserved section by section.
	i := 0
	for _, sec := range catalog.Sections {
		for _, dev := range sec.Devices {
			if flat[i].Section != sec.Name || flat[i].Device != dev {
				t.Errorf("Flatten()[%d] = (%q, %q), expected (%q, %q)",
					i, flat[i].Section, flat[i].Device, sec.Name, dev)
			}
			i++
		}
	}

	// No duplicate (section, device) pairs.
	seen := map[CatalogEntry]bool{}
	for _, entry := range flat {
		if seen[entry] {
			t.Errorf("duplicate catalog entry %v", entry)
		}
		seen[entry] = true
	}
}

func TestFlattenDeterministic(t *testing.T) {
	catalog := DefaultCatalog()
	first := catalog.Flatten()
	second := catalog.Flatten()
	if len(first) != len(second) {
		t.Fatalf("repeated Flatten() lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("repeated Flatten() differs at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestContains(t *testing.T) {
	catalog := Catalog{Sections: []CatalogSection{
		{Name: "Kitchen", Devices: []string{"Fridge"}},
	}}

	tests := []struct {
		name     string
		section  string
		device   string
		expected bool
	}{
		{"known pair", "Kitchen", "Fridge", true},
		{"unknown device", "Kitchen", "Sauna", false},
		{"unknown section", "Wellness", "Fridge", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := catalog.Contains(tt.section, tt.device); got != tt.expected {
				t.Errorf("Contains(%q, %q) = %v, expected %v", tt.section, tt.device, got, tt.expected)
			}
		})
	}
}
