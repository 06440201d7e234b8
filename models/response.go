package models

import (
	"errors"
	"fmt"
)

// DeviceResponse holds one respondent's answers for a single catalog device.
// Ordinal fields are nil when unanswered; PowerKW is nil when not given.
type DeviceResponse struct {
	Section         string   `json:"section"`
	Device          string   `json:"device"`
	Present         bool     `json:"present"`
	PowerKW         *float64 `json:"powerKw,omitempty"`
	Modulation      *int     `json:"modulation,omitempty"`
	Duration        *int     `json:"duration,omitempty"`
	Rebound         *int     `json:"rebound,omitempty"`
	OperatingWindow *int     `json:"operatingWindow,omitempty"`
}

// ResponseKey identifies a response within one submission. At most one
// response exists per key; re-saving replaces the previous record.
type ResponseKey struct {
	Section string
	Device  string
}

// Key returns the upsert key for this response.
func (r DeviceResponse) Key() ResponseKey {
	return ResponseKey{Section: r.Section, Device: r.Device}
}

// Normalize enforces the not-present invariant: a device saved with
// Present=false must never carry power or ordinal values left over from an
// earlier Present=true edit.
func (r *DeviceResponse) Normalize() {
	if r.Present {
		return
	}
	r.PowerKW = nil
	r.Modulation = nil
	r.Duration = nil
	r.Rebound = nil
	r.OperatingWindow = nil
}

// Validate checks ordinal ranges and power sign. Identity errors (unknown
// device) are the caller's concern; this only validates field values.
func (r DeviceResponse) Validate() error {
	if r.Section == "" || r.Device == "" {
		return errors.New("response is missing its section or device")
	}
	if r.PowerKW != nil && *r.PowerKW < 0 {
		return fmt.Errorf("power rating must not be negative, got %v", *r.PowerKW)
	}
	for _, ord := range []struct {
		name string
		val  *int
	}{
		{"modulation", r.Modulation},
		{"duration", r.Duration},
		{"rebound", r.Rebound},
		{"operating window", r.OperatingWindow},
	} {
		if ord.val != nil && !ValidOrdinal(*ord.val) {
			return fmt.Errorf("%s must be in 1..4, got %d", ord.name, *ord.val)
		}
	}
	return nil
}
