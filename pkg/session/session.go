package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/anggasct/fluo"
	"github.com/google/uuid"

	"p9e.in/hotelflex/models"
)

// Session is one respondent's in-memory questionnaire run. Nothing here is
// persisted locally; the spreadsheet written at submission time is the only
// durable store.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu      sync.Mutex
	touched time.Time

	machine fluo.Machine

	catalog        models.Catalog
	flat           []models.CatalogEntry // derived once, never reshuffled
	includeRebound bool

	meta      models.SurveyMetadata
	index     int
	responses map[models.ResponseKey]models.DeviceResponse

	lastAttemptFailed bool
	lastStatus        string
}

// New creates a session positioned on the intro screen.
func New(catalog models.Catalog, includeRebound bool) (*Session, error) {
	s := &Session{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		touched:        time.Now(),
		catalog:        catalog,
		flat:           catalog.Flatten(),
		includeRebound: includeRebound,
		responses:      make(map[models.ResponseKey]models.DeviceResponse),
	}
	m, err := buildMachine(s)
	if err != nil {
		return nil, err
	}
	s.machine = m
	return s, nil
}

// State returns the wizard state name.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.CurrentState()
}

// Continue moves from the intro screen to the metadata form.
func (s *Session) Continue() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.fire(EventContinue, "")
}

// SetMetadata stores the consent + metadata form. Allowed while the
// questionnaire has not started yet.
func (s *Session) SetMetadata(meta models.SurveyMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if st := s.machine.CurrentState(); st != StateMetadata {
		return &ErrNotAllowed{State: st, Event: "metadata update", Why: "the questionnaire has already started"}
	}
	s.meta = meta
	return nil
}

// Start begins the questionnaire. On a failed gate it returns the missing
// required fields and the session stays where it is; no data is lost.
func (s *Session) Start() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if missing := s.meta.MissingFields(); len(missing) > 0 {
		return missing, &ErrNotAllowed{
			State: s.machine.CurrentState(),
			Event: EventStart,
			Why:   "required fields are missing",
		}
	}
	if err := s.fire(EventStart, ""); err != nil {
		return nil, err
	}
	s.index = 0
	return nil, nil
}

// Metadata returns a copy of the captured metadata.
func (s *Session) Metadata() models.SurveyMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// Current returns the device under the wizard cursor and any saved response
// for it. ok is false when the cursor is past the last device.
func (s *Session) Current() (entry models.CatalogEntry, saved *models.DeviceResponse, index, total int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total = len(s.flat)
	index = s.index
	if s.index >= total {
		return models.CatalogEntry{}, nil, index, total, false
	}
	entry = s.flat[s.index]
	if r, found := s.responses[models.ResponseKey{Section: entry.Section, Device: entry.Device}]; found {
		cp := r
		saved = &cp
	}
	return entry, saved, index, total, true
}

// Upsert validates and commits one device response, replacing any earlier
// record for the same (section, device) key. It does not move the cursor, so
// it also serves re-edits of earlier devices.
func (s *Session) Upsert(resp models.DeviceResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if st := s.machine.CurrentState(); st != StateQuestionnaire && st != StateReview {
		return &ErrNotAllowed{State: st, Event: "response", Why: "the questionnaire is not open"}
	}
	return s.upsertLocked(resp)
}

func (s *Session) upsertLocked(resp models.DeviceResponse) error {
	if !s.catalog.Contains(resp.Section, resp.Device) {
		return fmt.Errorf("unknown device %q in section %q", resp.Device, resp.Section)
	}
	if !s.includeRebound {
		resp.Rebound = nil
	}
	resp.Normalize()
	if err := resp.Validate(); err != nil {
		return err
	}
	s.responses[resp.Key()] = resp
	return nil
}

// SaveAndNext commits the response for the current device and advances the
// cursor. The response's identity is forced to the cursor device.
func (s *Session) SaveAndNext(resp models.DeviceResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if st := s.machine.CurrentState(); st != StateQuestionnaire {
		return &ErrNotAllowed{State: st, Event: "save", Why: "the questionnaire is not open"}
	}
	if s.index >= len(s.flat) {
		return fmt.Errorf("no device under the cursor")
	}
	entry := s.flat[s.index]
	resp.Section = entry.Section
	resp.Device = entry.Device
	if err := s.upsertLocked(resp); err != nil {
		return err
	}
	s.advance()
	return nil
}

// Skip removes any record for the current device and advances. A skipped
// device is omitted from the export entirely.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if st := s.machine.CurrentState(); st != StateQuestionnaire {
		return &ErrNotAllowed{State: st, Event: "skip", Why: "the questionnaire is not open"}
	}
	if s.index < len(s.flat) {
		entry := s.flat[s.index]
		delete(s.responses, models.ResponseKey{Section: entry.Section, Device: entry.Device})
	}
	s.advance()
	return nil
}

// Back moves the cursor one device backwards. Saved answers stay untouched.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if st := s.machine.CurrentState(); st != StateQuestionnaire {
		return &ErrNotAllowed{State: st, Event: "back", Why: "the questionnaire is not open"}
	}
	if s.index > 0 {
		s.index--
	}
	return nil
}

// Remove deletes a response by key, wherever the cursor is.
func (s *Session) Remove(section, device string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if st := s.machine.CurrentState(); st != StateQuestionnaire && st != StateReview {
		return &ErrNotAllowed{State: st, Event: "remove", Why: "the questionnaire is not open"}
	}
	delete(s.responses, models.ResponseKey{Section: section, Device: device})
	return nil
}

// Missing lists catalog devices without a Present=true record, as
// "Section – Device" labels. Advisory only; submission proceeds regardless.
func (s *Session) Missing() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.missingLocked()
}

func (s *Session) missingLocked() []string {
	var missing []string
	for _, entry := range s.flat {
		r, found := s.responses[models.ResponseKey{Section: entry.Section, Device: entry.Device}]
		if !found || !r.Present {
			missing = append(missing, entry.Section+" – "+entry.Device)
		}
	}
	return missing
}

// Finish closes the questionnaire and returns the advisory missing list.
func (s *Session) Finish() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.fire(EventFinish, ""); err != nil {
		return nil, err
	}
	return s.missingLocked(), nil
}

// Edit reopens the questionnaire from the review screen.
func (s *Session) Edit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.fire(EventEdit, "")
}

// BeginSubmit claims the single submission slot. It succeeds from review
// (first attempt) or from submitted when the previous attempt failed; a
// concurrent or repeated press is rejected by the machine.
func (s *Session) BeginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.machine.CurrentState() == StateSubmitted {
		return s.fire(EventResubmit, "the submission is already complete")
	}
	return s.fire(EventConfirm, "")
}

// CompleteSubmit records the outcome of the submission pipeline and moves to
// the terminal state. failed marks the outcome retryable via BeginSubmit.
func (s *Session) CompleteSubmit(status string, failed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.fire(EventComplete, ""); err != nil {
		return err
	}
	s.lastStatus = status
	s.lastAttemptFailed = failed
	return nil
}

// LastStatus returns the user-facing status of the most recent submission
// attempt, empty before the first attempt.
func (s *Session) LastStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

// ResponsesInOrder returns the committed responses in catalog order, one per
// touched (section, device) key.
func (s *Session) ResponsesInOrder() []models.DeviceResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.DeviceResponse
	for _, entry := range s.flat {
		if r, found := s.responses[models.ResponseKey{Section: entry.Section, Device: entry.Device}]; found {
			out = append(out, r)
		}
	}
	return out
}

// Reset discards everything and returns to the intro screen.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.machine.Reset(); err != nil {
		return err
	}
	// Reset stops the machine; restart it so the intro screen accepts events.
	if err := s.machine.Start(); err != nil {
		return err
	}
	s.meta = models.SurveyMetadata{}
	s.index = 0
	s.responses = make(map[models.ResponseKey]models.DeviceResponse)
	s.lastAttemptFailed = false
	s.lastStatus = ""
	return nil
}

// advance moves the cursor forward, clamped to one past the last device.
func (s *Session) advance() {
	if s.index < len(s.flat) {
		s.index++
	}
}

func (s *Session) touch() {
	s.touched = time.Now()
}

// TouchedAt reports the last respondent activity, for stale-session pruning.
func (s *Session) TouchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}
