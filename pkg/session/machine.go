// Package session holds one respondent's questionnaire state: the wizard
// state machine, the metadata, and the per-device response set.
package session

import (
	"fmt"

	"github.com/anggasct/fluo"
)

// Wizard states. The names are also what the HTTP layer reports.
const (
	StateIntro         = "intro"
	StateMetadata      = "metadata"
	StateQuestionnaire = "questionnaire"
	StateReview        = "review"
	StateSubmitting    = "submitting"
	StateSubmitted     = "submitted"
)

// Wizard events.
const (
	EventContinue = "CONTINUE"
	EventStart    = "START"
	EventFinish   = "FINISH"
	EventEdit     = "EDIT"
	EventConfirm  = "CONFIRM"
	EventComplete = "COMPLETE"
	EventResubmit = "RESUBMIT"
)

// ErrNotAllowed reports an event the wizard rejects in its current state,
// e.g. submitting twice or starting without consent.
type ErrNotAllowed struct {
	State string
	Event string
	Why   string
}

func (e *ErrNotAllowed) Error() string {
	if e.Why != "" {
		return fmt.Sprintf("%s is not allowed in state %s: %s", e.Event, e.State, e.Why)
	}
	return fmt.Sprintf("%s is not allowed in state %s", e.Event, e.State)
}

// buildMachine wires the wizard for one session. Guards close over the
// session so metadata validation and the resubmit gate read live state.
func buildMachine(s *Session) (fluo.Machine, error) {
	b := fluo.NewMachine()

	b.State(StateIntro).Initial().
		To(StateMetadata).On(EventContinue)

	// The metadata gate: consent, confirmation and required fields. The
	// specific missing fields are surfaced by Start, not by the guard.
	b.State(StateMetadata).
		To(StateQuestionnaire).On(EventStart).When(func(ctx fluo.Context) bool {
		return len(s.meta.MissingFields()) == 0
	})

	b.State(StateQuestionnaire).
		To(StateReview).On(EventFinish)

	b.State(StateReview).
		To(StateQuestionnaire).On(EventEdit).
		To(StateSubmitting).On(EventConfirm)

	b.State(StateSubmitting).
		To(StateSubmitted).On(EventComplete)

	// A failed append may be retried; success and not-configured are final.
	b.State(StateSubmitted).
		To(StateSubmitting).On(EventResubmit).When(func(ctx fluo.Context) bool {
		return s.lastAttemptFailed
	})

	m := b.Build().CreateInstance()
	if err := m.Start(); err != nil {
		return nil, err
	}
	return m, nil
}

// fire sends one event and translates a rejection into ErrNotAllowed.
func (s *Session) fire(event, why string) error {
	res := s.machine.SendEvent(event, nil)
	if res.Error != nil {
		return res.Error
	}
	if !res.Processed {
		return &ErrNotAllowed{State: res.CurrentState, Event: event, Why: why}
	}
	return nil
}
