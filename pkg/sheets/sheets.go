// Package sheets implements the spreadsheet append contract: locate or
// create the "responses" worksheet in the configured workbook, write the
// header once, and append string rows beneath it.
package sheets

import (
	"context"
	"fmt"
)

// WorksheetName is the fixed tab all responses land in.
const WorksheetName = "responses"

// Store is the workbook boundary. Implementations must keep the column order
// stable for the lifetime of a workbook: the header is written on first
// append and later rows line up by position only.
type Store interface {
	// Append writes the header if the worksheet does not exist yet, then
	// appends the rows beneath whatever is already there.
	Append(ctx context.Context, header []string, rows [][]string) error
	// Rows returns everything on the worksheet, header included. An
	// untouched workbook yields no rows and no error.
	Rows(ctx context.Context) ([][]string, error)
	// Target names the workbook for status messages.
	Target() string
}

// Kind classifies a submission outcome.
type Kind int

const (
	// Success means the rows were appended.
	Success Kind = iota
	// NotConfigured means no workbook target or credentials were set up;
	// the submission completes with a warning, nothing was transmitted.
	NotConfigured
	// Failed means a configured append attempt errored (auth, network,
	// remote). Retryable by the respondent.
	Failed
)

// Result is the typed outcome of one submission attempt. The presentation
// layer renders it with Message; nothing here is ever raised to the caller.
type Result struct {
	Kind     Kind
	Target   string
	RowCount int
	Err      error
}

// Failed reports whether the attempt may be retried.
func (r Result) Failed() bool {
	return r.Kind == Failed
}

// Message renders the human-readable status shown to the respondent.
func (r Result) Message() string {
	switch r.Kind {
	case Success:
		return fmt.Sprintf("✅ Transfer successful: %s – tab %q (%d rows).", r.Target, WorksheetName, r.RowCount)
	case NotConfigured:
		return "⚠️ Spreadsheet export is not configured; responses were not transmitted."
	default:
		return fmt.Sprintf("⚠️ Spreadsheet transfer failed: %v", r.Err)
	}
}

// Submit performs the best-effort append. Every failure is converted into a
// Result, never propagated.
func Submit(ctx context.Context, store Store, header []string, rows [][]string) Result {
	if store == nil {
		return Result{Kind: NotConfigured}
	}
	if err := store.Append(ctx, header, rows); err != nil {
		return Result{Kind: Failed, Target: store.Target(), Err: err}
	}
	return Result{Kind: Success, Target: store.Target(), RowCount: len(rows)}
}
