package sheets

import (
	"context"
	"sync"
)

// Fake is an in-memory Store for tests. Set Fail to make every call error.
type Fake struct {
	mu      sync.Mutex
	header  []string
	rows    [][]string
	Appends int
	Fail    error
}

// NewFake returns an empty in-memory store.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Target() string {
	return "fake-workbook"
}

func (f *Fake) Append(ctx context.Context, header []string, rows [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return f.Fail
	}
	if f.header == nil {
		f.header = append([]string{}, header...)
	}
	for _, row := range rows {
		f.rows = append(f.rows, append([]string{}, row...))
	}
	f.Appends++
	return nil
}

func (f *Fake) Rows(ctx context.Context) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}
	if f.header == nil {
		return nil, nil
	}
	out := [][]string{append([]string{}, f.header...)}
	for _, row := range f.rows {
		out = append(out, append([]string{}, row...))
	}
	return out, nil
}

// Header returns the header written on first append, nil before that.
func (f *Fake) Header() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.header...)
}

// DataRows returns the appended data rows without the header.
func (f *Fake) DataRows() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, append([]string{}, row...))
	}
	return out
}
