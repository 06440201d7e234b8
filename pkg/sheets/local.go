package sheets

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"
)

// LocalStore keeps the workbook as an .xlsx file on disk. Used for
// development deployments without a bucket.
type LocalStore struct {
	Path string
}

// NewLocalStore returns a store writing to the given .xlsx path.
func NewLocalStore(path string) *LocalStore {
	return &LocalStore{Path: path}
}

func (s *LocalStore) Target() string {
	return s.Path
}

func (s *LocalStore) Append(ctx context.Context, header []string, rows [][]string) error {
	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := appendToWorkbook(f, header, rows); err != nil {
		return err
	}
	return f.SaveAs(s.Path)
}

func (s *LocalStore) Rows(ctx context.Context) ([][]string, error) {
	if _, err := os.Stat(s.Path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return workbookRows(f)
}

func (s *LocalStore) open() (*excelize.File, error) {
	if _, err := os.Stat(s.Path); errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	return excelize.OpenFile(s.Path)
}
