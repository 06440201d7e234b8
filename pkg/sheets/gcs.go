package sheets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GCSStore keeps the shared workbook as a single .xlsx object in a Cloud
// Storage bucket. Writes are conditional on the object generation read, so
// two respondents submitting at once cannot silently drop each other's rows;
// the loser gets an error and the respondent retries.
type GCSStore struct {
	Bucket    string
	Object    string
	CredsFile string

	mu     sync.Mutex
	client *storage.Client
}

// NewGCSStore returns a store for gs://bucket/object. credsFile may be empty
// to use ambient application-default credentials.
func NewGCSStore(bucket, object, credsFile string) *GCSStore {
	return &GCSStore{Bucket: bucket, Object: object, CredsFile: credsFile}
}

func (s *GCSStore) Target() string {
	return fmt.Sprintf("gs://%s/%s", s.Bucket, s.Object)
}

func (s *GCSStore) Append(ctx context.Context, header []string, rows [][]string) error {
	client, err := s.ensureClient(ctx)
	if err != nil {
		return fmt.Errorf("storage client: %w", err)
	}
	obj := client.Bucket(s.Bucket).Object(s.Object)

	f, generation, err := s.read(ctx, obj)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := appendToWorkbook(f, header, rows); err != nil {
		return err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}

	var w *storage.Writer
	if generation == 0 {
		w = obj.If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	} else {
		w = obj.If(storage.Conditions{GenerationMatch: generation}).NewWriter(ctx)
	}
	w.ContentType = xlsxContentType
	if _, err := w.Write(buf.Bytes()); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (s *GCSStore) Rows(ctx context.Context) ([][]string, error) {
	client, err := s.ensureClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	obj := client.Bucket(s.Bucket).Object(s.Object)
	f, generation, err := s.read(ctx, obj)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if generation == 0 {
		return nil, nil
	}
	return workbookRows(f)
}

// read loads the current workbook and its generation; a missing object
// yields a fresh workbook and generation 0.
func (s *GCSStore) read(ctx context.Context, obj *storage.ObjectHandle) (*excelize.File, int64, error) {
	r, err := obj.NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return excelize.NewFile(), 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("workbook %s is not readable: %w", s.Target(), err)
	}
	return f, r.Attrs.Generation, nil
}

func (s *GCSStore) ensureClient(ctx context.Context) (*storage.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	var opts []option.ClientOption
	if s.CredsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.CredsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}
