package documents

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	ActivityDocumentUpload = "document_upload"

	defaultConcurrency  = 4
	defaultMaxFileBytes = 10 << 20
)

var safeExtension = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

type Options struct {
	CacheTTL     time.Duration
	MaxFileBytes int64
	Concurrency  int
}

type Service struct {
	repo       Repository
	files      FileStore
	cache      FormsCache
	activities ActivityRecorder
	opts       Options
}

func NewService(repo Repository, files FileStore, cache FormsCache, activities ActivityRecorder, opts Options) *Service {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = defaultMaxFileBytes
	}
	return &Service{
		repo:       repo,
		files:      files,
		cache:      cache,
		activities: activities,
		opts:       opts,
	}
}

func (s *Service) ListForms(ctx context.Context) ([]Form, error) {
	if s.cache != nil {
		if forms, ok := s.cache.Get(); ok {
			return forms, nil
		}
	}

	forms, err := s.repo.ListForms(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(forms, s.opts.CacheTTL)
	}
	return forms, nil
}

func (s *Service) CreateForm(ctx context.Context, name string) (*Form, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingFields
	}

	form := Form{FormName: name}
	if err := s.repo.CreateForm(ctx, &form); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate()
	}
	return &form, nil
}

// SeedDefaultForms inserts the standard BIR forms. Each form is inserted
// independently and failures are returned together.
func (s *Service) SeedDefaultForms(ctx context.Context) error {
	var errs []error
	for _, name := range DefaultForms {
		if err := s.repo.EnsureForm(ctx, name); err != nil {
			errs = append(errs, fmt.Errorf("seed form %q: %w", name, err))
		}
	}
	if s.cache != nil {
		s.cache.Invalidate()
	}
	return errors.Join(errs...)
}

// Upload stores every file and records a document row for it. Files are
// processed concurrently and independently: a failure only drops that file
// from the result and removes its blob.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	input.FormName = strings.TrimSpace(input.FormName)
	input.Quarter = strings.ToUpper(strings.TrimSpace(input.Quarter))
	if input.ClientID == 0 || input.FormName == "" || input.Quarter == "" || input.Year == 0 {
		return nil, ErrMissingFields
	}
	if _, ok := quarterRank[input.Quarter]; !ok {
		return nil, ErrInvalidQuarter
	}
	if len(input.Files) == 0 {
		return nil, ErrNoFiles
	}
	for _, file := range input.Files {
		if file.Size > s.opts.MaxFileBytes {
			return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, file.Name)
		}
	}

	form, err := s.repo.GetFormByName(ctx, input.FormName)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.UserExists(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrClientNotFound
	}

	stored := make([]*Document, len(input.Files))
	var (
		mu       sync.Mutex
		failures []UploadFailure
	)
	fail := func(name, stage string, err error) {
		mu.Lock()
		failures = append(failures, UploadFailure{FileName: name, Stage: stage, Err: err})
		mu.Unlock()
	}

	var group errgroup.Group
	group.SetLimit(s.opts.Concurrency)
	for i, file := range input.Files {
		i, file := i, file
		group.Go(func() error {
			doc, stage, err := s.storeOne(ctx, input, form, file)
			if err != nil {
				fail(file.Name, stage, err)
				return nil
			}
			stored[i] = doc

			if s.activities != nil {
				description := fmt.Sprintf("Uploaded %s for %s", file.Name, form.FormName)
				if err := s.activities.Record(ctx, input.ClientID, ActivityDocumentUpload, description); err != nil {
					fail(file.Name, StageActivity, err)
				}
			}
			return nil
		})
	}
	_ = group.Wait()

	result := &UploadResult{Documents: make([]Document, 0, len(stored)), Failures: failures}
	for _, doc := range stored {
		if doc != nil {
			result.Documents = append(result.Documents, *doc)
		}
	}
	return result, nil
}

func (s *Service) storeOne(ctx context.Context, input UploadInput, form *Form, file UploadFile) (*Document, string, error) {
	storedName := storedFileName(file.Name)

	content, err := file.Open()
	if err != nil {
		return nil, StageStore, err
	}
	err = s.files.Save(ctx, storedName, content)
	content.Close()
	if err != nil {
		return nil, StageStore, err
	}

	doc := Document{
		UserID:   input.ClientID,
		FormID:   form.ID,
		FileName: file.Name,
		FilePath: storedName,
		Quarter:  input.Quarter,
		Year:     input.Year,
	}
	if err := s.repo.CreateDocument(ctx, &doc); err != nil {
		if removeErr := s.files.Remove(ctx, storedName); removeErr != nil {
			err = errors.Join(err, fmt.Errorf("remove orphaned blob: %w", removeErr))
		}
		return nil, StageRecord, err
	}
	return &doc, "", nil
}

// ListAll groups every document by client name, then form name.
func (s *Service) ListAll(ctx context.Context) (map[string]map[string][]DocumentRow, error) {
	rows, err := s.repo.ListDocuments(ctx, DocumentFilter{})
	if err != nil {
		return nil, err
	}
	return GroupByClient(rows), nil
}

// ListByClient groups one client's documents by form name.
func (s *Service) ListByClient(ctx context.Context, clientID uint) (map[string][]DocumentRow, error) {
	rows, err := s.repo.ListDocuments(ctx, DocumentFilter{UserID: clientID})
	if err != nil {
		return nil, err
	}
	return GroupByForm(rows), nil
}

func (s *Service) ListByClientForm(ctx context.Context, clientID uint, formName string) ([]DocumentRow, error) {
	rows, err := s.repo.ListDocuments(ctx, DocumentFilter{UserID: clientID, FormName: formName})
	if err != nil {
		return nil, err
	}
	SortNewestFirst(rows)
	return rows, nil
}

func (s *Service) Open(ctx context.Context, id uint) (*Download, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.files.Open(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return &Download{FileName: doc.FileName, Content: content}, nil
}

// Delete removes the document row, then its blob. A blob removal error is
// returned wrapped alongside the deleted document so callers can log it.
func (s *Service) Delete(ctx context.Context, id uint) (*Document, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteDocument(ctx, id); err != nil {
		return nil, err
	}
	if err := s.files.Remove(ctx, doc.FilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return doc, &BlobError{Name: doc.FilePath, Err: err}
	}
	return doc, nil
}

// BlobError reports a storage failure after the document row was handled.
type BlobError struct {
	Name string
	Err  error
}

func (e *BlobError) Error() string {
	return fmt.Sprintf("blob %s: %v", e.Name, e.Err)
}

func (e *BlobError) Unwrap() error {
	return e.Err
}

func storedFileName(original string) string {
	name := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(original))
	if safeExtension.MatchString(ext) {
		name += ext
	}
	return name
}
