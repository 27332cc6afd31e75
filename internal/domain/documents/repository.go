package documents

import (
	"context"
	"io"
	"time"
)

type Repository interface {
	ListForms(ctx context.Context) ([]Form, error)
	GetFormByName(ctx context.Context, name string) (*Form, error)
	CreateForm(ctx context.Context, form *Form) error
	// EnsureForm inserts the form unless one with the same name exists.
	EnsureForm(ctx context.Context, name string) error
	UserExists(ctx context.Context, userID uint) (bool, error)
	CreateDocument(ctx context.Context, document *Document) error
	GetDocument(ctx context.Context, id uint) (*Document, error)
	DeleteDocument(ctx context.Context, id uint) error
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]DocumentRow, error)
}

type FormsCache interface {
	Get() ([]Form, bool)
	Set(forms []Form, ttl time.Duration)
	Invalidate()
}

// FileStore keeps uploaded blobs under opaque names.
type FileStore interface {
	Save(ctx context.Context, name string, content io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, userID uint, activityType, description string) error
}
