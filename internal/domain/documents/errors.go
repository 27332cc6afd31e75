package documents

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrFormNotFound     = errors.New("form not found")
	ErrFormExists       = errors.New("form already exists")
	ErrClientNotFound   = errors.New("client not found")
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidQuarter   = errors.New("quarter must be one of Q1, Q2, Q3, Q4")
	ErrNoFiles          = errors.New("no files uploaded")
	ErrFileTooLarge     = errors.New("file exceeds size limit")
	ErrBlobNotFound     = errors.New("stored file not found")
)
