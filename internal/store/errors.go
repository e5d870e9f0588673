package store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound means no document has been saved under the name yet.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidDocumentName is returned for names that are empty, contain a
	// path separator, or otherwise would escape the storage location.
	ErrInvalidDocumentName = errors.New("invalid document name")

	// ErrCorruptDocument means the stored bytes are not a JSON array.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrWriteFailed means a document was only partially written.
	ErrWriteFailed = errors.New("write failed")
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Op is the backend action a StoreError came from.
type Op string

const (
	OpOpen Op = "open"
	OpLoad Op = "load"
	OpSave Op = "save"
)

// StoreError ties a storage failure to the document it concerned.
type StoreError struct {
	Document string
	Op       Op
	Message  string
	Err      error
}

func (e *StoreError) Error() string {
	var b strings.Builder
	b.WriteString("store: ")
	b.WriteString(string(e.Op))
	b.WriteByte(' ')
	b.WriteString(e.Document)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError returns a StoreError for op on document.
func NewStoreError(document string, op Op, message string, err error) *StoreError {
	return &StoreError{Document: document, Op: op, Message: message, Err: err}
}
