package port

import (
	"context"

	"parakh/internal/domain"
)

// ExtractInput carries one uploaded document to the extraction collaborator.
type ExtractInput struct {
	FileBytes   []byte
	FileName    string
	ContentType string
	Kind        domain.DocumentKind
}

// DocumentExtractor abstracts the OCR/extraction service that turns a raw
// document into a flat field map. The engine treats its output as
// already-normalized-enough text.
type DocumentExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (domain.FieldSet, error)
}
