package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")

	// ErrExtractionFailed is fatal to a reconciliation run: with nothing
	// extracted there is nothing to compare, so no result is produced.
	ErrExtractionFailed = errors.New("document extraction failed")

	// ErrLookupFailed covers registry transport errors, unknown identifiers
	// and timeouts. It is always recovered inside the engine.
	ErrLookupFailed = errors.New("tax registry lookup failed")
)
