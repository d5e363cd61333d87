package bulkimport

import "errors"

var (
	// ErrMissingColumn rejects the whole batch when a required header
	// column is absent.
	ErrMissingColumn = errors.New("required column missing")

	// ErrEmptyBatch means the upload had no header row at all.
	ErrEmptyBatch = errors.New("uploaded file is empty")

	// ErrTooManyRows guards the configured per-upload row ceiling.
	ErrTooManyRows = errors.New("upload exceeds the row limit")

	// ErrMalformedCSV wraps parser failures such as ragged quoting.
	ErrMalformedCSV = errors.New("malformed CSV")
)
