package bulkimport

import (
	"context"
	"io"
)

// ImportService ingests a CSV upload end to end: parse, validate per
// row, commit the accepted rows in one transaction, and archive the
// raw file when archiving is configured.
type ImportService interface {
	ImportCSV(ctx context.Context, filename string, file io.Reader) (ImportResultResponse, error)
}
