package bulkimport

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/salescope/salestracker-backend-go/internal/domain/bulkimport"
	"github.com/salescope/salestracker-backend-go/internal/domain/employee"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
	"github.com/salescope/salestracker-backend-go/internal/pkg/storage"
	"github.com/salescope/salestracker-backend-go/internal/repository/postgresql"
)

type ImportServiceImpl struct {
	db           *database.DB
	saleRepo     sale.SaleRepository
	employeeRepo employee.EmployeeRepository
	archive      storage.FileStorage // nil disables upload archiving
	maxRows      int
}

func NewImportService(
	db *database.DB,
	saleRepo sale.SaleRepository,
	employeeRepo employee.EmployeeRepository,
	archive storage.FileStorage,
	maxRows int,
) bulkimport.ImportService {
	return &ImportServiceImpl{
		db:           db,
		saleRepo:     saleRepo,
		employeeRepo: employeeRepo,
		archive:      archive,
		maxRows:      maxRows,
	}
}

// ImportCSV implements bulkimport.ImportService. Accepted rows commit
// in a single transaction; rejected rows are reported, never inserted.
func (s *ImportServiceImpl) ImportCSV(ctx context.Context, filename string, file io.Reader) (bulkimport.ImportResultResponse, error) {
	// The tee keeps the raw bytes as the parser consumes them, so the
	// archive holds exactly what the caller uploaded.
	var raw bytes.Buffer
	reader := csv.NewReader(io.TeeReader(file, &raw))
	// Ragged rows fall through to per-row validation instead of
	// aborting the batch.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return bulkimport.ImportResultResponse{}, bulkimport.ErrEmptyBatch
		}
		return bulkimport.ImportResultResponse{}, fmt.Errorf("%w: %v", bulkimport.ErrMalformedCSV, err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return bulkimport.ImportResultResponse{}, fmt.Errorf("%w: %v", bulkimport.ErrMalformedCSV, err)
		}
		if len(rows) == s.maxRows {
			return bulkimport.ImportResultResponse{}, fmt.Errorf("%w: more than %d rows", bulkimport.ErrTooManyRows, s.maxRows)
		}
		rows = append(rows, row)
	}

	active, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return bulkimport.ImportResultResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}
	byName := make(map[string]employee.Employee, len(active))
	for _, emp := range active {
		byName[strings.ToLower(emp.Name)] = emp
	}
	lookup := func(name string) (employee.Employee, bool) {
		emp, ok := byName[strings.ToLower(name)]
		return emp, ok
	}

	result, err := bulkimport.ParseBatch(header, rows, lookup)
	if err != nil {
		return bulkimport.ImportResultResponse{}, err
	}

	if len(result.Accepted) > 0 {
		records := make([]sale.SaleRecord, 0, len(result.Accepted))
		for _, draft := range result.Accepted {
			records = append(records, draft.Record)
		}

		err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			return s.saleRepo.BatchCreate(postgresql.ContextWithTx(ctx, tx), records)
		})
		if err != nil {
			return bulkimport.ImportResultResponse{}, fmt.Errorf("failed to commit import: %w", err)
		}
	}

	s.archiveUpload(ctx, filename, &raw)

	return bulkimport.NewImportResultResponse(result), nil
}

// archiveUpload stores the raw file for audit. Failures are logged and
// swallowed: the rows are already committed and the import must not
// report failure over a bookkeeping copy.
func (s *ImportServiceImpl) archiveUpload(ctx context.Context, filename string, raw io.Reader) {
	if s.archive == nil {
		return
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".csv"
	}
	name := fmt.Sprintf("%s-%s%s", time.Now().UTC().Format("20060102-150405"), uuid.New().String(), ext)
	path := filepath.Join("imports", name)

	stored, err := s.archive.Save(ctx, raw, path)
	if err != nil {
		slog.Warn("Failed to archive import upload", "filename", filename, "error", err)
		return
	}
	slog.Info("Archived import upload", "filename", filename, "path", stored)
}
