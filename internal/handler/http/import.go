package http

import (
	"log/slog"
	"net/http"

	"github.com/salescope/salestracker-backend-go/internal/domain/bulkimport"
	"github.com/salescope/salestracker-backend-go/internal/handler/http/response"
)

type ImportHandler interface {
	ImportCSV(w http.ResponseWriter, r *http.Request)
}

type importHandlerImpl struct {
	importService bulkimport.ImportService
}

func NewImportHandler(importService bulkimport.ImportService) ImportHandler {
	return &importHandlerImpl{
		importService: importService,
	}
}

// ImportCSV implements ImportHandler
func (h *importHandlerImpl) ImportCSV(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	// Get file from form
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "CSV file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	// Call service
	result, err := h.importService.ImportCSV(r.Context(), fileHeader.Filename, file)
	if err != nil {
		slog.Error("ImportCSV service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("CSV import finished", "accepted", result.AcceptedCount, "rejected", result.RejectedCount)
	response.Success(w, result)
}
