package handlers

import (
	"log/slog"
	"mime"
	"net/http"

	"github.com/shelfglow/inventory-backend/internal/csvio"
	"github.com/shelfglow/inventory-backend/internal/errors"
	"github.com/shelfglow/inventory-backend/internal/models"
	service "github.com/shelfglow/inventory-backend/internal/services"
	"github.com/shelfglow/inventory-backend/internal/utils"
	"github.com/shelfglow/inventory-backend/internal/utils/response"
)

// uploadField is the fixed multipart field name the dashboard posts the CSV
// under.
const uploadField = "file"

type ImportExportHandler struct {
	importExportService service.ImportExportService
	parser              *csvio.Parser
	maxUploadBytes      int64
}

func NewImportExportHandler(importExportService service.ImportExportService, maxUploadBytes int64) *ImportExportHandler {
	return &ImportExportHandler{
		importExportService: importExportService,
		parser:              csvio.NewParser(csvio.DefaultProductHeaders()),
		maxUploadBytes:      maxUploadBytes,
	}
}

// ImportProducts accepts either a multipart CSV upload or a JSON body with
// pre-parsed rows. A CSV that cannot be parsed at all is a 400 and nothing
// is committed; bad rows inside a parseable CSV are reported in the result.
func (h *ImportExportHandler) ImportProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		rows, err := h.readRows(w, r)
		if err != nil {
			slog.Warn("import rejected", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		result, err := h.importExportService.ImportProducts(r.Context(), rows)

		if err != nil {
			slog.Error("Import failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Import finished",
			slog.Int("products", len(result.Products)),
			slog.Int("rejectedRows", len(result.RejectedRows)),
		)
		response.Success(w, http.StatusOK, result)

	}
}

func (h *ImportExportHandler) readRows(w http.ResponseWriter, r *http.Request) ([]models.ImportRow, error) {

	// hard cap on the request body; ParseMultipartForm alone only limits
	// in-memory buffering
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "multipart/form-data" {

		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			return nil, errors.BadRequestError("Upload rejected").WithError(err)
		}

		file, _, err := r.FormFile(uploadField)
		if err != nil {
			return nil, errors.BadRequestError("Missing 'file' upload field").WithError(err)
		}
		defer file.Close()

		rows, err := h.parser.Parse(file)
		if err != nil {
			return nil, errors.BadCSVError("Bad CSV format").WithDetail(err.Error()).WithError(err)
		}

		return rows, nil
	}

	var req models.ImportRequest

	if err := utils.DecodeJSONBody(r, &req); err != nil {
		return nil, errors.BadRequestError("Expected a CSV upload or a JSON products array").WithError(err)
	}

	return req.Products, nil
}

// ExportProducts renders the selection as CSV and returns it as a download.
func (h *ImportExportHandler) ExportProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.ExportRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, errors.BadRequestError("Invalid export request").WithError(err))
			return
		}

		file, err := h.importExportService.ExportProducts(r.Context(), &req)

		if err != nil {
			slog.Warn("Export failed", slog.String("format", req.Format), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Export rendered", slog.String("format", req.Format), slog.String("filename", file.Filename))

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(file.Content))

	}
}
