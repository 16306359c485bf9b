package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/username/fundadvisor/backend/src/config"
	"github.com/username/fundadvisor/backend/src/logger"
	"github.com/username/fundadvisor/backend/src/models"
	"github.com/username/fundadvisor/backend/src/security/validation"
	"github.com/username/fundadvisor/backend/src/services"
	"github.com/username/fundadvisor/backend/src/utils"
)

type ReportHandler struct {
	ingestService services.IngestService
}

func NewReportHandler(service services.IngestService) *ReportHandler {
	return &ReportHandler{
		ingestService: service,
	}
}

// HandleIngest accepts a multipart upload with a "company" field and a "file"
// field holding the text extracted from the carrier's PDF report.
func (h *ReportHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	companyID := r.FormValue("company")
	if companyID == "" {
		utils.SendJSONError(w, "Missing 'company' form field.", http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "company", companyID, "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		logger.L.Warn("Uploaded file header reports size too large", "company", companyID, "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB (header check)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		logger.L.Warn("Invalid client-declared file type", "company", companyID, "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		logger.L.Warn("Server-side file content validation failed", "company", companyID, "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.L.Info("File content validated", "company", companyID, "filename", fileHeader.Filename, "clientType", clientContentType, "detectedType", detectedContentType)

	textBytes, err := io.ReadAll(io.LimitReader(file, config.Cfg.MaxUploadSizeBytes))
	if err != nil {
		logger.L.Error("Failed to read uploaded file", "company", companyID, "error", err)
		utils.SendJSONError(w, "Failed to read uploaded file.", http.StatusInternalServerError)
		return
	}

	result, err := h.ingestService.Ingest(companyID, string(textBytes))
	if err != nil {
		if errors.Is(err, services.ErrUnknownCompany) {
			logger.L.Warn("Ingest rejected: unknown company", "company", companyID)
			utils.SendJSONError(w, fmt.Sprintf("Unknown company identifier: %s", companyID), http.StatusNotFound)
		} else if errors.Is(err, services.ErrParsingFailed) {
			logger.L.Warn("Ingest failed: unreadable report text", "company", companyID, "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error parsing report text: %v", err), http.StatusBadRequest)
		} else {
			logger.L.Error("Internal error processing ingest", "company", companyID, "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "An internal error occurred while processing the report. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for ingest result", "company", companyID, "error", err)
	}
}

// HandleGetRecords returns every stored record for a company, with ETag
// support so the dashboard can poll cheaply.
func (h *ReportHandler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company")
	if companyID == "" {
		utils.SendJSONError(w, "Missing 'company' query parameter.", http.StatusBadRequest)
		return
	}

	records, err := h.ingestService.GetRecords(companyID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCompany) {
			utils.SendJSONError(w, fmt.Sprintf("Unknown company identifier: %s", companyID), http.StatusNotFound)
			return
		}
		logger.L.Error("Error retrieving performance records", "company", companyID, "error", err)
		utils.SendJSONError(w, "Error retrieving performance records.", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []models.FundPerformanceRecord{}
	}

	etag, err := utils.GenerateETag(records)
	if err == nil {
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	} else {
		logger.L.Warn("Failed to generate ETag for records response", "company", companyID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"records": records}); err != nil {
		logger.L.Error("Error encoding JSON response for records", "company", companyID, "error", err)
	}
}

// HandleDeleteRecords removes all stored records for a company. This is the
// administrative correction path; the pipeline itself never deletes.
func (h *ReportHandler) HandleDeleteRecords(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company")
	if companyID == "" {
		utils.SendJSONError(w, "Missing 'company' query parameter.", http.StatusBadRequest)
		return
	}

	count, err := h.ingestService.DeleteRecords(companyID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCompany) {
			utils.SendJSONError(w, fmt.Sprintf("Unknown company identifier: %s", companyID), http.StatusNotFound)
			return
		}
		logger.L.Error("Error deleting performance records", "company", companyID, "error", err)
		utils.SendJSONError(w, "Error deleting performance records.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]int64{"deleted": count}); err != nil {
		logger.L.Error("Error encoding JSON response for delete", "company", companyID, "error", err)
	}
}
