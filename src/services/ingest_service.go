package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/fundadvisor/backend/src/logger"
	"github.com/username/fundadvisor/backend/src/model"
	"github.com/username/fundadvisor/backend/src/models"
	"github.com/username/fundadvisor/backend/src/parsers"
	"github.com/username/fundadvisor/backend/src/processors"
	"github.com/username/fundadvisor/backend/src/profiles"
	"github.com/username/fundadvisor/backend/src/security/validation"
)

// Cache key for a company's latest performance snapshot. Shared with the
// recommend service; ingestion invalidates it.
const ckLatestSnapshot = "snap_latest_%s"

type ingestServiceImpl struct {
	canonicalProcessor *processors.CanonicalProcessor
	reportCache        *cache.Cache
}

func NewIngestService(canonicalProcessor *processors.CanonicalProcessor, reportCache *cache.Cache) IngestService {
	return &ingestServiceImpl{
		canonicalProcessor: canonicalProcessor,
		reportCache:        reportCache,
	}
}

// Ingest runs the full pipeline for one uploaded report: profile lookup,
// section location, field extraction, canonicalization, upsert. Only an
// unregistered company identifier or unreadable text aborts the call;
// extraction and mapping gaps ride along as warnings on a partial result.
func (s *ingestServiceImpl) Ingest(companyID string, documentText string) (*IngestResult, error) {
	overallStartTime := time.Now()
	runID := uuid.New().String()
	logger.L.Info("Ingest START", "runID", runID, "company", companyID)

	company := models.CompanyCode(companyID)
	profile, err := profiles.Lookup(company)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompany, err)
	}

	if err := validation.ValidateReportText(documentText); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	// One folding pass up front; every scan downstream expects folded text.
	folded := parsers.FoldText(validation.StripUnprintable(documentText))

	result := &IngestResult{RunID: runID, CompanyCode: company}

	sections, found := parsers.LocateSections(folded, profile)
	if !found {
		result.Warnings = append(result.Warnings, models.NewWarning(models.WarnSectionNotFound,
			"no anchor phrase matched; performance section not found"))
		logger.L.Warn("Performance section not found", "runID", runID, "company", companyID, "profileVersion", profile.Version)
		return result, nil
	}

	for _, section := range sections {
		if d, ok := parsers.ExtractDate(section.Text, profile.DatePatterns); ok {
			result.AsOfDate = d
			result.DateKnown = true
			break
		}
	}
	if !result.DateKnown {
		result.Warnings = append(result.Warnings, models.NewWarning(models.WarnDateUnknown,
			"no date pattern matched; as-of date unknown"))
	}

	entries, extractWarnings := parsers.ExtractEntries(sections, profile)
	result.Warnings = append(result.Warnings, extractWarnings...)

	records, mapWarnings := s.canonicalProcessor.Process(company, result.AsOfDate, entries, profile)
	result.Warnings = append(result.Warnings, mapWarnings...)
	result.Records = records

	if err := model.SaveRecords(records); err != nil {
		return nil, fmt.Errorf("error persisting performance records: %w", err)
	}

	s.reportCache.Delete(fmt.Sprintf(ckLatestSnapshot, company))

	logger.L.Info("Ingest END", "runID", runID, "company", companyID,
		"records", len(records), "warnings", len(result.Warnings),
		"duration", time.Since(overallStartTime))
	return result, nil
}

func (s *ingestServiceImpl) GetRecords(companyID string) ([]models.FundPerformanceRecord, error) {
	company := models.CompanyCode(companyID)
	if _, err := profiles.Lookup(company); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompany, err)
	}
	return model.RecordsByCompany(company)
}

func (s *ingestServiceImpl) DeleteRecords(companyID string) (int64, error) {
	company := models.CompanyCode(companyID)
	if _, err := profiles.Lookup(company); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnknownCompany, err)
	}
	count, err := model.DeleteCompanyRecords(company)
	if err != nil {
		return 0, err
	}
	s.reportCache.Delete(fmt.Sprintf(ckLatestSnapshot, company))
	logger.L.Info("Deleted performance records (administrative correction)", "company", companyID, "count", count)
	return count, nil
}
