package services

import (
	"errors"
	"time"

	"github.com/username/fundadvisor/backend/src/models"
)

var (
	// ErrUnknownCompany is the one configuration error the ingestion API
	// surfaces: an unregistered company identifier. It aborts the call;
	// everything recoverable becomes a warning instead.
	ErrUnknownCompany = errors.New("unknown company identifier")

	// ErrParsingFailed covers document text the pipeline cannot even begin
	// to scan (empty, not valid UTF-8).
	ErrParsingFailed = errors.New("error parsing report text")

	// ErrNoData means no performance snapshot has been ingested for the
	// company yet.
	ErrNoData = errors.New("no performance data stored for company")

	// ErrNoRecommendation accompanies an all-zero allocation vector: no fund
	// in the snapshot had non-negative performance, so there is nothing to
	// recommend. Callers must not present the zero vector as an allocation.
	ErrNoRecommendation = errors.New("no recommendation available")
)

// IngestResult is what one ingestion run hands back to the caller: the
// canonical records that were persisted plus every recoverable problem that
// was downgraded to a warning along the way.
type IngestResult struct {
	RunID       string                         `json:"run_id"`
	CompanyCode models.CompanyCode             `json:"company_code"`
	AsOfDate    time.Time                      `json:"as_of_date"`
	DateKnown   bool                           `json:"date_known"`
	Records     []models.FundPerformanceRecord `json:"records"`
	Warnings    []models.Warning               `json:"warnings"`
}

// IngestService runs the report ingestion pipeline and owns the stored
// record set.
type IngestService interface {
	Ingest(companyID string, documentText string) (*IngestResult, error)
	GetRecords(companyID string) ([]models.FundPerformanceRecord, error)
	DeleteRecords(companyID string) (int64, error)
}

// RecommendService computes allocation recommendations from the latest
// persisted snapshot.
type RecommendService interface {
	Recommend(companyID string, risk models.RiskProfile) (models.AllocationVector, error)
}
