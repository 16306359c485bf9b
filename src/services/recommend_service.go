package services

import (
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/username/fundadvisor/backend/src/logger"
	"github.com/username/fundadvisor/backend/src/model"
	"github.com/username/fundadvisor/backend/src/models"
	"github.com/username/fundadvisor/backend/src/processors"
	"github.com/username/fundadvisor/backend/src/profiles"
)

type recommendServiceImpl struct {
	allocationProcessor *processors.AllocationProcessor
	reportCache         *cache.Cache
}

func NewRecommendService(allocationProcessor *processors.AllocationProcessor, reportCache *cache.Cache) RecommendService {
	return &recommendServiceImpl{
		allocationProcessor: allocationProcessor,
		reportCache:         reportCache,
	}
}

// Recommend reads the latest persisted snapshot for the company and derives
// the allocation vector for the requested risk profile. An all-zero vector is
// returned together with ErrNoRecommendation so callers cannot mistake it for
// a valid balanced allocation.
func (s *recommendServiceImpl) Recommend(companyID string, risk models.RiskProfile) (models.AllocationVector, error) {
	company := models.CompanyCode(companyID)
	if _, err := profiles.Lookup(company); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompany, err)
	}

	records, err := s.latestSnapshot(company)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, company)
	}

	snapshot := make(map[models.FundType]float64, len(records))
	for _, r := range records {
		snapshot[r.FundType] = r.Performance1Y
	}

	vector := s.allocationProcessor.Recommend(snapshot, risk)
	if vector.Total() == 0 {
		return vector, fmt.Errorf("%w: no fund with non-negative performance", ErrNoRecommendation)
	}
	return vector, nil
}

func (s *recommendServiceImpl) latestSnapshot(company models.CompanyCode) ([]models.FundPerformanceRecord, error) {
	cacheKey := fmt.Sprintf(ckLatestSnapshot, company)
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for latest snapshot", "company", company)
		return cached.([]models.FundPerformanceRecord), nil
	}

	logger.L.Debug("Cache miss for latest snapshot, querying DB", "company", company)
	records, err := model.LatestSnapshot(company)
	if err != nil {
		return nil, err
	}
	s.reportCache.Set(cacheKey, records, cache.DefaultExpiration)
	return records, nil
}
