package processors

import (
	"strings"
	"time"

	"github.com/username/fundadvisor/backend/src/logger"
	"github.com/username/fundadvisor/backend/src/models"
	"github.com/username/fundadvisor/backend/src/parsers"
	"github.com/username/fundadvisor/backend/src/profiles"
)

// CanonicalProcessor maps extracted entries onto the canonical fund-type
// vocabulary and reconciles duplicates, producing the record set that gets
// persisted. Raw account names do not survive this stage.
type CanonicalProcessor struct{}

func NewCanonicalProcessor() *CanonicalProcessor {
	return &CanonicalProcessor{}
}

type candidate struct {
	record   models.FundPerformanceRecord
	position int
}

// Process maps each entry through the profile's alias table (falling back to
// the suffix heuristic), then reconciles entries that resolved to the same
// fund type: the one with more populated optional fields wins, ties going to
// the later occurrence in the document. Unmappable names are dropped from the
// canonical output but reported as warnings so an engineer can extend the
// alias table.
func (p *CanonicalProcessor) Process(
	company models.CompanyCode,
	asOfDate time.Time,
	entries []parsers.Entry,
	profile *profiles.CompanyParsingProfile,
) ([]models.FundPerformanceRecord, []models.Warning) {
	var warnings []models.Warning
	best := make(map[models.FundType]candidate)

	for _, entry := range entries {
		fundType, ok := profile.Aliases[entry.RawName]
		if !ok {
			fundType, ok = mapBySuffix(entry.RawName)
		}
		if !ok {
			warnings = append(warnings, models.NewWarning(models.WarnNoCanonicalMapping,
				"account %q has no canonical fund type mapping", entry.RawName))
			if logger.L != nil {
				logger.L.Warn("Dropping account with no canonical mapping", "company", company, "rawName", entry.RawName)
			}
			continue
		}

		record := models.FundPerformanceRecord{
			CompanyCode:   company,
			FundType:      fundType,
			AsOfDate:      asOfDate,
			LowConfidence: entry.LowConfidence,
			UnitPrice:     entry.UnitPrice,
		}
		for key, value := range entry.Values {
			record.SetField(key, value)
		}

		current, exists := best[fundType]
		if !exists || betterCandidate(record, entry.Position, current) {
			best[fundType] = candidate{record: record, position: entry.Position}
		}
	}

	// Deterministic output order: canonical vocabulary order.
	var records []models.FundPerformanceRecord
	for _, ft := range models.FundTypes {
		if c, ok := best[ft]; ok {
			records = append(records, c.record)
		}
	}
	return records, warnings
}

// betterCandidate prefers the record with more populated optional fields,
// then the later document occurrence.
func betterCandidate(record models.FundPerformanceRecord, position int, current candidate) bool {
	newCount := record.PopulatedOptionalFields()
	curCount := current.record.PopulatedOptionalFields()
	if newCount != curCount {
		return newCount > curCount
	}
	return position >= current.position
}

// mapBySuffix maps account names missing from the alias table onto the
// nearest canonical category by their naming convention. Order matters:
// family keywords (リート, マネー, バランス) are checked before the broad
// 株式/債券 suffixes.
func mapBySuffix(name string) (models.FundType, bool) {
	switch {
	case containsAny(name, "リート", "不動産", "REIT"):
		return models.FundTypeREIT, true
	case containsAny(name, "マネー", "短期"):
		return models.FundTypeMoneyMarket, true
	case containsAny(name, "バランス", "総合"):
		return models.FundTypeGeneral, true
	case strings.HasSuffix(name, "株式型"):
		switch {
		case strings.Contains(name, "米国"):
			return models.FundTypeUSEquity, true
		case containsAny(name, "世界", "外国", "海外", "グローバル"):
			return models.FundTypeWorldEquity, true
		}
		return models.FundTypeDomesticEquity, true
	case strings.HasSuffix(name, "債券型"):
		if strings.Contains(name, "米国") {
			return models.FundTypeUSBond, true
		}
		return models.FundTypeBond, true
	}
	return "", false
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
