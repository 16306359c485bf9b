package models

import "time"

// Field keys for the optional return columns a carrier report may publish.
// Parsing profiles declare which columns appear after each account name and
// in what order; the extractor assigns captured tokens by these keys.
const (
	FieldPerformance1Y    = "performance_1y"
	FieldMonthlyReturn    = "monthly_return"
	FieldAnnualizedReturn = "annualized_return"
	FieldTotalReturn1Y    = "total_return_1y"
	FieldTotalReturn5Y    = "total_return_5y"
	FieldTotalReturn10Y   = "total_return_10y"
)

// FundPerformanceRecord is one snapshot of one fund's return figures for one
// company on one as-of date. At most one record exists per
// (CompanyCode, FundType, AsOfDate); re-ingestion of the same report upserts.
type FundPerformanceRecord struct {
	ID          int64       `json:"id,omitempty"`
	CompanyCode CompanyCode `json:"company_code"`
	FundType    FundType    `json:"fund_type"`

	// AsOfDate is the reference date the report itself declares, parsed from
	// the document text. The zero value means the report stated no parseable
	// date; it is never defaulted to the upload time.
	AsOfDate time.Time `json:"as_of_date"`

	// Performance1Y is the trailing one-year return in percent, signed.
	Performance1Y float64 `json:"performance_1y"`

	// LowConfidence marks a record whose account name was present in the
	// report but had no percentage token nearby, so Performance1Y was
	// zero-filled. A genuine 0.0% return has LowConfidence false.
	LowConfidence bool `json:"low_confidence,omitempty"`

	// Optional extended fields. Nil means the report did not publish the
	// column, as opposed to publishing a zero.
	MonthlyReturn    *float64 `json:"monthly_return,omitempty"`
	AnnualizedReturn *float64 `json:"annualized_return,omitempty"`
	TotalReturn1Y    *float64 `json:"total_return_1y,omitempty"`
	TotalReturn5Y    *float64 `json:"total_return_5y,omitempty"`
	TotalReturn10Y   *float64 `json:"total_return_10y,omitempty"`
	UnitPrice        *float64 `json:"unit_price,omitempty"`
}

// SetField assigns a captured percentage value to the record field named by
// one of the Field* keys. Unknown keys are ignored.
func (r *FundPerformanceRecord) SetField(key string, value float64) {
	switch key {
	case FieldPerformance1Y:
		r.Performance1Y = value
	case FieldMonthlyReturn:
		v := value
		r.MonthlyReturn = &v
	case FieldAnnualizedReturn:
		v := value
		r.AnnualizedReturn = &v
	case FieldTotalReturn1Y:
		v := value
		r.TotalReturn1Y = &v
	case FieldTotalReturn5Y:
		v := value
		r.TotalReturn5Y = &v
	case FieldTotalReturn10Y:
		v := value
		r.TotalReturn10Y = &v
	}
}

// PopulatedOptionalFields counts how many optional columns carry a value.
// Used to reconcile duplicate fund types extracted from the same document.
func (r *FundPerformanceRecord) PopulatedOptionalFields() int {
	count := 0
	for _, p := range []*float64{
		r.MonthlyReturn, r.AnnualizedReturn,
		r.TotalReturn1Y, r.TotalReturn5Y, r.TotalReturn10Y,
		r.UnitPrice,
	} {
		if p != nil {
			count++
		}
	}
	return count
}
