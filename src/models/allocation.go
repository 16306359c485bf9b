package models

// AllocationVector maps each canonical fund type to an integer percentage.
// All values are >= 0. The total is exactly 100 when at least one fund was
// eligible under the selected risk profile, and 0 when none was; an all-zero
// vector means "no recommendation available", not an even split.
type AllocationVector map[FundType]int

// NewAllocationVector returns a vector with every canonical fund type at 0%.
func NewAllocationVector() AllocationVector {
	v := make(AllocationVector, len(FundTypes))
	for _, ft := range FundTypes {
		v[ft] = 0
	}
	return v
}

// Total returns the sum of all percentages.
func (v AllocationVector) Total() int {
	total := 0
	for _, pct := range v {
		total += pct
	}
	return total
}
