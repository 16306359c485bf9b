package processors

import (
	"sort"

	"github.com/username/fundadvisor/backend/src/models"
	"github.com/username/fundadvisor/backend/src/utils"
)

// AllocationProcessor turns the latest performance snapshot into a
// recommended allocation vector. The recommendation is a deterministic,
// human-auditable scoring heuristic: weights proportional to one-year
// performance within the risk profile's eligible set, rounded to a 10%
// step for presentation stability.
type AllocationProcessor struct{}

func NewAllocationProcessor() *AllocationProcessor {
	return &AllocationProcessor{}
}

// strategy parameterizes weight derivation: which fund types are considered
// and how their performance is scaled. Conservative and aggressive are
// parameter bundles; balanced is a blend of the two rather than a third
// hand-written branch.
type strategy struct {
	eligible   func(ft models.FundType, perf float64) bool
	multiplier func(ft models.FundType) float64
}

var aggressiveStrategy = strategy{
	eligible: func(ft models.FundType, perf float64) bool {
		return models.GrowthFundTypes[ft] && perf >= 0
	},
	multiplier: func(models.FundType) float64 { return 1 },
}

var conservativeStrategy = strategy{
	eligible: func(ft models.FundType, perf float64) bool {
		return perf >= 0
	},
	multiplier: func(ft models.FundType) float64 {
		switch {
		case models.BondFundTypes[ft]:
			return 1.5
		case models.EquityFundTypes[ft]:
			return 0.5
		}
		return 1
	},
}

const balancedAggressiveShare = 0.6

// Recommend computes the allocation vector for one company's latest snapshot
// (fund type -> one-year performance) under the given risk profile. Funds
// with negative performance always receive 0%. When no fund is eligible the
// vector is all-zero, which callers must treat as "no recommendation
// available".
func (p *AllocationProcessor) Recommend(snapshot map[models.FundType]float64, risk models.RiskProfile) models.AllocationVector {
	var weights map[models.FundType]float64
	switch risk {
	case models.RiskAggressive:
		weights = deriveWeights(snapshot, aggressiveStrategy)
	case models.RiskConservative:
		weights = deriveWeights(snapshot, conservativeStrategy)
	default: // balanced
		weights = blend(
			deriveWeights(snapshot, aggressiveStrategy),
			deriveWeights(snapshot, conservativeStrategy),
			balancedAggressiveShare,
		)
	}
	return roundVector(weights, snapshot)
}

// deriveWeights returns normalized fractional weights (summing to 1) over the
// strategy's eligible set, proportional to multiplier-scaled performance.
// Falls back to equal weights when the scaled sum is zero or every eligible
// fund is tied. Returns an empty map when nothing is eligible.
func deriveWeights(snapshot map[models.FundType]float64, strat strategy) map[models.FundType]float64 {
	scaled := make(map[models.FundType]float64)
	sum := 0.0
	allTied := true
	var firstPerf float64
	first := true
	for _, ft := range models.FundTypes {
		perf, ok := snapshot[ft]
		if !ok || !strat.eligible(ft, perf) {
			continue
		}
		if first {
			firstPerf = perf
			first = false
		} else if perf != firstPerf {
			allTied = false
		}
		w := perf * strat.multiplier(ft)
		scaled[ft] = w
		sum += w
	}
	if len(scaled) == 0 {
		return scaled
	}

	weights := make(map[models.FundType]float64, len(scaled))
	if sum == 0 || allTied {
		equal := 1.0 / float64(len(scaled))
		for ft := range scaled {
			weights[ft] = equal
		}
		return weights
	}
	for ft, w := range scaled {
		weights[ft] = w / sum
	}
	return weights
}

// blend combines two weight vectors at the given share for the first, then
// renormalizes. When one side has no eligible funds the other side carries
// the whole recommendation.
func blend(a, b map[models.FundType]float64, aShare float64) map[models.FundType]float64 {
	combined := make(map[models.FundType]float64)
	total := 0.0
	for _, ft := range models.FundTypes {
		w := aShare*a[ft] + (1-aShare)*b[ft]
		if w > 0 {
			combined[ft] = w
			total += w
		}
	}
	if total == 0 {
		return map[models.FundType]float64{}
	}
	for ft := range combined {
		combined[ft] /= total
	}
	return combined
}

// roundVector rounds fractional weights to the nearest multiple of ten and
// applies the rounding residual entirely to the highest-performing eligible
// fund. The residual jump is an intentional, documented policy: determinism
// and a human-legible step size over smoothness. Should the correction push
// a fund below zero, the deficit cascades to the next-best performer so the
// vector invariants (values >= 0, total exactly 100) always hold.
func roundVector(weights map[models.FundType]float64, snapshot map[models.FundType]float64) models.AllocationVector {
	vector := models.NewAllocationVector()
	if len(weights) == 0 {
		return vector
	}

	total := 0
	eligible := make([]models.FundType, 0, len(weights))
	for _, ft := range models.FundTypes {
		w, ok := weights[ft]
		if !ok {
			continue
		}
		eligible = append(eligible, ft)
		pct := utils.RoundToStep(w*100, 10)
		vector[ft] = pct
		total += pct
	}

	// Rank eligible funds by performance, ties by canonical order.
	sort.SliceStable(eligible, func(i, j int) bool {
		return snapshot[eligible[i]] > snapshot[eligible[j]]
	})

	residual := 100 - total
	for _, ft := range eligible {
		adjusted := vector[ft] + residual
		if adjusted < 0 {
			residual = adjusted
			vector[ft] = 0
			continue
		}
		vector[ft] = adjusted
		break
	}
	return vector
}
