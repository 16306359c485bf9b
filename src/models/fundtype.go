package models

import "fmt"

// FundType is the canonical fund category vocabulary. Every carrier-specific
// account name must be mapped to one of these before anything is persisted;
// no raw name survives past canonicalization.
type FundType string

const (
	FundTypeGeneral        FundType = "general"
	FundTypeBond           FundType = "bond"
	FundTypeDomesticEquity FundType = "domestic_equity"
	FundTypeUSBond         FundType = "us_bond"
	FundTypeUSEquity       FundType = "us_equity"
	FundTypeREIT           FundType = "reit"
	FundTypeWorldEquity    FundType = "world_equity"
	FundTypeMoneyMarket    FundType = "money_market"
)

// FundTypes is the canonical iteration order. Allocation math and JSON output
// walk this slice so results are deterministic.
var FundTypes = []FundType{
	FundTypeGeneral,
	FundTypeBond,
	FundTypeDomesticEquity,
	FundTypeUSBond,
	FundTypeUSEquity,
	FundTypeREIT,
	FundTypeWorldEquity,
	FundTypeMoneyMarket,
}

// IsValidFundType reports whether s is a member of the canonical vocabulary.
func IsValidFundType(s string) bool {
	for _, ft := range FundTypes {
		if string(ft) == s {
			return true
		}
	}
	return false
}

// GrowthFundTypes are the growth-oriented categories considered by the
// aggressive risk profile.
var GrowthFundTypes = map[FundType]bool{
	FundTypeDomesticEquity: true,
	FundTypeUSEquity:       true,
	FundTypeREIT:           true,
}

// BondFundTypes are the fixed-income categories overweighted by the
// conservative risk profile.
var BondFundTypes = map[FundType]bool{
	FundTypeBond:        true,
	FundTypeUSBond:      true,
	FundTypeMoneyMarket: true,
}

// EquityFundTypes are the equity-like categories underweighted by the
// conservative risk profile.
var EquityFundTypes = map[FundType]bool{
	FundTypeDomesticEquity: true,
	FundTypeUSEquity:       true,
	FundTypeWorldEquity:    true,
	FundTypeREIT:           true,
}

// CompanyCode identifies the issuing carrier. The set is fixed and maintained
// alongside the parsing profile registry.
type CompanyCode string

const (
	CompanySonyLife CompanyCode = "sonylife"
	CompanyMetLife  CompanyCode = "metlife"
	CompanyNissay   CompanyCode = "nissay"
)

// RiskProfile selects the allocation strategy.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskBalanced     RiskProfile = "balanced"
	RiskAggressive   RiskProfile = "aggressive"
)

// ParseRiskProfile validates a caller-supplied risk profile string.
func ParseRiskProfile(s string) (RiskProfile, error) {
	switch RiskProfile(s) {
	case RiskConservative, RiskBalanced, RiskAggressive:
		return RiskProfile(s), nil
	}
	return "", fmt.Errorf("invalid risk profile: %q", s)
}
