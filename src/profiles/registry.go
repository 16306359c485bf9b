package profiles

import (
	"errors"
	"fmt"

	"github.com/username/fundadvisor/backend/src/models"
)

// ErrProfileNotFound is returned for a company identifier with no registered
// parsing profile. The classifier fails loudly on purpose: silently falling
// back to a default profile would extract garbage fields rather than error.
var ErrProfileNotFound = errors.New("no parsing profile registered for company")

var registry = map[models.CompanyCode]*CompanyParsingProfile{
	models.CompanySonyLife: sonyLifeProfile,
	models.CompanyMetLife:  metLifeProfile,
	models.CompanyNissay:   nissayProfile,
}

// Lookup returns the parsing profile for the given carrier, or
// ErrProfileNotFound when the identifier is unregistered.
func Lookup(company models.CompanyCode) (*CompanyParsingProfile, error) {
	profile, ok := registry[company]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, company)
	}
	return profile, nil
}

// RegisteredCompanies lists the carriers with a parsing profile, in no
// particular order.
func RegisteredCompanies() []models.CompanyCode {
	companies := make([]models.CompanyCode, 0, len(registry))
	for code := range registry {
		companies = append(companies, code)
	}
	return companies
}

var sonyLifeProfile = &CompanyParsingProfile{
	Company:      models.CompanySonyLife,
	Version:      3,
	Anchors:      []string{"特別勘定の運用実績", "運用実績の概況"},
	WindowSize:   4000,
	DatePatterns: []string{DateGregorianYMD, DateGregorianMonthEnd, DateImperialEra},
	Accounts: AccountMatching{
		Names: []string{
			"株式型",
			"日本成長株式型",
			"世界コア株式型",
			"世界株式型",
			"債券型",
			"世界債券型",
			"世界リート型",
			"総合型",
			"短期金融市場型",
		},
	},
	// Column layout: 直近1ヶ月 / 直近1年 / 設定来(年率)
	ValueColumns: []string{
		models.FieldMonthlyReturn,
		models.FieldPerformance1Y,
		models.FieldAnnualizedReturn,
	},
	ValueWindow: 160,
	UnitPrice:   true,
	Aliases: map[string]models.FundType{
		"株式型":     models.FundTypeDomesticEquity,
		"日本成長株式型": models.FundTypeDomesticEquity,
		"世界コア株式型": models.FundTypeWorldEquity,
		"世界株式型":   models.FundTypeWorldEquity,
		"債券型":     models.FundTypeBond,
		"世界債券型":   models.FundTypeUSBond,
		"世界リート型":  models.FundTypeREIT,
		"総合型":     models.FundTypeGeneral,
		"短期金融市場型": models.FundTypeMoneyMarket,
	},
}

var metLifeProfile = &CompanyParsingProfile{
	Company:      models.CompanyMetLife,
	Version:      2,
	Anchors:      []string{"ファンドの運用状況", "運用レポート"},
	WindowSize:   3500,
	DatePatterns: []string{DateGregorianYMD, DateImperialEra},
	Accounts: AccountMatching{
		Names: []string{
			"米国株式型",
			"米国債券型",
			"世界株式型",
			"バランス型",
			"マネー・マーケット型",
			"リート型",
		},
	},
	// Column layout: 過去1年 / 過去5年 / 過去10年
	ValueColumns: []string{
		models.FieldPerformance1Y,
		models.FieldTotalReturn5Y,
		models.FieldTotalReturn10Y,
	},
	ValueWindow: 160,
	Aliases: map[string]models.FundType{
		"米国株式型":      models.FundTypeUSEquity,
		"米国債券型":      models.FundTypeUSBond,
		"世界株式型":      models.FundTypeWorldEquity,
		"バランス型":      models.FundTypeGeneral,
		"マネー・マーケット型": models.FundTypeMoneyMarket,
		"リート型":       models.FundTypeREIT,
	},
}

// Nissay reports do not enumerate a stable account list; fund rows are
// recognized by the 〜型 naming convention instead.
var nissayProfile = &CompanyParsingProfile{
	Company:      models.CompanyNissay,
	Version:      1,
	Anchors:      []string{"特別勘定の現況", "運用実績"},
	WindowSize:   3000,
	DatePatterns: []string{DateGregorianMonthEnd, DateGregorianYMD, DateImperialEra},
	Accounts: AccountMatching{
		Pattern: `([\p{Han}\p{Katakana}・ー]{1,20}型)`,
	},
	ValueColumns: []string{models.FieldPerformance1Y},
	ValueWindow:  120,
	Aliases: map[string]models.FundType{
		"日本株式型": models.FundTypeDomesticEquity,
		"外国株式型": models.FundTypeWorldEquity,
		"日本債券型": models.FundTypeBond,
		"外国債券型": models.FundTypeUSBond,
		"不動産型":  models.FundTypeREIT,
		"バランス型": models.FundTypeGeneral,
		"マネー型":  models.FundTypeMoneyMarket,
	},
}
