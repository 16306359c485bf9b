package parsers

import (
	"testing"

	"github.com/username/fundadvisor/backend/src/models"
	"github.com/username/fundadvisor/backend/src/profiles"
)

func literalProfile() *profiles.CompanyParsingProfile {
	return &profiles.CompanyParsingProfile{
		Company: models.CompanySonyLife,
		Accounts: profiles.AccountMatching{
			Names: []string{"株式型", "日本成長株式型", "債券型", "総合型"},
		},
		ValueColumns: []string{
			models.FieldMonthlyReturn,
			models.FieldPerformance1Y,
			models.FieldAnnualizedReturn,
		},
		ValueWindow: 160,
		UnitPrice:   true,
	}
}

func TestExtractEntriesLiteralNames(t *testing.T) {
	text := FoldText("総合型  13,512.34円  直近1ヶ月 ＋0.8％ 直近1年 ＋12.4％ 設定来 ＋3.2％ " +
		"債券型  10,088.10円  直近1ヶ月 ▲0.1％ 直近1年 ＋3.1％ 設定来 ＋1.0％")
	sections := []Section{{Text: text, Offset: 0}}

	entries, warnings := ExtractEntries(sections, literalProfile())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	general := entries[0]
	if general.RawName != "総合型" {
		t.Fatalf("entries out of document order: first is %q", general.RawName)
	}
	if got := general.Values[models.FieldMonthlyReturn]; got != 0.8 {
		t.Errorf("monthly return = %v, want 0.8", got)
	}
	if got := general.Values[models.FieldPerformance1Y]; got != 12.4 {
		t.Errorf("one-year performance = %v, want 12.4", got)
	}
	if got := general.Values[models.FieldAnnualizedReturn]; got != 3.2 {
		t.Errorf("annualized return = %v, want 3.2", got)
	}
	if general.UnitPrice == nil || *general.UnitPrice != 13512.34 {
		t.Errorf("unit price = %v, want 13512.34", general.UnitPrice)
	}
	if general.LowConfidence {
		t.Error("fully populated row must not be low confidence")
	}

	bond := entries[1]
	if got := bond.Values[models.FieldMonthlyReturn]; got != -0.1 {
		t.Errorf("bond monthly return = %v, want -0.1", got)
	}
	if got := bond.Values[models.FieldPerformance1Y]; got != 3.1 {
		t.Errorf("bond one-year performance = %v, want 3.1", got)
	}
}

func TestExtractEntriesMissingValueIsZeroedAndFlagged(t *testing.T) {
	// The table header lists the account but its row carries no figures.
	sections := []Section{{Text: "株式型 （当該期間の運用実績は算出されていません）"}}

	entries, warnings := ExtractEntries(sections, literalProfile())
	if len(entries) != 1 {
		t.Fatalf("expected the account to survive without values, got %d entries", len(entries))
	}
	entry := entries[0]
	if got := entry.Values[models.FieldPerformance1Y]; got != 0 {
		t.Errorf("missing one-year performance must be recorded as 0, got %v", got)
	}
	if !entry.LowConfidence {
		t.Error("entry with no nearby figure must be flagged low confidence")
	}
	if len(warnings) != 1 || warnings[0].Code != models.WarnValueNotFound {
		t.Errorf("expected a single value-not-found warning, got %v", warnings)
	}
}

func TestExtractEntriesLongestNameWins(t *testing.T) {
	sections := []Section{{Text: FoldText("日本成長株式型 直近1ヶ月 +1.2% 直近1年 +18.7% 設定来 +6.0%")}}

	entries, _ := ExtractEntries(sections, literalProfile())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d (株式型 must not claim the tail of 日本成長株式型)", len(entries))
	}
	if entries[0].RawName != "日本成長株式型" {
		t.Errorf("matched %q, want 日本成長株式型", entries[0].RawName)
	}
	if got := entries[0].Values[models.FieldPerformance1Y]; got != 18.7 {
		t.Errorf("one-year performance = %v, want 18.7", got)
	}
}

func TestExtractEntriesWindowStopsAtNextAccount(t *testing.T) {
	profile := literalProfile()
	profile.ValueColumns = []string{models.FieldPerformance1Y}
	profile.UnitPrice = false

	// Both rows fit inside one value window; each account must only see the
	// figure printed on its own row.
	sections := []Section{{Text: "株式型 +12.4% 債券型 +3.1%"}}

	entries, _ := ExtractEntries(sections, profile)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].Values[models.FieldPerformance1Y]; got != 12.4 {
		t.Errorf("first row captured %v, want 12.4", got)
	}
	if got := entries[1].Values[models.FieldPerformance1Y]; got != 3.1 {
		t.Errorf("second row captured %v, want 3.1", got)
	}
}

func TestExtractEntriesGenericPattern(t *testing.T) {
	profile := &profiles.CompanyParsingProfile{
		Company: models.CompanyNissay,
		Accounts: profiles.AccountMatching{
			Pattern: `([\p{Han}\p{Katakana}・ー]{1,20}型)`,
		},
		ValueColumns: []string{models.FieldPerformance1Y},
		ValueWindow:  120,
	}
	sections := []Section{{Text: FoldText("日本株式型 ＋18.7％ 日本債券型 ＋3.1％ 不動産型 ▲2.0％")}}

	entries, warnings := ExtractEntries(sections, profile)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := map[string]float64{"日本株式型": 18.7, "日本債券型": 3.1, "不動産型": -2.0}
	for _, entry := range entries {
		if got := entry.Values[models.FieldPerformance1Y]; got != want[entry.RawName] {
			t.Errorf("%s: performance = %v, want %v", entry.RawName, got, want[entry.RawName])
		}
	}
}
