package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/fundadvisor/backend/src/database"
	"github.com/username/fundadvisor/backend/src/logger"
	"github.com/username/fundadvisor/backend/src/models"
	"github.com/username/fundadvisor/backend/src/processors"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")

	dir, err := os.MkdirTemp("", "fundadvisor-test-")
	if err != nil {
		panic(err)
	}
	database.InitDB(filepath.Join(dir, "test.db"))

	code := m.Run()
	database.DB.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestServices() (IngestService, RecommendService) {
	reportCache := cache.New(5*time.Minute, 10*time.Minute)
	ingest := NewIngestService(processors.NewCanonicalProcessor(), reportCache)
	recommend := NewRecommendService(processors.NewAllocationProcessor(), reportCache)
	return ingest, recommend
}

func cleanupCompany(t *testing.T, svc IngestService, companyID string) {
	t.Cleanup(func() {
		if _, err := svc.DeleteRecords(companyID); err != nil {
			t.Errorf("cleanup for %s failed: %v", companyID, err)
		}
	})
}

const sonyReportText = `ソニー生命 変額保険 運用レポート
特別勘定の運用実績 ２０２５年７月３１日現在
総合型 13,512.34円 直近1ヶ月 ＋0.8％ 直近1年 ＋12.4％ 設定来 ＋3.2％
債券型 10,088.10円 直近1ヶ月 ▲0.1％ 直近1年 ＋3.1％ 設定来 ＋1.0％
株式型 21,450.00円 直近1ヶ月 ＋1.5％ 直近1年 ＋18.7％ 設定来 ＋6.4％
世界リート型 9,870.55円 直近1ヶ月 ▲0.3％ 直近1年 ▲2.0％ 設定来 ＋0.9％
`

const metLifeReportText = `メットライフ生命 ファンドの運用状況 2025年7月31日現在
米国株式型 過去1年 +18.7% 過去5年 +9.1% 過去10年 +7.5%
米国債券型 過去1年 +3.1% 過去5年 +1.8% 過去10年 +2.2%
リート型 過去1年 ▲2.0% 過去5年 +3.0% 過去10年 +4.1%
`

const nissayReportText = `日本生命 特別勘定の現況 2025年7月末現在
日本株式型 ＋18.7％
日本債券型 ＋3.1％
バランス型 ＋12.4％
不動産型 ▲2.0％
`

var july31 = time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

func TestIngestSonyLifeReport(t *testing.T) {
	ingest, _ := newTestServices()
	cleanupCompany(t, ingest, "sonylife")

	result, err := ingest.Ingest("sonylife", sonyReportText)
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if result.RunID == "" {
		t.Error("result carries no run ID")
	}
	if !result.DateKnown || !result.AsOfDate.Equal(july31) {
		t.Errorf("as-of date = (%v, known=%v), want 2025-07-31", result.AsOfDate, result.DateKnown)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	wantPerf := map[models.FundType]float64{
		models.FundTypeGeneral:        12.4,
		models.FundTypeBond:           3.1,
		models.FundTypeDomesticEquity: 18.7,
		models.FundTypeREIT:           -2.0,
	}
	if len(result.Records) != len(wantPerf) {
		t.Fatalf("expected %d records, got %d", len(wantPerf), len(result.Records))
	}
	for _, r := range result.Records {
		want, ok := wantPerf[r.FundType]
		if !ok {
			t.Errorf("unexpected fund type %s", r.FundType)
			continue
		}
		if r.Performance1Y != want {
			t.Errorf("%s: performance = %v, want %v", r.FundType, r.Performance1Y, want)
		}
		if r.LowConfidence {
			t.Errorf("%s: flagged low confidence despite figures present", r.FundType)
		}
		if r.UnitPrice == nil {
			t.Errorf("%s: unit price missing", r.FundType)
		}
		if r.MonthlyReturn == nil || r.AnnualizedReturn == nil {
			t.Errorf("%s: extended columns missing", r.FundType)
		}
		if !models.IsValidFundType(string(r.FundType)) {
			t.Errorf("record carries fund type outside the canonical vocabulary: %q", r.FundType)
		}
	}

	stored, err := ingest.GetRecords("sonylife")
	if err != nil {
		t.Fatalf("GetRecords: %v", err)
	}
	if len(stored) != len(wantPerf) {
		t.Errorf("expected %d persisted records, got %d", len(wantPerf), len(stored))
	}
}

func TestIngestMetLifeReport(t *testing.T) {
	ingest, _ := newTestServices()
	cleanupCompany(t, ingest, "metlife")

	result, err := ingest.Ingest("metlife", metLifeReportText)
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(result.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(result.Records))
	}

	byType := make(map[models.FundType]models.FundPerformanceRecord)
	for _, r := range result.Records {
		byType[r.FundType] = r
	}
	usEquity, ok := byType[models.FundTypeUSEquity]
	if !ok {
		t.Fatal("米国株式型 did not map to us_equity")
	}
	if usEquity.Performance1Y != 18.7 {
		t.Errorf("us_equity performance = %v, want 18.7", usEquity.Performance1Y)
	}
	if usEquity.TotalReturn5Y == nil || *usEquity.TotalReturn5Y != 9.1 {
		t.Errorf("us_equity 5y total return = %v, want 9.1", usEquity.TotalReturn5Y)
	}
	if usEquity.TotalReturn10Y == nil || *usEquity.TotalReturn10Y != 7.5 {
		t.Errorf("us_equity 10y total return = %v, want 7.5", usEquity.TotalReturn10Y)
	}
	if reit, ok := byType[models.FundTypeREIT]; !ok || reit.Performance1Y != -2.0 {
		t.Errorf("リート型 with ▲ sign: got %+v, want -2.0", byType[models.FundTypeREIT])
	}
	if _, ok := byType[models.FundTypeUSBond]; !ok {
		t.Error("米国債券型 did not map to us_bond")
	}
}

func TestIngestNissayReport(t *testing.T) {
	ingest, _ := newTestServices()
	cleanupCompany(t, ingest, "nissay")

	result, err := ingest.Ingest("nissay", nissayReportText)
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if !result.DateKnown || !result.AsOfDate.Equal(july31) {
		t.Errorf("month-end date: got (%v, known=%v), want 2025-07-31", result.AsOfDate, result.DateKnown)
	}

	wantPerf := map[models.FundType]float64{
		models.FundTypeDomesticEquity: 18.7,
		models.FundTypeBond:           3.1,
		models.FundTypeGeneral:        12.4,
		models.FundTypeREIT:           -2.0,
	}
	if len(result.Records) != len(wantPerf) {
		t.Fatalf("expected %d records, got %d: %+v", len(wantPerf), len(result.Records), result.Records)
	}
	for _, r := range result.Records {
		if r.Performance1Y != wantPerf[r.FundType] {
			t.Errorf("%s: performance = %v, want %v", r.FundType, r.Performance1Y, wantPerf[r.FundType])
		}
	}
}

func TestIngestUnknownCompany(t *testing.T) {
	ingest, _ := newTestServices()
	_, err := ingest.Ingest("zurich", sonyReportText)
	if !errors.Is(err, ErrUnknownCompany) {
		t.Errorf("expected ErrUnknownCompany, got %v", err)
	}
}

func TestIngestUnreadableText(t *testing.T) {
	ingest, _ := newTestServices()
	if _, err := ingest.Ingest("sonylife", ""); !errors.Is(err, ErrParsingFailed) {
		t.Errorf("empty text: expected ErrParsingFailed, got %v", err)
	}
	if _, err := ingest.Ingest("sonylife", "\xff\xfe broken"); !errors.Is(err, ErrParsingFailed) {
		t.Errorf("invalid UTF-8: expected ErrParsingFailed, got %v", err)
	}
}

func TestIngestNoAnchorIsWarningNotError(t *testing.T) {
	ingest, _ := newTestServices()
	cleanupCompany(t, ingest, "sonylife")

	result, err := ingest.Ingest("sonylife", "この書類には運用情報が含まれていません。解約控除は最大5.0%です。")
	if err != nil {
		t.Fatalf("missing section must not abort the call: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("no section located but %d records produced", len(result.Records))
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != models.WarnSectionNotFound {
		t.Errorf("expected a single section-not-found warning, got %v", result.Warnings)
	}

	stored, err := ingest.GetRecords("sonylife")
	if err != nil {
		t.Fatalf("GetRecords: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("nothing should be persisted, found %d records", len(stored))
	}
}

func TestIngestUnknownDate(t *testing.T) {
	ingest, _ := newTestServices()
	cleanupCompany(t, ingest, "metlife")

	undated := `メットライフ生命 ファンドの運用状況
米国株式型 過去1年 +10.0% 過去5年 +8.0% 過去10年 +6.0%
`
	result, err := ingest.Ingest("metlife", undated)
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if result.DateKnown || !result.AsOfDate.IsZero() {
		t.Errorf("expected unknown date, got (%v, known=%v)", result.AsOfDate, result.DateKnown)
	}
	dateWarned := false
	for _, w := range result.Warnings {
		if w.Code == models.WarnDateUnknown {
			dateWarned = true
		}
	}
	if !dateWarned {
		t.Errorf("missing date-unknown warning in %v", result.Warnings)
	}
	if len(result.Records) != 1 {
		t.Fatalf("records must persist even without a date, got %d", len(result.Records))
	}

	stored, err := ingest.GetRecords("metlife")
	if err != nil {
		t.Fatalf("GetRecords: %v", err)
	}
	if len(stored) != 1 || !stored[0].AsOfDate.IsZero() {
		t.Errorf("undated record round-trip failed: %+v", stored)
	}
}

func TestIngestSameReportTwiceUpserts(t *testing.T) {
	ingest, _ := newTestServices()
	cleanupCompany(t, ingest, "sonylife")

	if _, err := ingest.Ingest("sonylife", sonyReportText); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if _, err := ingest.Ingest("sonylife", sonyReportText); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	stored, err := ingest.GetRecords("sonylife")
	if err != nil {
		t.Fatalf("GetRecords: %v", err)
	}
	if len(stored) != 4 {
		t.Errorf("re-ingesting the same report must not duplicate rows: got %d, want 4", len(stored))
	}
}

func TestDeleteRecords(t *testing.T) {
	ingest, _ := newTestServices()

	if _, err := ingest.Ingest("nissay", nissayReportText); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	count, err := ingest.DeleteRecords("nissay")
	if err != nil {
		t.Fatalf("DeleteRecords: %v", err)
	}
	if count != 4 {
		t.Errorf("deleted %d rows, want 4", count)
	}

	stored, err := ingest.GetRecords("nissay")
	if err != nil {
		t.Fatalf("GetRecords: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("records remain after delete: %d", len(stored))
	}

	if _, err := ingest.DeleteRecords("zurich"); !errors.Is(err, ErrUnknownCompany) {
		t.Errorf("expected ErrUnknownCompany, got %v", err)
	}
}
