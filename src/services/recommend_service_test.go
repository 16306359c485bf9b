package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/username/fundadvisor/backend/src/models"
)

func TestRecommendFromIngestedReport(t *testing.T) {
	ingest, recommend := newTestServices()
	cleanupCompany(t, ingest, "nissay")

	if _, err := ingest.Ingest("nissay", nissayReportText); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	balanced, err := recommend.Recommend("nissay", models.RiskBalanced)
	if err != nil {
		t.Fatalf("balanced: %v", err)
	}
	wantBalanced := models.AllocationVector{
		models.FundTypeDomesticEquity: 70,
		models.FundTypeGeneral:        20,
		models.FundTypeBond:           10,
		models.FundTypeREIT:           0,
	}
	for ft, pct := range wantBalanced {
		if balanced[ft] != pct {
			t.Errorf("balanced %s = %d, want %d", ft, balanced[ft], pct)
		}
	}

	conservative, err := recommend.Recommend("nissay", models.RiskConservative)
	if err != nil {
		t.Fatalf("conservative: %v", err)
	}
	wantConservative := models.AllocationVector{
		models.FundTypeGeneral:        50,
		models.FundTypeBond:           20,
		models.FundTypeDomesticEquity: 30,
	}
	for ft, pct := range wantConservative {
		if conservative[ft] != pct {
			t.Errorf("conservative %s = %d, want %d", ft, conservative[ft], pct)
		}
	}

	aggressive, err := recommend.Recommend("nissay", models.RiskAggressive)
	if err != nil {
		t.Fatalf("aggressive: %v", err)
	}
	if aggressive[models.FundTypeDomesticEquity] != 100 {
		t.Errorf("aggressive equity = %d, want 100", aggressive[models.FundTypeDomesticEquity])
	}

	for _, vector := range []models.AllocationVector{balanced, conservative, aggressive} {
		if vector.Total() != 100 {
			t.Errorf("total = %d, want 100", vector.Total())
		}
	}
}

func TestRecommendNoDataStored(t *testing.T) {
	_, recommend := newTestServices()
	if _, err := recommend.Recommend("metlife", models.RiskBalanced); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestRecommendUnknownCompany(t *testing.T) {
	_, recommend := newTestServices()
	if _, err := recommend.Recommend("zurich", models.RiskBalanced); !errors.Is(err, ErrUnknownCompany) {
		t.Errorf("expected ErrUnknownCompany, got %v", err)
	}
}

func TestRecommendAllNegativeSnapshot(t *testing.T) {
	ingest, recommend := newTestServices()
	cleanupCompany(t, ingest, "nissay")

	report := `日本生命 特別勘定の現況 2025年7月末現在
不動産型 ▲2.0％
`
	if _, err := ingest.Ingest("nissay", report); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	vector, err := recommend.Recommend("nissay", models.RiskBalanced)
	if !errors.Is(err, ErrNoRecommendation) {
		t.Fatalf("expected ErrNoRecommendation, got %v", err)
	}
	if vector.Total() != 0 {
		t.Errorf("zero vector expected alongside ErrNoRecommendation, got total %d", vector.Total())
	}
}

func TestRecommendReflectsReIngestedFigures(t *testing.T) {
	ingest, recommend := newTestServices()
	cleanupCompany(t, ingest, "nissay")

	if _, err := ingest.Ingest("nissay", nissayReportText); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if _, err := recommend.Recommend("nissay", models.RiskAggressive); err != nil {
		t.Fatalf("priming recommendation: %v", err)
	}

	// Same as-of date, equities now negative. The cached snapshot must be
	// invalidated by the second ingest.
	revised := strings.Replace(nissayReportText, "日本株式型 ＋18.7％", "日本株式型 ▲4.2％", 1)
	if _, err := ingest.Ingest("nissay", revised); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	vector, err := recommend.Recommend("nissay", models.RiskAggressive)
	if !errors.Is(err, ErrNoRecommendation) {
		t.Fatalf("expected ErrNoRecommendation after revision, got %v (vector %v)", err, vector)
	}
}
