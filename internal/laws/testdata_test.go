package laws

import (
	"context"
	"testing"
)

func seedUnits() []LegalUnit {
	return []LegalUnit{
		{ID: 1, Act: "Tenancy Act", Section: "12", Title: "Security deposit", State: "KA", Summary: "Deposit capped at two months rent.", Tags: "deposit,penalty", RiskLevel: "high", RawMetadata: `{"year":1999}`},
		{ID: 2, Act: "Tenancy Act", Section: "14", Title: "Notice period", State: "MH", Summary: "Notice of one month is required.", Tags: "notice", RiskLevel: "low"},
		{ID: 3, Act: "Contract Act", Section: "74", Title: "Liquidated damages", State: "KA", Summary: "Reasonable compensation for breach.", Tags: "Penalty,damages", RiskLevel: "medium", RawMetadata: `{not json`},
	}
}

func newSeededRepo(t *testing.T) *MemoryRepo {
	t.Helper()
	repo := NewMemoryRepo()
	if _, err := repo.InsertMany(context.Background(), seedUnits()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}
