package core

import (
	"context"
	"testing"
)

func TestScan_Smoke(t *testing.T) {
	res, err := Scan(context.Background(), Config{NoCache: true}, Request{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if res.Summary.TotalFiles != 0 {
		t.Fatalf("empty dir should scan zero files, got %+v", res.Summary)
	}
	ids := CategoryIDs()
	if len(ids) == 0 {
		t.Fatal("expected non-empty category IDs")
	}
}

func TestRiskRecords(t *testing.T) {
	recs := RiskRecords([]string{"A03:2021", "nope", "API1:2023"})
	if len(recs) != 2 {
		t.Fatalf("expected two resolved records, got %+v", recs)
	}
	if recs[0].ID != "A03:2021" || recs[1].ID != "API1:2023" {
		t.Fatalf("unexpected order or ids: %+v", recs)
	}
	if len(WebRisks()) != 10 || len(APIRisks()) != 10 {
		t.Fatalf("risk tables incomplete")
	}
	if len(SearchRisks("injection")) == 0 {
		t.Fatalf("substring search found nothing")
	}
}

func TestParseResponse_Facade(t *testing.T) {
	res := ParseResponse(`{"findings": [], "summary": "clean"}`)
	if res.Summary != "clean" || res.Findings == nil {
		t.Fatalf("facade parse failed: %+v", res)
	}
}
