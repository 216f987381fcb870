package prompt

import (
	"strings"
	"testing"
)

func TestParseResponseCleanJSON(t *testing.T) {
	raw := `{"findings":[{"title":"Missing auth check","severity":"high","confidence":85,"file":"api/users.ts","line":12,"remediation":{"summary":"Add middleware","steps":["Wrap route"]}}],"summary":"one issue"}`
	res := ParseResponse(raw)
	if len(res.Findings) != 1 {
		t.Fatalf("expected one finding, got %+v", res)
	}
	f := res.Findings[0]
	if f.Title != "Missing auth check" || f.Confidence != 85 || f.Line != 12 {
		t.Fatalf("unexpected finding %+v", f)
	}
	if f.Remediation.Summary != "Add middleware" || len(f.Remediation.Steps) != 1 {
		t.Fatalf("remediation not parsed: %+v", f.Remediation)
	}
	if res.Summary != "one issue" {
		t.Fatalf("unexpected summary %q", res.Summary)
	}
}

func TestParseResponseWrappedInProse(t *testing.T) {
	raw := `here you go: {"findings": [], "summary": "ok"} hope that helps!`
	res := ParseResponse(raw)
	if res.Summary != "ok" {
		t.Fatalf("prose-wrapped JSON should parse, got %+v", res)
	}
	if res.Findings == nil || len(res.Findings) != 0 {
		t.Fatalf("findings should be an empty slice, got %#v", res.Findings)
	}
}

func TestParseResponseNoJSON(t *testing.T) {
	res := ParseResponse("not json at all")
	if len(res.Findings) != 0 {
		t.Fatalf("degraded result should be empty")
	}
	if res.Summary != "no JSON object found in response" {
		t.Fatalf("unexpected diagnostic %q", res.Summary)
	}
}

func TestParseResponseMalformedJSON(t *testing.T) {
	res := ParseResponse(`{"findings": [oops]}`)
	if len(res.Findings) != 0 {
		t.Fatalf("degraded result should be empty")
	}
	if !strings.HasPrefix(res.Summary, "response was not valid JSON:") {
		t.Fatalf("unexpected diagnostic %q", res.Summary)
	}
}

func TestParseResponseNeverNilFindings(t *testing.T) {
	res := ParseResponse(`{"summary": "nothing found"}`)
	if res.Findings == nil {
		t.Fatalf("findings must be non-nil")
	}
	if res.Summary != "nothing found" {
		t.Fatalf("unexpected summary %q", res.Summary)
	}
}
