package npmaudit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const auditFixture = `{
  "auditReportVersion": 2,
  "vulnerabilities": {
    "lodash": {
      "name": "lodash",
      "severity": "high",
      "isDirect": true,
      "via": [
        {"source": 1065, "name": "lodash", "title": "Prototype Pollution", "url": "https://github.com/advisories/GHSA-jf85-cpcp-j695", "severity": "high", "range": "<4.17.12"}
      ],
      "range": "<4.17.21",
      "fixAvailable": {"name": "lodash", "version": "4.17.21", "isSemVerMajor": false}
    },
    "minimist": {
      "name": "minimist",
      "severity": "moderate",
      "isDirect": false,
      "via": ["mkdirp"],
      "range": "<1.2.6",
      "fixAvailable": false
    }
  },
  "metadata": {
    "vulnerabilities": {"info": 0, "low": 0, "moderate": 1, "high": 1, "critical": 0, "total": 2}
  }
}`

func TestParseReport(t *testing.T) {
	rep, err := parseReport([]byte(auditFixture))
	require.NoError(t, err)
	require.True(t, rep.ToolAvailable)
	require.Len(t, rep.Vulnerabilities, 2)

	// Sorted by package name.
	lodash := rep.Vulnerabilities[0]
	assert.Equal(t, "lodash", lodash.PackageName)
	assert.Equal(t, "high", lodash.Severity)
	assert.Equal(t, "Prototype Pollution", lodash.Title)
	assert.Equal(t, "<4.17.21", lodash.Version)
	assert.Equal(t, "4.17.21", lodash.PatchedVersion)
	assert.Equal(t, []string{"GHSA-jf85-cpcp-j695"}, lodash.CVEIDs)

	minimist := rep.Vulnerabilities[1]
	assert.Equal(t, "medium", minimist.Severity) // moderate normalized
	assert.Equal(t, "", minimist.PatchedVersion) // fixAvailable: false
	assert.Equal(t, "Vulnerable versions of minimist", minimist.Title)
}

func TestParseReportSummaryFromMetadata(t *testing.T) {
	rep, err := parseReport([]byte(auditFixture))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"high": 1, "moderate": 1, "total": 2}, rep.Summary)
}

// The summary histogram keeps npm's own scale even when no metadata block
// is present; only per-vulnerability severities are normalized.
func TestParseReportSummaryKeepsNpmScale(t *testing.T) {
	rep, err := parseReport([]byte(`{
		"auditReportVersion": 2,
		"vulnerabilities": {
			"x": {"name": "x", "severity": "moderate", "via": ["y"], "range": "<1.0.0"}
		},
		"metadata": {}
	}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"moderate": 1, "total": 1}, rep.Summary)
	require.Len(t, rep.Vulnerabilities, 1)
	assert.Equal(t, "medium", rep.Vulnerabilities[0].Severity)
}

func TestParseReportClean(t *testing.T) {
	rep, err := parseReport([]byte(`{"auditReportVersion": 2, "vulnerabilities": {}, "metadata": {"vulnerabilities": {"total": 0}}}`))
	require.NoError(t, err)
	assert.Empty(t, rep.Vulnerabilities)
	assert.Equal(t, map[string]int{"total": 0}, rep.Summary)
}

func TestParseReportGarbage(t *testing.T) {
	if _, err := parseReport([]byte("npm ERR! something broke")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := parseReport(nil); err == nil {
		t.Fatalf("expected error for empty output")
	}
}

func TestNormalizeSeverity(t *testing.T) {
	cases := map[string]string{
		"critical": "critical",
		"HIGH":     "high",
		"moderate": "medium",
		"low":      "low",
		"bogus":    "info",
	}
	for in, want := range cases {
		if got := string(normalizeSeverity(in)); got != want {
			t.Fatalf("normalizeSeverity(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPatchedVersionValidation(t *testing.T) {
	if got := patchedVersion([]byte(`{"name":"x","version":"not-semver"}`)); got != "" {
		t.Fatalf("invalid semver should be dropped, got %q", got)
	}
	if got := patchedVersion([]byte(`true`)); got != "" {
		t.Fatalf("boolean fix should yield empty, got %q", got)
	}
	if got := patchedVersion([]byte(`{"name":"x","version":"4.17.21"}`)); got != "4.17.21" {
		t.Fatalf("valid version lost, got %q", got)
	}
}
