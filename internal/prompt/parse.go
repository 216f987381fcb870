package prompt

import (
	"encoding/json"
	"strings"

	"github.com/codetriage/codetriage/internal/types"
)

// ParseResponse extracts the structured result from free-form reviewer
// output. It takes the widest brace-delimited substring and attempts to
// decode it; anything unparseable degrades to an empty findings list with a
// diagnostic summary. This never fails: upstream output is untrusted.
func ParseResponse(raw string) types.ReviewResult {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return types.ReviewResult{
			Findings: []types.Finding{},
			Summary:  "no JSON object found in response",
		}
	}
	var res types.ReviewResult
	if err := json.Unmarshal([]byte(raw[start:end+1]), &res); err != nil {
		return types.ReviewResult{
			Findings: []types.Finding{},
			Summary:  "response was not valid JSON: " + err.Error(),
		}
	}
	if res.Findings == nil {
		res.Findings = []types.Finding{}
	}
	return res
}
