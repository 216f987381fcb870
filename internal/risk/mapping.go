package risk

// findingTypes maps finding-type identifiers to the risk categories they
// cross-reference. Used by the prompt builder to attach OWASP context.
var findingTypes = map[string][]string{
	"sql-injection":            {"A03:2021"},
	"command-injection":        {"A03:2021"},
	"xss":                      {"A03:2021"},
	"missing-auth":             {"A07:2021", "API2:2023"},
	"broken-access-control":    {"A01:2021", "API1:2023", "API5:2023"},
	"idor":                     {"A01:2021", "API1:2023"},
	"weak-crypto":              {"A02:2021"},
	"hardcoded-secret":         {"A02:2021", "A05:2021"},
	"insecure-deserialization": {"A08:2021"},
	"ssrf":                     {"A10:2021", "API7:2023"},
	"vulnerable-dependency":    {"A06:2021"},
	"misconfiguration":         {"A05:2021", "API8:2023"},
	"unrestricted-upload":      {"A04:2021", "API4:2023"},
	"mass-assignment":          {"API3:2023"},
	"excessive-data-exposure":  {"API3:2023"},
	"rate-limiting":            {"API4:2023"},
}

// ForFindingType resolves a finding-type identifier to its risk records.
// Unknown types resolve to nothing.
func ForFindingType(id string) []Record {
	var out []Record
	for _, rid := range findingTypes[id] {
		if r, ok := Lookup(rid); ok {
			out = append(out, r)
		}
	}
	return out
}

// ForIDs resolves a list of risk-category identifiers, omitting unknowns.
func ForIDs(ids []string) []Record {
	var out []Record
	for _, id := range ids {
		if r, ok := Lookup(id); ok {
			out = append(out, r)
		}
	}
	return out
}
