// Package risk holds the static OWASP risk-category tables and the mapping
// from finding types to those categories. The dataset is closed and manually
// curated; linear scans are fine at this size.
package risk

import "strings"

// Record is one curated risk-category entry.
type Record struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	Rank        int    `json:"rank"`
}

// webTop10 is the OWASP Top 10 (2021).
var webTop10 = []Record{
	{ID: "A01:2021", Name: "Broken Access Control", Description: "Restrictions on authenticated users are not properly enforced, allowing access to unauthorized functionality or data.", Year: 2021, Rank: 1},
	{ID: "A02:2021", Name: "Cryptographic Failures", Description: "Failures related to cryptography that often lead to exposure of sensitive data.", Year: 2021, Rank: 2},
	{ID: "A03:2021", Name: "Injection", Description: "User-supplied data is not validated, filtered, or sanitized before being used in interpreters (SQL, NoSQL, OS command, LDAP).", Year: 2021, Rank: 3},
	{ID: "A04:2021", Name: "Insecure Design", Description: "Missing or ineffective control design; risks that secure implementation alone cannot fix.", Year: 2021, Rank: 4},
	{ID: "A05:2021", Name: "Security Misconfiguration", Description: "Insecure default configurations, incomplete setups, open cloud storage, verbose errors.", Year: 2021, Rank: 5},
	{ID: "A06:2021", Name: "Vulnerable and Outdated Components", Description: "Use of components with known vulnerabilities or unsupported versions.", Year: 2021, Rank: 6},
	{ID: "A07:2021", Name: "Identification and Authentication Failures", Description: "Confirmation of user identity, authentication, and session management is broken.", Year: 2021, Rank: 7},
	{ID: "A08:2021", Name: "Software and Data Integrity Failures", Description: "Code and infrastructure that do not protect against integrity violations, such as insecure deserialization.", Year: 2021, Rank: 8},
	{ID: "A09:2021", Name: "Security Logging and Monitoring Failures", Description: "Insufficient logging and monitoring to detect and respond to breaches.", Year: 2021, Rank: 9},
	{ID: "A10:2021", Name: "Server-Side Request Forgery", Description: "Fetching a remote resource without validating the user-supplied URL.", Year: 2021, Rank: 10},
}

// apiTop10 is the OWASP API Security Top 10 (2023).
var apiTop10 = []Record{
	{ID: "API1:2023", Name: "Broken Object Level Authorization", Description: "Object identifiers exposed by APIs without per-object access checks.", Year: 2023, Rank: 1},
	{ID: "API2:2023", Name: "Broken Authentication", Description: "Authentication mechanisms implemented incorrectly, allowing token or identity compromise.", Year: 2023, Rank: 2},
	{ID: "API3:2023", Name: "Broken Object Property Level Authorization", Description: "Excessive data exposure or mass assignment at the object property level.", Year: 2023, Rank: 3},
	{ID: "API4:2023", Name: "Unrestricted Resource Consumption", Description: "Missing limits on request rate, size, or cost enables denial of service and inflated bills.", Year: 2023, Rank: 4},
	{ID: "API5:2023", Name: "Broken Function Level Authorization", Description: "Complex access control policies lead to exposed administrative functions.", Year: 2023, Rank: 5},
	{ID: "API6:2023", Name: "Unrestricted Access to Sensitive Business Flows", Description: "Business flows exposed without compensating for abuse at scale.", Year: 2023, Rank: 6},
	{ID: "API7:2023", Name: "Server Side Request Forgery", Description: "APIs fetch remote resources from user-supplied URIs without validation.", Year: 2023, Rank: 7},
	{ID: "API8:2023", Name: "Security Misconfiguration", Description: "Missing hardening, unnecessary features, or misconfigured permissions across the API stack.", Year: 2023, Rank: 8},
	{ID: "API9:2023", Name: "Improper Inventory Management", Description: "Outdated or undocumented API versions and hosts left exposed.", Year: 2023, Rank: 9},
	{ID: "API10:2023", Name: "Unsafe Consumption of APIs", Description: "Trusting third-party API data without validation.", Year: 2023, Rank: 10},
}

// WebTop10 returns the general web risk list in rank order.
func WebTop10() []Record { return webTop10 }

// APITop10 returns the API-specific risk list in rank order.
func APITop10() []Record { return apiTop10 }

// Lookup finds a record by its stable identifier across both lists.
func Lookup(id string) (Record, bool) {
	for _, r := range webTop10 {
		if r.ID == id {
			return r, true
		}
	}
	for _, r := range apiTop10 {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Search returns the records whose name or description contains the given
// substring, case-insensitive, across both lists in table order.
func Search(substr string) []Record {
	q := strings.ToLower(substr)
	if q == "" {
		return nil
	}
	var out []Record
	for _, list := range [][]Record{webTop10, apiTop10} {
		for _, r := range list {
			if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Description), q) {
				out = append(out, r)
			}
		}
	}
	return out
}
