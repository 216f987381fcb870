package prompt

import "github.com/codetriage/codetriage/internal/types"

// Profile is the fixed expertise profile backing one category's system
// prompt: a role framing, ordered focus points, the weakness identifiers to
// pull reference data for, and the finding types used to attach OWASP
// context.
type Profile struct {
	Role         string
	Focus        []string
	CWEs         []string
	FindingTypes []string
}

var profiles = map[types.Category]Profile{
	types.CategoryAuth: {
		Role: "You are a senior application security engineer specializing in authentication, authorization, and session management.",
		Focus: []string{
			"Missing or bypassable authentication checks on sensitive operations",
			"Session fixation, weak session identifiers, and missing session expiry",
			"Credential storage: plaintext passwords, weak hashing, hardcoded secrets",
			"JWT pitfalls: alg confusion, missing verification, long-lived tokens",
			"Password reset and account recovery flows",
		},
		CWEs:         []string{"CWE-287", "CWE-384", "CWE-798", "CWE-613"},
		FindingTypes: []string{"missing-auth", "broken-access-control", "hardcoded-secret"},
	},
	types.CategoryAPI: {
		Role: "You are a senior API security specialist reviewing HTTP endpoints and request handlers.",
		Focus: []string{
			"Endpoints missing authorization or performing object-level checks incorrectly",
			"Mass assignment and over-permissive request body binding",
			"Server-side request forgery through user-controlled URLs",
			"Missing rate limiting on expensive or abusable operations",
			"Verbose error responses leaking internals",
		},
		CWEs:         []string{"CWE-285", "CWE-862", "CWE-918"},
		FindingTypes: []string{"broken-access-control", "ssrf", "rate-limiting", "mass-assignment"},
	},
	types.CategoryDataFlow: {
		Role: "You are a senior security engineer specializing in injection vulnerabilities and untrusted data flow.",
		Focus: []string{
			"User input reaching SQL, NoSQL, or OS command interpreters without parameterization",
			"Reflected and stored cross-site scripting sinks",
			"Path traversal through user-controlled file paths",
			"Unsafe deserialization of untrusted payloads",
		},
		CWEs:         []string{"CWE-89", "CWE-79", "CWE-78", "CWE-20"},
		FindingTypes: []string{"sql-injection", "xss", "command-injection", "insecure-deserialization"},
	},
	types.CategoryConfig: {
		Role: "You are a security engineer auditing configuration and secrets handling.",
		Focus: []string{
			"Secrets committed to the repository or defaulted in config files",
			"Debug or permissive settings enabled for production",
			"Overly broad CORS, cookie, or TLS configuration",
		},
		CWEs:         []string{"CWE-798", "CWE-209", "CWE-319"},
		FindingTypes: []string{"hardcoded-secret", "misconfiguration"},
	},
	types.CategoryCrypto: {
		Role: "You are a cryptography-focused security engineer reviewing cryptographic code.",
		Focus: []string{
			"Use of broken or weak algorithms (MD5, SHA-1, DES, ECB mode)",
			"Predictable randomness where cryptographic randomness is required",
			"Key material handling: generation, storage, rotation",
			"Homegrown constructions replacing vetted primitives",
		},
		CWEs:         []string{"CWE-327", "CWE-328", "CWE-330", "CWE-759"},
		FindingTypes: []string{"weak-crypto"},
	},
	types.CategoryUpload: {
		Role: "You are a security engineer specializing in file upload and media ingestion vulnerabilities.",
		Focus: []string{
			"Unrestricted file types or missing content validation",
			"Upload paths allowing traversal outside the storage root",
			"Missing size limits enabling resource exhaustion",
			"Uploaded content served back without sanitization",
		},
		CWEs:         []string{"CWE-434", "CWE-22", "CWE-400"},
		FindingTypes: []string{"unrestricted-upload"},
	},
	types.CategoryPayment: {
		Role: "You are a security engineer reviewing payment and billing integrations.",
		Focus: []string{
			"Price or amount values trusted from the client",
			"Webhook endpoints missing signature verification",
			"Object references allowing access to other customers' records",
			"Idempotency and replay handling on charge operations",
		},
		CWEs:         []string{"CWE-639", "CWE-345", "CWE-20"},
		FindingTypes: []string{"idor", "broken-access-control"},
	},
	types.CategoryDependencies: {
		Role: "You are a supply-chain security specialist reviewing third-party dependency usage.",
		Focus: []string{
			"Dependencies with known vulnerabilities or unmaintained status",
			"Unpinned or overly wide version ranges",
			"Install scripts and transitive dependencies worth scrutiny",
		},
		CWEs:         []string{"CWE-1104"},
		FindingTypes: []string{"vulnerable-dependency"},
	},
	types.CategoryAdmin: {
		Role: "You are a security engineer reviewing administrative and privileged functionality.",
		Focus: []string{
			"Admin routes reachable without role enforcement",
			"Privilege escalation through role or permission manipulation",
			"Sensitive operations missing audit trails",
		},
		CWEs:         []string{"CWE-285", "CWE-269", "CWE-306"},
		FindingTypes: []string{"broken-access-control", "missing-auth"},
	},
}

// ProfileFor returns the expertise profile for a category. Unknown
// categories get a generic reviewer profile rather than nothing.
func ProfileFor(c types.Category) Profile {
	if p, ok := profiles[c]; ok {
		return p
	}
	return Profile{
		Role: "You are a senior application security engineer performing a focused code review.",
		Focus: []string{
			"Vulnerabilities evidenced directly by the code shown",
		},
	}
}
