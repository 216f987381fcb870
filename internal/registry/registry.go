package registry

import (
	"regexp"

	"github.com/codetriage/codetriage/internal/types"
)

// CategoryPattern describes how files are matched into one security
// category. A file belongs to the category when any path pattern matches its
// path or any content pattern matches its full text.
type CategoryPattern struct {
	Category        types.Category
	Priority        types.Priority
	Description     string
	PathPatterns    []*regexp.Regexp
	ContentPatterns []*regexp.Regexp
}

func res(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// categories is the ordered classification table. Declaration order is the
// tie-break when two categories share a priority, so keep critical entries
// first within their groups.
var categories = []CategoryPattern{
	{
		Category:    types.CategoryAuth,
		Priority:    types.PriorityCritical,
		Description: "Authentication and session handling",
		PathPatterns: res(
			`(?i)(^|/)(auth|authn|login|signin|signup|session|sessions)s?(/|\.|_|-)`,
			`(?i)(password|credential|jwt|oauth|token)s?[^/]*\.[a-z]+$`,
		),
		ContentPatterns: res(
			`authenticate\s*\(`,
			`(?i)passport\.(use|authenticate)`,
			`jwt\.(sign|verify)\s*\(`,
			`(?i)bcrypt\.(hash|compare)`,
			`(?i)set-?cookie|express-session|next-auth`,
		),
	},
	{
		Category:    types.CategoryPayment,
		Priority:    types.PriorityCritical,
		Description: "Payment and billing flows",
		PathPatterns: res(
			`(?i)(^|/)(payment|payments|billing|checkout|invoice|invoices)(/|\.|_|-)`,
			`(?i)stripe|paypal|braintree`,
		),
		ContentPatterns: res(
			`(?i)stripe\.(charges|paymentIntents|checkout)`,
			`(?i)createPaymentIntent|confirmCardPayment`,
		),
	},
	{
		Category:    types.CategoryDependencies,
		Priority:    types.PriorityCritical,
		Description: "Third-party dependency manifest",
		// Exact manifest filename only; contents of the manifest are audited
		// separately, not pattern-scanned.
		PathPatterns: res(`(^|/)package\.json$`),
	},
	{
		Category:    types.CategoryAPI,
		Priority:    types.PriorityHigh,
		Description: "HTTP API surface and request handlers",
		PathPatterns: res(
			`(?i)(^|/)(api|routes|controllers|endpoints|handlers)(/|\.)`,
			`(?i)(route|controller|handler|endpoint)s?\.[a-z]+$`,
		),
		ContentPatterns: res(
			`(?i)(router|app)\.(get|post|put|patch|delete)\s*\(`,
			`(?i)express\(\)|fastify\(`,
			`export\s+(async\s+)?function\s+(GET|POST|PUT|PATCH|DELETE)\b`,
		),
	},
	{
		Category:    types.CategoryCrypto,
		Priority:    types.PriorityHigh,
		Description: "Cryptographic operations and key handling",
		PathPatterns: res(
			`(?i)(^|/)(crypto|encryption|signing|keys)(/|\.|_|-)`,
			`(?i)(encrypt|decrypt|cipher|hash)[^/]*\.[a-z]+$`,
		),
		ContentPatterns: res(
			`(?i)crypto\.(createCipher|createDecipher|createHash|createHmac|randomBytes|pbkdf2)`,
			`(?i)createSign\(|privateKey|publicKey`,
		),
	},
	{
		Category:    types.CategoryUpload,
		Priority:    types.PriorityHigh,
		Description: "File upload and media ingestion",
		PathPatterns: res(
			`(?i)(^|/)(upload|uploads|attachments|media)(/|\.|_|-)`,
		),
		ContentPatterns: res(
			`(?i)multer|formidable|busboy`,
			`(?i)multipart/form-data`,
			`(?i)\.(mv|pipe)\s*\(.*(upload|tmp)`,
		),
	},
	{
		Category:    types.CategoryAdmin,
		Priority:    types.PriorityHigh,
		Description: "Administrative and privileged functionality",
		PathPatterns: res(
			`(?i)(^|/)(admin|dashboard|management)(/|\.|_|-)`,
		),
		ContentPatterns: res(
			`(?i)isAdmin|requireAdmin|hasRole\s*\(\s*['"]admin`,
			`(?i)role\s*===?\s*['"]admin['"]`,
		),
	},
	{
		Category:    types.CategoryConfig,
		Priority:    types.PriorityMedium,
		Description: "Configuration and secrets handling",
		PathPatterns: res(
			`(?i)(^|/)\.env(\.|$)`,
			`(?i)(^|/)(config|configs|settings)(/|\.)`,
			`\.(ya?ml|toml|ini)$`,
		),
		ContentPatterns: res(
			`process\.env\.`,
			`(?i)(api[_-]?key|secret|private[_-]?key)\s*[:=]`,
		),
	},
	{
		Category:    types.CategoryDataFlow,
		Priority:    types.PriorityMedium,
		Description: "Untrusted input reaching application logic",
		// Content-only on purpose: input handling has no canonical path shape.
		ContentPatterns: res(
			`req\.(body|params|query|headers)`,
			`request\.(form|args|json|data)`,
			`\$_(GET|POST|REQUEST|COOKIE)`,
			`(?i)(query|execute)\s*\(\s*[\x60'"].*(\+|\$\{)`,
		),
	},
}

// Categories returns the ordered category table. The slice and its patterns
// are shared process-wide; callers must not mutate them.
func Categories() []CategoryPattern {
	return categories
}

// Lookup returns the pattern entry for a category.
func Lookup(c types.Category) (CategoryPattern, bool) {
	for _, cp := range categories {
		if cp.Category == c {
			return cp, true
		}
	}
	return CategoryPattern{}, false
}

// IDs lists the configured category identifiers in declaration order.
func IDs() []string {
	out := make([]string, 0, len(categories))
	for _, cp := range categories {
		out = append(out, string(cp.Category))
	}
	return out
}

// Matches reports whether the file belongs to the category: any path pattern
// against the path, or any content pattern against the full text.
func (cp CategoryPattern) Matches(f types.ScannedFile) bool {
	for _, re := range cp.PathPatterns {
		if re.MatchString(f.Path) {
			return true
		}
	}
	for _, re := range cp.ContentPatterns {
		if re.MatchString(f.Content) {
			return true
		}
	}
	return false
}
