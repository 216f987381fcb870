package registry

import "regexp"

// SkipPattern excludes a file from all classification. Rules are evaluated
// top to bottom and the first hit wins.
type SkipPattern struct {
	Name    string
	Pattern *regexp.Regexp
	Reason  string
}

// skips is the ordered exclusion table. UI components and public assets are
// always-skip even though client-side auth widgets can carry real logic;
// inherited tradeoff, do not change without product input.
var skips = []SkipPattern{
	{
		Name:    "docs",
		Pattern: regexp.MustCompile(`(?i)\.(md|mdx|rst|txt)$`),
		Reason:  "Documentation",
	},
	{
		Name:    "tests",
		Pattern: regexp.MustCompile(`(?i)(^|/)(tests?|__tests__|spec)/|\.(test|spec)\.[a-z]+$`),
		Reason:  "Test code",
	},
	{
		Name:    "fixtures",
		Pattern: regexp.MustCompile(`(?i)(^|/)(fixtures?|mocks?|__mocks__|testdata)/`),
		Reason:  "Test fixtures",
	},
	{
		Name:    "ui-components",
		Pattern: regexp.MustCompile(`(?i)(^|/)components?/.*\.(jsx|tsx|vue|svelte)$`),
		Reason:  "UI component",
	},
	{
		Name:    "public-assets",
		Pattern: regexp.MustCompile(`(?i)(^|/)(public|static|assets)/`),
		Reason:  "Public asset",
	},
	{
		Name:    "generated",
		Pattern: regexp.MustCompile(`\.min\.(js|css)$|\.map$|(^|/)(dist|build|node_modules|vendor|coverage)/`),
		Reason:  "Generated or vendored",
	},
	{
		Name:    "styles",
		Pattern: regexp.MustCompile(`(?i)\.(css|scss|sass|less)$`),
		Reason:  "Stylesheet",
	},
	{
		Name:    "type-decls",
		Pattern: regexp.MustCompile(`\.d\.ts$`),
		Reason:  "Type declarations",
	},
}

// SkipRules returns the ordered skip table. Shared process-wide; callers
// must not mutate it.
func SkipRules() []SkipPattern {
	return skips
}

// MatchSkip tests a path against the skip table, first match wins.
func MatchSkip(path string) (SkipPattern, bool) {
	for _, s := range skips {
		if s.Pattern.MatchString(path) {
			return s, true
		}
	}
	return SkipPattern{}, false
}
