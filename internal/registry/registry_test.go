package registry

import (
	"testing"

	"github.com/codetriage/codetriage/internal/types"
)

func TestTableOrderCriticalFirst(t *testing.T) {
	cats := Categories()
	if len(cats) == 0 {
		t.Fatalf("empty category table")
	}
	lastRank := 0
	for _, cp := range cats {
		r := cp.Priority.Rank()
		if r < lastRank {
			t.Fatalf("category %s breaks priority ordering", cp.Category)
		}
		lastRank = r
	}
	if cats[0].Category != types.CategoryAuth {
		t.Fatalf("expected auth first, got %s", cats[0].Category)
	}
}

func TestMatchesByPath(t *testing.T) {
	cases := []struct {
		path string
		want types.Category
	}{
		{"src/auth/login.ts", types.CategoryAuth},
		{"lib/password-reset.js", types.CategoryAuth},
		{"app/api/users/route.ts", types.CategoryAPI},
		{"src/billing/checkout.ts", types.CategoryPayment},
		{"package.json", types.CategoryDependencies},
		{"backend/package.json", types.CategoryDependencies},
		{"src/crypto/keys.go", types.CategoryCrypto},
		{"server/upload/handler.js", types.CategoryUpload},
		{"pages/admin/users.js", types.CategoryAdmin},
		{"config/database.yml", types.CategoryConfig},
		{".env.production", types.CategoryConfig},
	}
	for _, tc := range cases {
		cp, ok := Lookup(tc.want)
		if !ok {
			t.Fatalf("category %s not in table", tc.want)
		}
		if !cp.Matches(types.ScannedFile{Path: tc.path}) {
			t.Fatalf("%s should match %s", tc.path, tc.want)
		}
	}
}

func TestMatchesByContent(t *testing.T) {
	cp, _ := Lookup(types.CategoryDataFlow)
	hits := []string{
		"const id = req.params.id",
		"name = request.form['name']",
		"$id = $_GET['id'];",
	}
	for _, content := range hits {
		if !cp.Matches(types.ScannedFile{Path: "src/handler.js", Content: content}) {
			t.Fatalf("content %q should match data-flow", content)
		}
	}
	if cp.Matches(types.ScannedFile{Path: "src/util.js", Content: "const x = 1"}) {
		t.Fatalf("plain code should not match data-flow")
	}
	if len(cp.PathPatterns) != 0 {
		t.Fatalf("data-flow must stay content-only")
	}
}

func TestPackageJSONIsPathOnly(t *testing.T) {
	cp, _ := Lookup(types.CategoryDependencies)
	if cp.Matches(types.ScannedFile{Path: "src/package.json.bak"}) {
		t.Fatalf("near-miss manifest name should not match")
	}
	if cp.Matches(types.ScannedFile{Path: "notes.txt", Content: `{"dependencies": {}}`}) {
		t.Fatalf("manifest-shaped content should not match")
	}
}

func TestMatchSkipFirstWins(t *testing.T) {
	// README.md matches docs before anything else.
	s, ok := MatchSkip("README.md")
	if !ok {
		t.Fatalf("README.md should be skipped")
	}
	if s.Reason != "Documentation" {
		t.Fatalf("unexpected reason %q", s.Reason)
	}

	// A markdown file in a tests dir still reports the docs reason.
	s, ok = MatchSkip("tests/setup.md")
	if !ok || s.Name != "docs" {
		t.Fatalf("expected docs rule to win, got %+v ok=%v", s, ok)
	}
}

func TestSkipRules(t *testing.T) {
	cases := map[string]string{
		"src/auth/login.test.ts":   "Test code",
		"__mocks__/stripe.js":      "Test fixtures",
		"components/LoginForm.tsx": "UI component",
		"public/js/app.js":         "Public asset",
		"dist/bundle.min.js":       "Generated or vendored",
		"styles/theme.scss":        "Stylesheet",
		"types/global.d.ts":        "Type declarations",
	}
	for path, reason := range cases {
		s, ok := MatchSkip(path)
		if !ok {
			t.Fatalf("%s should be skipped", path)
		}
		if s.Reason != reason {
			t.Fatalf("%s: got reason %q, want %q", path, s.Reason, reason)
		}
	}
	if _, ok := MatchSkip("src/auth/login.ts"); ok {
		t.Fatalf("source file should not be skipped")
	}
}

func TestIDsMatchTable(t *testing.T) {
	ids := IDs()
	if len(ids) != len(Categories()) {
		t.Fatalf("IDs length mismatch")
	}
	for i, cp := range Categories() {
		if ids[i] != string(cp.Category) {
			t.Fatalf("IDs[%d] = %s, want %s", i, ids[i], cp.Category)
		}
	}
}
