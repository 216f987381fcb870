package core

import (
	"context"

	"github.com/codetriage/codetriage/internal/engine"
	"github.com/codetriage/codetriage/internal/prompt"
	"github.com/codetriage/codetriage/internal/registry"
	"github.com/codetriage/codetriage/internal/risk"
	"github.com/codetriage/codetriage/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Request = engine.Request
type Result = engine.Result
type Hotspot = engine.Hotspot
type ScannedFile = types.ScannedFile
type Finding = types.Finding
type ReviewResult = types.ReviewResult
type RiskRecord = risk.Record

// Scan is the stable entrypoint for other programs.
func Scan(ctx context.Context, cfg Config, req Request) (Result, error) {
	return engine.New(cfg).FullScan(ctx, req)
}

// ParseResponse parses a reviewer response into typed findings. It never
// fails; unparseable input degrades to a diagnostic summary.
func ParseResponse(raw string) ReviewResult { return prompt.ParseResponse(raw) }

// CategoryIDs returns the list of hotspot category identifiers.
// This is exposed for convenience to avoid importing internals directly.
func CategoryIDs() []string { return registry.IDs() }

// RiskRecords resolves OWASP risk-category identifiers (e.g. "A03:2021")
// to their reference records, omitting unknowns. Useful for consumers
// enriching parsed findings with risk context.
func RiskRecords(ids []string) []RiskRecord { return risk.ForIDs(ids) }

// WebRisks returns the OWASP Top 10 (2021) in rank order.
func WebRisks() []RiskRecord { return risk.WebTop10() }

// APIRisks returns the OWASP API Security Top 10 (2023) in rank order.
func APIRisks() []RiskRecord { return risk.APITop10() }

// SearchRisks finds risk records whose name or description contains the
// given substring, case-insensitive.
func SearchRisks(substr string) []RiskRecord { return risk.Search(substr) }
