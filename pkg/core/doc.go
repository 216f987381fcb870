// Package core provides a small, stable facade over codetriage's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so agent frontends and third-party tools can depend on a stable
// import path without exposing internal implementation packages.
//
// Example:
//
//	res, err := core.Scan(ctx, core.Config{}, core.Request{Path: "."})
//	if err != nil { /* handle */ }
//	_ = core.MarshalResult(os.Stdout, res)
package core
