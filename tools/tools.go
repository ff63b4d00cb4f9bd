//go:build tools
// +build tools

// Package tools documents development tool dependencies that are
// installed globally rather than tracked as runtime dependencies.
package tools

// Development tools (install via `go install`):
//
// Air - live reload during template and handler work (pairs with DEV=true,
// which re-reads templates from disk on every request)
//   Install: go install github.com/air-verse/air@v1.63.0
//   Version: v1.63.0 (pinned 2025-01-01)
//   Docs: https://github.com/air-verse/air
//
// mockgen is run through `go run go.uber.org/mock/mockgen` from the
// go:generate directives in internal/mocks, so it rides in go.mod.
