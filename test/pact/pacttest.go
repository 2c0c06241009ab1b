//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "shop-api"
	ConsumerName = "storefront"

	StateGamesBaseline = "games baseline"
	StateGameExists    = "game g-101 exists"
	StateGameMissing   = "no game with id g-404"
	StateUserExists    = "user pact.user@example.com exists"
	StateSignedInUser  = "pact.user@example.com is signed in with token pact-token"
)

const (
	ExistingGameID = "g-101"
	MissingGameID  = "g-404"

	UserEmail    = "pact.user@example.com"
	UserPassword = "pact-pass"
	UserToken    = "pact-token"

	IdempotencyKey = "6f1d3c2a9b8e7d6c5b4a39281706f5e4"
)

const (
	exampleGameTitle = "Pact Quest"
	exampleGameImage = "https://example.pact/games/pact-quest.png"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleGamePayload provides stable test data for catalog interactions.
func ExampleGamePayload() map[string]any {
	return map[string]any{
		"_id":         ExistingGameID,
		"title":       exampleGameTitle,
		"description": "A contract-tested adventure",
		"price":       19.99,
		"genre":       "Adventure",
		"image":       exampleGameImage,
		"stock":       5,
		"platform":    []string{"PC"},
		"rating":      4.5,
	}
}

// ExampleOrderLine is the single line of the example order.
func ExampleOrderLine() map[string]any {
	return map[string]any{
		"game":  ExistingGameID,
		"title": exampleGameTitle,
		"price": 19.99,
		"image": exampleGameImage,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
