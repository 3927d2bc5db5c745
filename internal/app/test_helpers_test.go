package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"lazyfm/internal/api"
	"lazyfm/internal/config"
	"lazyfm/internal/models"
	"lazyfm/internal/perm"
)

const testDir = "/docs"

// fixed identities so tests can target entries across refetches
var (
	testFileID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testDirID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	testPdfID  = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func testEntries() []models.FileEntry {
	return []models.FileEntry{
		{Name: "attic", UUID: testDirID, IsFile: false},
		{Name: "notes.txt", UUID: testFileID, IsFile: true, Size: 512, ModTime: time.Now()},
		{Name: "q3.pdf", UUID: testPdfID, IsFile: true, Size: 2048, ModTime: time.Now()},
	}
}

func allCaps() map[string]bool {
	return map[string]bool{
		perm.ActionRename:   true,
		perm.ActionMove:     true,
		perm.ActionCopy:     true,
		perm.ActionDownload: true,
		perm.ActionCompress: true,
		perm.ActionDelete:   true,
	}
}

// newTestModel builds a model wired to an httptest backend and seeds the
// listing cache from it.
func newTestModel(t *testing.T, handler http.Handler) *Model {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	client := api.New(api.Config{
		Server:  "test",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	})
	m := NewModel(cfg, client, testDir)
	m.windowWidth = 120
	m.windowHeight = 40
	m.layoutTable()
	m.gate.Replace(allCaps())
	return m
}

// seedListing loads the listing synchronously through the cache.
func seedListing(t *testing.T, m *Model) {
	t.Helper()
	entries, err := m.cache.Revalidate(context.Background(), testDir)
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	m.listingLoaded = true
	m.setEntries(testDir, entries)
}

// listingHandler serves the given entries on the list endpoint and defers
// everything else to ops.
func listingHandler(entries func() []models.FileEntry, ops http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/list/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"entries": entries()})
	})
	if ops != nil {
		mux.Handle("POST /", ops)
		mux.Handle("GET /api/v1/download-url", ops)
	}
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(err)
	}
}

func entryNames(entries []models.FileEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func containsName(entries []models.FileEntry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}
