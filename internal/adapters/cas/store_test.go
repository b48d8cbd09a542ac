package cas_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"clientfn.dev/clientfn/internal/adapters/cas"
	"clientfn.dev/clientfn/internal/core/domain"
)

func TestCacheStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".clientfn", "cache.json")

	doc := domain.NewCacheDocument()
	entry := doc.Entry("app/routes.ts")
	entry.MtimeMs = 1700000000123.5
	entry.Handlers["onClick"] = "onClick_1ds2f8a"
	entry.Handlers["onSubmit"] = "onSubmit_9f03b21"

	store := cas.NewCacheStore(path)
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A fresh store instance must read back the same document.
	got, err := cas.NewCacheStore(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil")
	}
	if !reflect.DeepEqual(doc, got) {
		t.Errorf("expected %+v, got %+v", doc, got)
	}
}

func TestCacheStore_LoadMissing(t *testing.T) {
	store := cas.NewCacheStore(filepath.Join(t.TempDir(), "absent", "cache.json"))

	doc, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc != nil {
		t.Errorf("expected nil document for missing file, got %+v", doc)
	}
}

func TestCacheStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := cas.NewCacheStore(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc != nil {
		t.Errorf("expected nil document for empty file, got %+v", doc)
	}
}

func TestCacheStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := cas.NewCacheStore(path).Load(); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestCacheStore_WireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	doc := domain.NewCacheDocument()
	entry := doc.Entry("app/routes.ts")
	entry.MtimeMs = 1234.5
	entry.Handlers["onClick"] = "onClick_1ds2f8a"

	if err := cas.NewCacheStore(path).Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	jsonStr := string(content)
	t.Logf("JSON content: %s", jsonStr)

	// The persisted keys are a wire contract shared with every consumer
	// of the generated output.
	for _, key := range []string{`"version": 1`, `"files"`, `"app/routes.ts"`, `"mtimeMs"`, `"handlers"`, `"onClick": "onClick_1ds2f8a"`} {
		if !strings.Contains(jsonStr, key) {
			t.Errorf("JSON should contain %s", key)
		}
	}
}

func TestBuildInfoStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".clientfn", "build.json")

	info := &domain.BuildInfo{
		Version: "1.2.3",
		Modules: map[string]domain.ModuleInfo{
			"onClick_1ds2f8a.js": {
				Digest:    "00ff00ff00ff00ff",
				Size:      421,
				EmittedAt: time.Now().UTC().Truncate(time.Second),
			},
		},
	}

	if err := cas.NewBuildInfoStore(path).Save(info); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := cas.NewBuildInfoStore(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil")
	}
	if !reflect.DeepEqual(info, got) {
		t.Errorf("expected %+v, got %+v", info, got)
	}
}

func TestBuildInfoStore_LoadMissing(t *testing.T) {
	info, err := cas.NewBuildInfoStore(filepath.Join(t.TempDir(), "build.json")).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if info != nil {
		t.Errorf("expected nil info for missing file, got %+v", info)
	}
}

func TestBuildInfoStore_OmitZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.json")

	info := &domain.BuildInfo{
		Modules: map[string]domain.ModuleInfo{
			"clientFunctions.js": {Digest: "abcd"},
		},
	}

	if err := cas.NewBuildInfoStore(path).Save(info); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	jsonStr := string(content)
	if strings.Contains(jsonStr, "emitted_at") {
		t.Error("JSON should not contain 'emitted_at' for zero value")
	}
	if strings.Contains(jsonStr, `"size"`) {
		t.Error("JSON should not contain 'size' for zero value")
	}
	if !strings.Contains(jsonStr, `"digest"`) {
		t.Error("JSON should contain 'digest'")
	}
}
