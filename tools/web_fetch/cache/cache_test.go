package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSaveAndLoad(t *testing.T) {
	c := New(t.TempDir(), 24*time.Hour)
	if err := c.Save("https://test.com", "Cached content"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	text, ok := c.Load("https://test.com")
	if !ok || text != "Cached content" {
		t.Errorf("Load = %q, %v; want Cached content, true", text, ok)
	}
	// second save overwrites, read stays stable
	if err := c.Save("https://test.com", "Cached content"); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	text, ok = c.Load("https://test.com")
	if !ok || text != "Cached content" {
		t.Errorf("Load after re-save = %q, %v", text, ok)
	}
}

func TestLoadMissing(t *testing.T) {
	c := New(t.TempDir(), 24*time.Hour)
	if _, ok := c.Load("https://nonexistent-cache-url-12345.com"); ok {
		t.Error("expected miss for unknown URL")
	}
}

func TestDistinctURLsDistinctPaths(t *testing.T) {
	c := New("cache", 24*time.Hour)
	a := c.pathForURL("https://a.com")
	b := c.pathForURL("https://b.com")
	if a == b {
		t.Error("distinct URLs must map to distinct paths")
	}
	if a != c.pathForURL("https://a.com") {
		t.Error("same URL must map to the same path")
	}
	if !strings.HasSuffix(a, ".json") {
		t.Errorf("unexpected path %q", a)
	}
}

func TestExpiredEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 24*time.Hour)
	if err := c.Save("https://expired.com", "Old"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// age the entry past the freshness window
	path := c.pathForURL("https://expired.com")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	var e map[string]interface{}
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("unmarshal entry: %v", err)
	}
	e["timestamp"] = float64(time.Now().Add(-25 * time.Hour).Unix())
	data, _ = json.Marshal(e)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("rewrite entry: %v", err)
	}
	if _, ok := c.Load("https://expired.com"); ok {
		t.Error("expired entry must behave as a miss")
	}
}

func TestCorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 24*time.Hour)
	if err := c.Save("https://corrupt.com", "fine"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	path := c.pathForURL("https://corrupt.com")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt entry: %v", err)
	}
	if _, ok := c.Load("https://corrupt.com"); ok {
		t.Error("corrupt entry must behave as a miss")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 24*time.Hour)
	if err := c.Save("https://tmp.com", "x"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, ent := range entries {
		if filepath.Ext(ent.Name()) == ".tmp" {
			t.Errorf("leftover temp file %s", ent.Name())
		}
	}
}
