package assets

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Faultbox/spline-terrain/pkg/formats"
)

func writeTestLevel(t *testing.T, dir string) string {
	t.Helper()

	lvl := &formats.Level{Width: 5, Depth: 5, Altitude: make([]float32, 25)}
	lvl.Altitude[12] = 2

	path := filepath.Join(dir, "hills.json")
	if err := lvl.SaveLevel(path); err != nil {
		t.Fatalf("SaveLevel failed: %v", err)
	}
	return path
}

func TestLoadLocalFile(t *testing.T) {
	path := writeTestLevel(t, t.TempDir())
	m := NewManager(t.TempDir())
	defer m.Close()

	lvl, err := m.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if lvl.At(2, 2) != 2 {
		t.Errorf("expected altitude 2 at (2, 2), got %v", lvl.At(2, 2))
	}

	again, err := m.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if again != lvl {
		t.Error("second Load should return the cached level")
	}

	hits, misses := m.Cache().Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}
}

func TestFetchIntoCache(t *testing.T) {
	src := writeTestLevel(t, t.TempDir())
	cacheDir := filepath.Join(t.TempDir(), "levels")
	m := NewManager(cacheDir)

	dst, err := m.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if dst != filepath.Join(cacheDir, "hills.json") {
		t.Errorf("unexpected destination %s", dst)
	}

	lvl, err := formats.LoadLevel(dst)
	if err != nil {
		t.Fatalf("fetched level does not parse: %v", err)
	}
	if lvl.Width != 5 || lvl.Depth != 5 {
		t.Errorf("expected 5x5, got %dx%d", lvl.Width, lvl.Depth)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"width": 3, "depth": 3, "altitude": []}`), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		cacheDir string
		src      string
	}{
		{"invalid level", dir, bad},
		{"missing file", dir, filepath.Join(dir, "missing.json")},
		{"remote without cache dir", "", "https://example.invalid/level.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.cacheDir)
			lvl, err := m.Load(context.Background(), tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if lvl != nil {
				t.Error("expected no level on error")
			}
			if m.Cache().Len() != 0 {
				t.Error("failed loads must not be cached")
			}
		})
	}
}

func TestDestName(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"https://example.com/levels/alps.json", "alps.json"},
		{"https://example.com/levels/alps.json?checksum=md5:abc", "alps.json"},
		{"s3::https://s3.amazonaws.com/bucket/dunes.json", "dunes.json"},
		{"https://example.com/", defaultLevelName},
		{"https://example.com", defaultLevelName},
		{"https://example.com?archive=false", defaultLevelName},
		{"git::https://example.com/maps.git//levels/canyon.json?ref=v1", "canyon.json"},
		{"https://example.com/levels/latest", defaultLevelName},
		{"/tmp/flat.json", "flat.json"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := destName(tt.src); got != tt.want {
				t.Errorf("destName(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache()
	lvl := &formats.Level{Width: 5, Depth: 5}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 100 {
				if i%2 == 0 {
					c.Set("a", lvl)
				} else {
					c.Get("a")
				}
			}
		}(i)
	}
	wg.Wait()

	hits, misses := c.Stats()
	if hits+misses != 400 {
		t.Errorf("expected 400 lookups, got %d", hits+misses)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Error("expected empty cache after Clear")
	}
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Error("expected stats reset after Clear")
	}
}
