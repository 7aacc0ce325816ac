package lint

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.txt")
	if err := os.WriteFile(path, []byte("blog/{slug}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("blog/{slug}/{id?}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Changed():
		if got != path {
			t.Fatalf("changed path = %q, want %q", got, path)
		}
	case err := <-w.Errors():
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}
