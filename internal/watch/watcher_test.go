package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "incidents.xlsx")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	var calls atomic.Int32
	changed := make(chan struct{}, 16)
	w := New(path, func(context.Context) {
		calls.Add(1)
		changed <- struct{}{}
	})
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
		t.Fatalf("callback fired for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatalf("no reload after write")
	}

	cancel()
	select {
	case <-w.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not stop")
	}
	if calls.Load() < 1 {
		t.Fatalf("calls = %d", calls.Load())
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "gone", "incidents.xlsx"), nil)
	if err := w.Run(context.Background()); err == nil {
		t.Fatalf("expected error watching a missing directory")
	}
}
