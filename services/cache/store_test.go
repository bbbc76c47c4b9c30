package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	fileStore, err := NewFileStore(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	sqliteStore, err := NewSQLiteStore(filepath.Join(dir, "db", "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"file":   fileStore,
		"sqlite": sqliteStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Get(ctx, "2784"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get() on empty store error = %v, want ErrNotFound", err)
			}

			raw := []byte(`{"period":"2018-10-01T20:14:33Z","activityDetails":{"instanceId":"2784"}}`)
			if err := store.Put(ctx, "2784", raw); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			got, err := store.Get(ctx, "2784")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != string(raw) {
				t.Errorf("Get() = %s, want %s", got, raw)
			}

			if _, err := store.Get(ctx, "2785"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get() other id error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put(context.Background(), "123", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "123.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("cache dir contains %v, want [123.json]", names)
	}
}

func TestSQLiteStoreKeepsFirstRecord(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Put(ctx, "1", []byte(`{"first":true}`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, "1", []byte(`{"first":false}`)); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"first":true}` {
		t.Errorf("Get() = %s, want the first record", got)
	}
}

func TestSQLiteStoreReplacesCorruptRecord(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Put(ctx, "1", []byte(`{"period":`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, "1", []byte(`{"period":"2018"}`)); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"period":"2018"}` {
		t.Errorf("Get() = %s, want the repaired record", got)
	}
}
