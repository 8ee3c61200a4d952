package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, err := b.Load(ctx, "users"); !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if err := b.Save(ctx, "users", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := b.Save(ctx, "users", []byte(`[{"id":1},{"id":2}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := b.Load(ctx, "users")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `[{"id":1},{"id":2}]` {
		t.Errorf("unexpected payload %s", got)
	}
	if _, err := b.Load(ctx, "prontuarios"); !errors.Is(err, ErrNotExist) {
		t.Errorf("collections must be independent, got %v", err)
	}
	if err := b.Save(ctx, "../escape", []byte(`[]`)); err == nil {
		t.Error("expected invalid name error")
	}
	if err := b.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend())
}

func TestFileBackend(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exerciseBackend(t, b)

	if _, err := os.Stat(filepath.Join(dir, "users.json")); err != nil {
		t.Errorf("expected users.json on disk: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.Name() != "users.json" {
			t.Errorf("unexpected leftover file %s", e.Name())
		}
	}
}

func TestFileBackend_ReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := "[\n  {\n    \"id\": 7,\n    \"name\": \"x\"\n  }\n]"
	if err := os.WriteFile(filepath.Join(dir, "items.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	b, _ := NewFileBackend(dir)
	c := NewCollection[item]("items", b, zerolog.Nop())
	got := c.LoadAll(context.Background())
	if len(got) != 1 || got[0].ID != 7 {
		t.Errorf("unexpected items %v", got)
	}
	if NextID(got) != 8 {
		t.Errorf("expected next id 8, got %d", NextID(got))
	}
}

func TestSQLiteBackend(t *testing.T) {
	b, err := NewSQLiteBackend(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer b.Close()
	exerciseBackend(t, b)
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Options{Driver: "mongo"}, zerolog.Nop()); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestOpen_File(t *testing.T) {
	b, err := Open(context.Background(), Options{Driver: DriverFile, DataDir: t.TempDir()}, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Driver() != DriverFile {
		t.Errorf("expected file driver, got %s", b.Driver())
	}
}
