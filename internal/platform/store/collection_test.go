package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/prontuario/api/internal/platform/apperr"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (i item) GetID() int { return i.ID }

func newTestCollection(b Backend) *Collection[item] {
	return NewCollection[item]("items", b, zerolog.Nop())
}

type failingBackend struct {
	*MemoryBackend
	loadErr error
	saveErr error
}

func (f *failingBackend) Load(ctx context.Context, name string) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.MemoryBackend.Load(ctx, name)
}

func (f *failingBackend) Save(ctx context.Context, name string, payload []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryBackend.Save(ctx, name, payload)
}

func TestNextID(t *testing.T) {
	if got := NextID([]item{}); got != 1 {
		t.Errorf("expected 1 for empty, got %d", got)
	}
	if got := NextID([]item{{ID: 1}, {ID: 4}}); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
}

func TestIndexOf(t *testing.T) {
	items := []item{{ID: 1}, {ID: 3}}
	if IndexOf(items, 3) != 1 {
		t.Error("expected index 1")
	}
	if IndexOf(items, 2) != -1 {
		t.Error("expected -1 for missing id")
	}
}

func TestCollection_LoadAll_MissingIsEmpty(t *testing.T) {
	c := newTestCollection(NewMemoryBackend())
	got := c.LoadAll(context.Background())
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestCollection_LoadAll_CorruptIsEmpty(t *testing.T) {
	b := NewMemoryBackend()
	_ = b.Save(context.Background(), "items", []byte("{not json"))
	c := newTestCollection(b)
	if got := c.LoadAll(context.Background()); len(got) != 0 {
		t.Errorf("expected empty slice for corrupt payload, got %v", got)
	}
}

func TestCollection_LoadAll_ReadErrorIsEmpty(t *testing.T) {
	b := &failingBackend{MemoryBackend: NewMemoryBackend(), loadErr: errors.New("io error")}
	c := newTestCollection(b)
	if got := c.LoadAll(context.Background()); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestCollection_SaveAll_PrettyPrinted(t *testing.T) {
	b := NewMemoryBackend()
	c := newTestCollection(b)
	if err := c.SaveAll(context.Background(), []item{{ID: 1, Name: "a"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _ := b.Load(context.Background(), "items")
	if !strings.Contains(string(raw), "\n  {") {
		t.Errorf("expected indented JSON, got %s", raw)
	}
	got := c.LoadAll(context.Background())
	if len(got) != 1 || got[0].Name != "a" {
		t.Errorf("unexpected round trip: %v", got)
	}
}

func TestCollection_SaveAll_NilWritesEmptyArray(t *testing.T) {
	b := NewMemoryBackend()
	c := newTestCollection(b)
	if err := c.SaveAll(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _ := b.Load(context.Background(), "items")
	if string(raw) != "[]" {
		t.Errorf("expected [], got %s", raw)
	}
}

func TestCollection_Mutate_ErrorSkipsSave(t *testing.T) {
	c := newTestCollection(NewMemoryBackend())
	_ = c.SaveAll(context.Background(), []item{{ID: 1}})

	sentinel := errors.New("abort")
	err := c.Mutate(context.Background(), func(items []item) ([]item, error) {
		return append(items, item{ID: 2}), sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if got := c.LoadAll(context.Background()); len(got) != 1 {
		t.Errorf("expected store unchanged, got %v", got)
	}
}

func TestCollection_Mutate_SaveFailureIsStorageWrite(t *testing.T) {
	b := &failingBackend{MemoryBackend: NewMemoryBackend()}
	c := newTestCollection(b)
	_ = c.SaveAll(context.Background(), []item{{ID: 1}})

	b.saveErr = errors.New("disk full")
	err := c.Mutate(context.Background(), func(items []item) ([]item, error) {
		return append(items, item{ID: 2}), nil
	})
	if !errors.Is(err, apperr.ErrStorageWrite) {
		t.Fatalf("expected storage write error, got %v", err)
	}
	b.saveErr = nil
	if got := c.LoadAll(context.Background()); len(got) != 1 {
		t.Errorf("expected prior state kept, got %v", got)
	}
}

func TestCollection_Mutate_CancelledContext(t *testing.T) {
	c := newTestCollection(NewMemoryBackend())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Mutate(ctx, func(items []item) ([]item, error) {
		return append(items, item{ID: 1}), nil
	})
	if !errors.Is(err, apperr.ErrStorageWrite) {
		t.Fatalf("expected storage write error, got %v", err)
	}
}

func TestCollection_Mutate_SerializesWriters(t *testing.T) {
	c := newTestCollection(NewMemoryBackend())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Mutate(ctx, func(items []item) ([]item, error) {
				return append(items, item{ID: NextID(items)}), nil
			})
		}()
	}
	wg.Wait()

	got := c.LoadAll(ctx)
	if len(got) != 50 {
		t.Fatalf("expected 50 items, got %d", len(got))
	}
	for i, it := range got {
		if it.ID != i+1 {
			t.Fatalf("expected id %d at %d, got %d", i+1, i, it.ID)
		}
	}
}

func TestCollection_Mutate_Unchanged(t *testing.T) {
	b := &failingBackend{MemoryBackend: NewMemoryBackend(), saveErr: errors.New("must not save")}
	c := newTestCollection(b)
	err := c.Mutate(context.Background(), func(items []item) ([]item, error) {
		return items, ErrUnchanged
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
