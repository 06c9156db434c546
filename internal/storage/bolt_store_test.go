package storage

import (
	"reflect"
	"testing"

	"github.com/samvad-hq/samvad-comments/pkg/comments"
)

func TestBoltStoreUpsertsByIDInOrder(t *testing.T) {
	dir := t.TempDir()

	store, err := openBolt(dir + "/snapshots/comments.db")
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	if err := store.Save(
		comments.NewWithID(10, "b", "second"),
		comments.NewWithID(2, "a", "first"),
		comments.New("draft", "skipped without id"),
	); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(comments.NewWithID(10, "b", "edited")); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	got, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	want := []comments.Comment{
		comments.NewWithID(2, "a", "first"),
		comments.NewWithID(10, "b", "edited"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("All = %v, want %v", got, want)
	}
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/comments.db"

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save(comments.NewWithID(1, "n", "t")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err = NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	got, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 1 || got[0] != comments.NewWithID(1, "n", "t") {
		t.Fatalf("All after reopen = %v", got)
	}
}

func TestEncodeIDSortsNegativeFirst(t *testing.T) {
	neg, pos := encodeID(-1), encodeID(1)
	if string(neg) >= string(pos) {
		t.Fatalf("expected encodeID(-1) < encodeID(1)")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Save(comments.NewWithID(1, "x", "y")); err != nil {
		t.Fatalf("noop store Save: %v", err)
	}
	got, err := store.All()
	if err != nil || got != nil {
		t.Fatalf("noop store All = %v, %v", got, err)
	}
}
