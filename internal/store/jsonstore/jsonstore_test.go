package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Makepad-fr/kanban/internal/model"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, found, err := s.Load(context.Background())
	if err != nil || found {
		t.Fatalf("expected absent, got found=%v err=%v", found, err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := New(dir, "tasks")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	want := model.NewBoard()
	want.Append(model.Todo, model.Task{ID: 1, Text: "A"})
	want.Append(model.Todo, model.Task{ID: 2, Text: "B"})
	want.Append(model.Done, model.Task{ID: 99, Text: "shipped"})
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(s.Path()) != "tasks.json" {
		t.Fatalf("unexpected path %s", s.Path())
	}

	got, found, err := s.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if !got.Equal(want) {
		t.Fatalf("mismatch:\n got %+v\nwant %+v", got, want)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := New(dir, "")
	_, _, err := s.Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unmarshal") {
		t.Fatalf("expected unmarshal error, got %v", err)
	}
}
