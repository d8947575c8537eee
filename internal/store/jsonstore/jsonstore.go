package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/kanban/internal/model"
	"github.com/Makepad-fr/kanban/internal/store"
)

// JSON-backed storage. One file per key, human-readable, portable.
// No locking; fine for a local single-user board.

// Store keeps the board in <dir>/<key>.json.
type Store struct {
	dir string
	key string
}

// New returns a file store rooted at dir. An empty dir means the working
// directory; an empty key means store.DefaultKey.
func New(dir, key string) (*Store, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	if key == "" {
		key = store.DefaultKey
	}
	return &Store{dir: dir, key: key}, nil
}

// Path is the file the board lives in.
func (s *Store) Path() string {
	return filepath.Join(s.dir, s.key+".json")
}

func (s *Store) Load(ctx context.Context) (model.Board, bool, error) {
	b, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Board{}, false, nil
		}
		return model.Board{}, false, fmt.Errorf("read file: %w", err)
	}
	board, err := store.Decode(b)
	if err != nil {
		return model.Board{}, false, err
	}
	return board, true, nil
}

func (s *Store) Save(ctx context.Context, board model.Board) error {
	b, err := store.Encode(board)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	// write to a sibling temp file first so a crash never leaves half a record
	tmp, err := os.CreateTemp(s.dir, "."+s.key+"-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
