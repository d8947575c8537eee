// Package board is the task registry: it owns the three lanes, keeps ids
// unique, and saves the board after every change.
package board

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/Makepad-fr/kanban/internal/idalloc"
	"github.com/Makepad-fr/kanban/internal/model"
	"github.com/Makepad-fr/kanban/internal/store"
)

// Allocator produces ids not present on the given board.
type Allocator interface {
	Allocate(b model.Board) (model.Identifier, error)
}

// Store is the single owner of the board. It is not safe for concurrent
// use; all calls are expected from one event loop.
type Store struct {
	board     model.Board
	persister store.Persister
	alloc     Allocator
	log       log.FieldLogger
}

type Option func(*Store)

func WithAllocator(a Allocator) Option { return func(s *Store) { s.alloc = a } }

func WithLogger(l log.FieldLogger) Option { return func(s *Store) { s.log = l } }

// Open loads the board from p. When nothing is stored yet, three empty lanes
// are saved straight away. A load failure is logged and the session starts
// from an empty board; the returned error is then nil so the caller keeps
// going.
func Open(ctx context.Context, p store.Persister, opts ...Option) (*Store, error) {
	s := &Store{persister: p}
	for _, o := range opts {
		o(s)
	}
	if s.alloc == nil {
		s.alloc = idalloc.Default()
	}
	if s.log == nil {
		quiet := log.New()
		quiet.SetOutput(io.Discard)
		s.log = quiet
	}

	b, found, err := p.Load(ctx)
	switch {
	case err != nil:
		s.log.WithError(err).Warn("load board failed, starting empty")
		s.board = model.NewBoard()
	case !found:
		s.board = model.NewBoard()
		if err := s.save(ctx, "init"); err != nil {
			return s, err
		}
		s.log.Info("initialised empty board")
	default:
		s.board = b
		s.log.WithField("tasks", b.Len()).Debug("board loaded")
	}
	return s, nil
}

// Add appends a new task to lane and returns it. Empty text is rejected
// with ErrEmptyInput and leaves the board untouched; any other text is
// stored as given.
func (s *Store) Add(ctx context.Context, lane model.Lane, text string) (model.Task, error) {
	if text == "" {
		return model.Task{}, ErrEmptyInput
	}
	if !lane.Valid() {
		return model.Task{}, fmt.Errorf("add: invalid lane %v", lane)
	}
	id, err := s.alloc.Allocate(s.board)
	if err != nil {
		return model.Task{}, fmt.Errorf("add: %w", err)
	}
	t := model.Task{ID: id, Text: text}
	s.board.Append(lane, t)
	s.log.WithFields(log.Fields{"lane": lane.String(), "id": id}).Debug("task added")
	return t, s.save(ctx, "add")
}

// Remove deletes the task with id, wherever it is. It reports false when
// no such task exists.
func (s *Store) Remove(ctx context.Context, id model.Identifier) (bool, error) {
	lane, i, ok := s.board.Locate(id)
	if !ok {
		return false, nil
	}
	s.board.RemoveAt(lane, i)
	s.log.WithFields(log.Fields{"lane": lane.String(), "id": id}).Debug("task removed")
	return true, s.save(ctx, "remove")
}

// Move takes the task out of its lane and appends it to target, keeping
// its id and replacing its text with text.
func (s *Store) Move(ctx context.Context, id model.Identifier, text string, target model.Lane) (model.Task, error) {
	if !target.Valid() {
		return model.Task{}, fmt.Errorf("move: invalid lane %v", target)
	}
	from, i, ok := s.board.Locate(id)
	if !ok {
		return model.Task{}, fmt.Errorf("move %d: %w", id, ErrNotFound)
	}
	s.board.RemoveAt(from, i)
	t := model.Task{ID: id, Text: text}
	s.board.Append(target, t)
	s.log.WithFields(log.Fields{"id": id, "from": from.String(), "to": target.String()}).Debug("task moved")
	return t, s.save(ctx, "move")
}

// UpdateText replaces the text of the task in place. Empty text is allowed.
func (s *Store) UpdateText(ctx context.Context, id model.Identifier, text string) (bool, error) {
	lane, i, ok := s.board.Locate(id)
	if !ok {
		return false, nil
	}
	s.board.SetText(lane, i, text)
	s.log.WithFields(log.Fields{"lane": lane.String(), "id": id}).Debug("task edited")
	return true, s.save(ctx, "update")
}

// Find returns the task and the lane holding it.
func (s *Store) Find(id model.Identifier) (model.Task, model.Lane, bool) {
	lane, i, ok := s.board.Locate(id)
	if !ok {
		return model.Task{}, 0, false
	}
	return s.board.Lane(lane)[i], lane, true
}

// All returns a copy of the board.
func (s *Store) All() model.Board { return s.board.Clone() }

// Flush saves the current board again, e.g. after an earlier save failed.
func (s *Store) Flush(ctx context.Context) error { return s.save(ctx, "flush") }

func (s *Store) save(ctx context.Context, op string) error {
	if err := s.persister.Save(ctx, s.board); err != nil {
		s.log.WithError(err).WithField("op", op).Error("save board failed")
		return &storageError{op: op, err: err}
	}
	return nil
}
