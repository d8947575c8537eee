package tui

import (
	"context"
	"errors"
	"strconv"

	"github.com/Makepad-fr/kanban/internal/board"
	"github.com/Makepad-fr/kanban/internal/model"
)

// Armed is the task targeted by the next alt+digit.
type Armed struct {
	ID   model.Identifier
	Lane model.Lane
}

// Controller turns user gestures into board commands. It holds the
// per-session state that is not part of the board: the armed task, the
// search query and any pending notice.
type Controller struct {
	store  *board.Store
	armed  *Armed
	query  string
	notice string
	status string
}

func NewController(s *board.Store) *Controller {
	return &Controller{store: s}
}

// Board is a snapshot of the store.
func (c *Controller) Board() model.Board { return c.store.All() }

// Lane returns the visible tasks of l, newest first, filtered by the query.
func (c *Controller) Lane(l model.Lane) []model.Task {
	return filterTasks(DisplayOrder(c.store.All().Lane(l)), c.query)
}

// Submit adds text to lane. Empty input raises a notice and changes nothing.
func (c *Controller) Submit(ctx context.Context, lane model.Lane, text string) (model.Task, error) {
	t, err := c.store.Add(ctx, lane, text)
	switch {
	case errors.Is(err, board.ErrEmptyInput):
		c.notice = "Invalid input: a task needs some text."
		return model.Task{}, err
	case err != nil:
		c.report(err)
	default:
		c.status = "added to " + lane.Title()
	}
	return t, err
}

// CommitEdit stores the edited text. Stale ids are ignored.
func (c *Controller) CommitEdit(ctx context.Context, id model.Identifier, text string) error {
	ok, err := c.store.UpdateText(ctx, id, text)
	if err != nil {
		c.report(err)
		return err
	}
	if ok {
		c.status = "edited"
	}
	return nil
}

// Delete removes the task. Stale ids are ignored.
func (c *Controller) Delete(ctx context.Context, id model.Identifier) error {
	ok, err := c.store.Remove(ctx, id)
	if c.armed != nil && c.armed.ID == id {
		c.armed = nil
	}
	if err != nil {
		c.report(err)
		return err
	}
	if ok {
		c.status = "removed"
	}
	return nil
}

// Hover arms the task under the pointer, replacing any earlier target.
func (c *Controller) Hover(id model.Identifier) {
	if _, lane, ok := c.store.Find(id); ok {
		c.armed = &Armed{ID: id, Lane: lane}
		return
	}
	c.armed = nil
}

// Disarm clears the target, e.g. when the pointer rests on no task.
func (c *Controller) Disarm() { c.armed = nil }

func (c *Controller) Armed() (Armed, bool) {
	if c.armed == nil {
		return Armed{}, false
	}
	return *c.armed, true
}

// KeyPress handles a key while a task may be armed. Only alt-modified keys
// count. Any such key consumes the arming; digits 1-3 also move the task to
// that lane, carrying text as its new content.
func (c *Controller) KeyPress(ctx context.Context, alt bool, key, text string) (bool, error) {
	if !alt || c.armed == nil {
		return false, nil
	}
	target := *c.armed
	c.armed = nil

	d, err := strconv.Atoi(key)
	if err != nil {
		return false, nil
	}
	lane, ok := model.LaneForDigit(d)
	if !ok {
		return false, nil
	}
	if _, err := c.store.Move(ctx, target.ID, text, lane); err != nil {
		if errors.Is(err, board.ErrNotFound) {
			return false, nil
		}
		c.report(err)
		return true, err
	}
	c.status = "moved to " + lane.Title()
	return true, nil
}

// SetQuery changes the search filter. It never touches the board.
func (c *Controller) SetQuery(q string) { c.query = q }

func (c *Controller) Query() string { return c.query }

// Notice is a message the user must acknowledge before continuing.
func (c *Controller) Notice() string { return c.notice }

func (c *Controller) DismissNotice() { c.notice = "" }

// Status is the last one-line outcome, shown under the board.
func (c *Controller) Status() string { return c.status }

func (c *Controller) report(err error) {
	if errors.Is(err, board.ErrStorageUnavailable) {
		c.status = "not saved: " + err.Error()
		return
	}
	c.status = err.Error()
}
