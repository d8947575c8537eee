package model

// Board holds the three lanes. Within a lane, tasks are kept in insertion
// order: index 0 is the oldest.
type Board struct {
	lanes [len(Lanes)][]Task
}

// NewBoard returns a board with three empty lanes.
func NewBoard() Board {
	var b Board
	for _, l := range Lanes {
		b.lanes[l] = []Task{}
	}
	return b
}

// Lane returns the tasks of l. The slice is shared with the board; use
// Clone before handing it out.
func (b Board) Lane(l Lane) []Task {
	if !l.Valid() {
		return nil
	}
	return b.lanes[l]
}

// SetLane replaces the contents of l.
func (b *Board) SetLane(l Lane, tasks []Task) {
	if !l.Valid() {
		return
	}
	if tasks == nil {
		tasks = []Task{}
	}
	b.lanes[l] = tasks
}

// Append adds t at the end of l.
func (b *Board) Append(l Lane, t Task) {
	if !l.Valid() {
		return
	}
	b.lanes[l] = append(b.lanes[l], t)
}

// RemoveAt deletes exactly the element at index i of l.
func (b *Board) RemoveAt(l Lane, i int) (Task, bool) {
	if !l.Valid() || i < 0 || i >= len(b.lanes[l]) {
		return Task{}, false
	}
	t := b.lanes[l][i]
	b.lanes[l] = append(b.lanes[l][:i:i], b.lanes[l][i+1:]...)
	return t, true
}

// Locate finds the lane and index holding id.
func (b Board) Locate(id Identifier) (Lane, int, bool) {
	for _, l := range Lanes {
		for i, t := range b.lanes[l] {
			if t.ID == id {
				return l, i, true
			}
		}
	}
	return 0, -1, false
}

func (b Board) Contains(id Identifier) bool {
	_, _, ok := b.Locate(id)
	return ok
}

// SetText rewrites the text of the task at index i of l in place.
func (b *Board) SetText(l Lane, i int, text string) bool {
	if !l.Valid() || i < 0 || i >= len(b.lanes[l]) {
		return false
	}
	b.lanes[l][i].Text = text
	return true
}

// Len is the total number of tasks on the board.
func (b Board) Len() int {
	n := 0
	for _, l := range Lanes {
		n += len(b.lanes[l])
	}
	return n
}

// IDs returns the set of identifiers currently in use.
func (b Board) IDs() map[Identifier]struct{} {
	ids := make(map[Identifier]struct{}, b.Len())
	for _, l := range Lanes {
		for _, t := range b.lanes[l] {
			ids[t.ID] = struct{}{}
		}
	}
	return ids
}

// Clone returns a deep copy.
func (b Board) Clone() Board {
	var c Board
	for _, l := range Lanes {
		c.lanes[l] = append([]Task{}, b.lanes[l]...)
	}
	return c
}

// Equal reports whether both boards hold the same tasks in the same order.
func (b Board) Equal(o Board) bool {
	for _, l := range Lanes {
		if len(b.lanes[l]) != len(o.lanes[l]) {
			return false
		}
		for i := range b.lanes[l] {
			if b.lanes[l][i] != o.lanes[l][i] {
				return false
			}
		}
	}
	return true
}
