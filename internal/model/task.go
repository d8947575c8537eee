package model

import (
	"fmt"
	"strings"
)

// Identifier is a task id, unique across the whole board.
type Identifier int

// Task is the domain model for a card on the board.
type Task struct {
	ID   Identifier
	Text string
}

// Lane is one of the three fixed task lists.
type Lane int

const (
	Todo Lane = iota
	InProgress
	Done
)

// Lanes lists every lane in board order.
var Lanes = [...]Lane{Todo, InProgress, Done}

func (l Lane) String() string {
	switch l {
	case Todo:
		return "todo"
	case InProgress:
		return "in-progress"
	case Done:
		return "done"
	}
	return fmt.Sprintf("lane(%d)", int(l))
}

// Title is the human label used in headers.
func (l Lane) Title() string {
	switch l {
	case Todo:
		return "To Do"
	case InProgress:
		return "In Progress"
	case Done:
		return "Done"
	}
	return l.String()
}

func (l Lane) Valid() bool { return l >= Todo && l <= Done }

// ParseLane accepts the persisted lane names, a few aliases and the digits 1-3.
func ParseLane(s string) (Lane, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "to-do", "1":
		return Todo, nil
	case "in-progress", "inprogress", "progress", "doing", "2":
		return InProgress, nil
	case "done", "3":
		return Done, nil
	}
	return 0, fmt.Errorf("unknown lane %q (want todo, in-progress or done)", s)
}

// LaneForDigit maps the move shortcut digits to lanes.
func LaneForDigit(d int) (Lane, bool) {
	if d < 1 || d > len(Lanes) {
		return 0, false
	}
	return Lanes[d-1], true
}
