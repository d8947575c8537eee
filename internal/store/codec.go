package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/Makepad-fr/kanban/internal/model"
)

// IDPrefix is prepended to numeric ids in the stored record.
const IDPrefix = "task"

type record struct {
	ID   string `json:"id"`
	Task string `json:"task"`
}

type boardRecord struct {
	Todo       []record `json:"todo"`
	InProgress []record `json:"in-progress"`
	Done       []record `json:"done"`
}

func (r *boardRecord) lane(l model.Lane) *[]record {
	switch l {
	case model.InProgress:
		return &r.InProgress
	case model.Done:
		return &r.Done
	default:
		return &r.Todo
	}
}

// Label renders an id the way it is stored, e.g. "task42".
func Label(id model.Identifier) string {
	return IDPrefix + strconv.Itoa(int(id))
}

// ParseLabel extracts the numeric id from a stored label. Zero is accepted:
// older boards drew ids from 0-100, new ones are only allocated from 1.
func ParseLabel(s string) (model.Identifier, error) {
	if !strings.HasPrefix(s, IDPrefix) {
		return 0, fmt.Errorf("id %q: missing %q prefix", s, IDPrefix)
	}
	n, err := strconv.Atoi(s[len(IDPrefix):])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("id %q: bad number", s)
	}
	return model.Identifier(n), nil
}

// Encode serializes b into the stored record layout.
func Encode(b model.Board) ([]byte, error) {
	var r boardRecord
	for _, l := range model.Lanes {
		dst := r.lane(l)
		*dst = make([]record, 0, len(b.Lane(l)))
		for _, t := range b.Lane(l) {
			*dst = append(*dst, record{ID: Label(t.ID), Task: t.Text})
		}
	}
	out, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return out, nil
}

// Decode parses a stored record. Missing lanes decode as empty; bad or
// duplicate ids are errors.
func Decode(raw []byte) (model.Board, error) {
	var r boardRecord
	if err := sonic.ConfigStd.Unmarshal(raw, &r); err != nil {
		return model.Board{}, fmt.Errorf("json unmarshal: %w", err)
	}
	b := model.NewBoard()
	seen := map[model.Identifier]model.Lane{}
	for _, l := range model.Lanes {
		src := *r.lane(l)
		tasks := make([]model.Task, 0, len(src))
		for _, rec := range src {
			id, err := ParseLabel(rec.ID)
			if err != nil {
				return model.Board{}, fmt.Errorf("%s: %w", l, err)
			}
			if prev, dup := seen[id]; dup {
				return model.Board{}, fmt.Errorf("%s: id %d already used in %s", l, id, prev)
			}
			seen[id] = l
			tasks = append(tasks, model.Task{ID: id, Text: rec.Task})
		}
		b.SetLane(l, tasks)
	}
	return b, nil
}
