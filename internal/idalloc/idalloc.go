// Package idalloc hands out task identifiers that are unique across a board.
package idalloc

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Makepad-fr/kanban/internal/model"
)

const (
	DefaultMin model.Identifier = 1
	DefaultMax model.Identifier = 100
)

// ErrExhausted is returned when every id in the range is already taken.
var ErrExhausted = errors.New("id range exhausted")

// Allocator picks ids uniformly at random from [Min, Max].
type Allocator struct {
	min, max model.Identifier
	rng      *rand.Rand
}

// New returns an allocator over [lo, hi] seeded from the clock.
func New(lo, hi model.Identifier) (*Allocator, error) {
	seed := uint64(time.Now().UnixNano())
	return NewWithSource(lo, hi, rand.NewPCG(seed, seed>>1|1))
}

// NewWithSource is New with an explicit random source, for tests.
func NewWithSource(lo, hi model.Identifier, src rand.Source) (*Allocator, error) {
	if lo < 1 || hi < lo {
		return nil, fmt.Errorf("invalid id range [%d, %d]", lo, hi)
	}
	return &Allocator{min: lo, max: hi, rng: rand.New(src)}, nil
}

// Default is the 1-100 allocator.
func Default() *Allocator {
	a, _ := New(DefaultMin, DefaultMax)
	return a
}

func (a *Allocator) Range() (model.Identifier, model.Identifier) { return a.min, a.max }

// Allocate draws candidates until one is not present on b.
func (a *Allocator) Allocate(b model.Board) (model.Identifier, error) {
	used := b.IDs()
	free := 0
	for id := a.min; id <= a.max; id++ {
		if _, ok := used[id]; !ok {
			free++
		}
	}
	if free == 0 {
		return 0, ErrExhausted
	}
	span := int(a.max-a.min) + 1
	for {
		id := a.min + model.Identifier(a.rng.IntN(span))
		if _, taken := used[id]; !taken {
			return id, nil
		}
	}
}
