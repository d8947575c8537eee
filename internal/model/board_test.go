package model

import "testing"

func TestRemoveAtDeletesOnlyTarget(t *testing.T) {
	for i, want := range [][]Identifier{{2, 3}, {1, 3}, {1, 2}} {
		b := NewBoard()
		b.Append(Todo, Task{ID: 1, Text: "A"})
		b.Append(Todo, Task{ID: 2, Text: "B"})
		b.Append(Todo, Task{ID: 3, Text: "C"})

		if _, ok := b.RemoveAt(Todo, i); !ok {
			t.Fatalf("remove index %d: not removed", i)
		}
		got := b.Lane(Todo)
		if len(got) != len(want) {
			t.Fatalf("remove index %d: got %v", i, got)
		}
		for j := range want {
			if got[j].ID != want[j] {
				t.Fatalf("remove index %d: got %v, want ids %v", i, got, want)
			}
		}
	}
}

func TestRemoveAtDoesNotTouchClones(t *testing.T) {
	b := NewBoard()
	b.Append(Done, Task{ID: 1, Text: "A"})
	b.Append(Done, Task{ID: 2, Text: "B"})
	snap := b.Clone()

	b.RemoveAt(Done, 0)
	if len(snap.Lane(Done)) != 2 || snap.Lane(Done)[0].ID != 1 {
		t.Fatalf("snapshot changed: %v", snap.Lane(Done))
	}
}

func TestLocate(t *testing.T) {
	b := NewBoard()
	b.Append(Todo, Task{ID: 5, Text: "x"})
	b.Append(InProgress, Task{ID: 9, Text: "y"})

	l, i, ok := b.Locate(9)
	if !ok || l != InProgress || i != 0 {
		t.Fatalf("locate 9: %v %d %v", l, i, ok)
	}
	if b.Contains(10) {
		t.Fatal("unexpected id 10")
	}
	if b.Len() != 2 {
		t.Fatalf("len: %d", b.Len())
	}
}

func TestParseLane(t *testing.T) {
	cases := map[string]Lane{
		"todo":        Todo,
		"TODO":        Todo,
		"1":           Todo,
		"in-progress": InProgress,
		"doing":       InProgress,
		"2":           InProgress,
		"done":        Done,
		" 3 ":         Done,
	}
	for in, want := range cases {
		got, err := ParseLane(in)
		if err != nil || got != want {
			t.Errorf("ParseLane(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLane("later"); err == nil {
		t.Error("expected error for unknown lane")
	}
}

func TestLaneForDigit(t *testing.T) {
	for d, want := range map[int]Lane{1: Todo, 2: InProgress, 3: Done} {
		got, ok := LaneForDigit(d)
		if !ok || got != want {
			t.Errorf("LaneForDigit(%d) = %v, %v", d, got, ok)
		}
	}
	for _, d := range []int{0, 4, 9} {
		if _, ok := LaneForDigit(d); ok {
			t.Errorf("LaneForDigit(%d) should fail", d)
		}
	}
}
