// Package table holds the blocks-world state: a fixed row of slots, each
// carrying a bottom-to-top stack of numbered blocks.
//
// Block b starts in slot b, which stays its home slot for the life of the
// table. Every block is present in exactly one slot at all times; the Move
// handle returned by BeginPileMove and BeginBlockMove is the only way to
// mutate the table.
package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type position struct {
	slot int
	pos  int
}

// Table is the set of slots and the blocks stacked on them.
type Table struct {
	slots [][]int
	// index[b] tracks where block b currently sits; kept in sync by push and cut.
	index   []position
	pending *Move
}

// New returns a table with size slots, slot i holding only block i.
func New(size int) (*Table, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidSize, size)
	}
	t := &Table{
		slots: make([][]int, size),
		index: make([]position, size),
	}
	for i := range t.slots {
		t.slots[i] = []int{i}
		t.index[i] = position{slot: i}
	}
	return t, nil
}

// Size reports the number of slots, which is also the number of blocks.
func (t *Table) Size() int {
	return len(t.slots)
}

// Locate returns the slot holding id and the block's depth within it (0 is the bottom).
func (t *Table) Locate(id int) (slot, pos int, err error) {
	if id < 0 || id >= len(t.index) {
		return 0, 0, &BlockNotFoundError{ID: id}
	}
	p := t.index[id]
	return p.slot, p.pos, nil
}

// Slots returns a copy of every stack, bottom to top.
func (t *Table) Slots() [][]int {
	out := make([][]int, len(t.slots))
	for i, stack := range t.slots {
		out[i] = append([]int(nil), stack...)
	}
	return out
}

// Render writes one "<slot>: <blocks>" line per slot.
func (t *Table) Render(w io.Writer) error {
	if t.pending != nil {
		return ErrMoveInProgress
	}
	_, err := io.WriteString(w, t.String())
	return err
}

func (t *Table) String() string {
	var b strings.Builder
	for i, stack := range t.slots {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(':')
		for _, block := range stack {
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(block))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Verify checks that every block appears exactly once and that the lookup
// index agrees with the stacks.
func (t *Table) Verify() error {
	seen := make([]bool, len(t.slots))
	for slot, stack := range t.slots {
		for pos, block := range stack {
			if block < 0 || block >= len(seen) {
				return fmt.Errorf("slot %d holds unknown block %d", slot, block)
			}
			if seen[block] {
				return fmt.Errorf("block %d appears more than once", block)
			}
			seen[block] = true
			if got := t.index[block]; got.slot != slot || got.pos != pos {
				return fmt.Errorf("index for block %d points at %d/%d, found at %d/%d", block, got.slot, got.pos, slot, pos)
			}
		}
	}
	for block, ok := range seen {
		if !ok {
			return fmt.Errorf("block %d is missing", block)
		}
	}
	return nil
}

func (t *Table) push(slot int, blocks ...int) {
	for _, block := range blocks {
		t.index[block] = position{slot: slot, pos: len(t.slots[slot])}
		t.slots[slot] = append(t.slots[slot], block)
	}
}

// cut detaches everything at or above pos in slot. The returned run does not
// share storage with the slot.
func (t *Table) cut(slot, pos int) []int {
	stack := t.slots[slot]
	if pos >= len(stack) {
		return nil
	}
	run := append([]int(nil), stack[pos:]...)
	t.slots[slot] = stack[:pos]
	return run
}

func (t *Table) returnHome(blocks []int) {
	for _, block := range blocks {
		t.push(block, block)
	}
}
