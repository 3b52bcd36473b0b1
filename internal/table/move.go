package table

// Move is an outstanding relocation of a block, or of a block and everything
// stacked on it. It holds the table exclusively until Onto, Over or Release
// is called; each Move completes at most once.
type Move struct {
	table *Table
	slot  int
	pos   int
	pile  bool
	done  bool
}

// BeginPileMove starts moving id together with every block above it.
func (t *Table) BeginPileMove(id int) (*Move, error) {
	return t.begin(id, true)
}

// BeginBlockMove starts moving id alone. Blocks above it go back to their
// home slots when the move completes.
func (t *Table) BeginBlockMove(id int) (*Move, error) {
	return t.begin(id, false)
}

func (t *Table) begin(id int, pile bool) (*Move, error) {
	if t.pending != nil {
		return nil, ErrMoveInProgress
	}
	slot, pos, err := t.Locate(id)
	if err != nil {
		return nil, err
	}
	m := &Move{table: t, slot: slot, pos: pos, pile: pile}
	t.pending = m
	return m, nil
}

// Pile reports whether the move carries the blocks stacked above its source.
func (m *Move) Pile() bool {
	return m.pile
}

// Over stacks the moving run on top of the pile holding dest.
func (m *Move) Over(dest int) error {
	return m.complete(dest, false)
}

// Onto returns every block above dest to its home slot, then stacks the
// moving run directly on dest.
func (m *Move) Onto(dest int) error {
	return m.complete(dest, true)
}

// Release abandons the move without touching the table.
func (m *Move) Release() {
	if m.done {
		return
	}
	m.done = true
	if m.table.pending == m {
		m.table.pending = nil
	}
}

func (m *Move) complete(dest int, clearDest bool) error {
	if m.done {
		return ErrMoveConsumed
	}
	defer m.Release()

	t := m.table
	destSlot, _, err := t.Locate(dest)
	if err != nil {
		return err
	}
	if destSlot == m.slot {
		return ErrSameSlot
	}

	run := m.materialize()
	if clearDest {
		_, destPos, _ := t.Locate(dest)
		t.returnHome(t.cut(destSlot, destPos+1))
	}
	t.push(destSlot, run...)
	return nil
}

// materialize detaches the moving run from the source slot.
func (m *Move) materialize() []int {
	t := m.table
	if !m.pile {
		t.returnHome(t.cut(m.slot, m.pos+1))
	}
	return t.cut(m.slot, m.pos)
}
