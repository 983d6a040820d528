package sequences

import (
	"fmt"

	"github.com/texere-ot/otcore/algebra"
	"github.com/texere-ot/otcore/values"
)

// Move relocates the Count elements starting at Offset so they begin at
// NewOffset (interpreted in the pre-move document's coordinates).
type Move struct {
	Offset, Count, NewOffset int
}

// Tag identifies Move for dispatch and serialization.
func (Move) Tag() string { return "sequences.Move" }

// Category reports Move as a sequence-algebra operation.
func (Move) Category() string { return "sequence" }

// Apply relocates doc[Offset:Offset+Count] so it begins at NewOffset.
func (m Move) Apply(doc any) (any, error) {
	n, err := length(doc)
	if err != nil {
		return nil, err
	}
	if m.Offset < 0 || m.Count < 0 || m.Offset+m.Count > n || m.NewOffset < 0 || m.NewOffset > n {
		return nil, algebra.ErrOutOfRange
	}
	moved, err := slice(doc, m.Offset, m.Offset+m.Count)
	if err != nil {
		return nil, err
	}
	before, err := slice(doc, 0, m.Offset)
	if err != nil {
		return nil, err
	}
	after, err := slice(doc, m.Offset+m.Count, n)
	if err != nil {
		return nil, err
	}
	without, err := concat(before, after)
	if err != nil {
		return nil, err
	}
	insertAt := m.NewOffset
	if m.NewOffset > m.Offset {
		insertAt -= m.Count
	}
	head, err := slice(without, 0, insertAt)
	if err != nil {
		return nil, err
	}
	tail, err := slice(without, insertAt, n-m.Count)
	if err != nil {
		return nil, err
	}
	return concat(head, moved, tail)
}

// Simplify collapses a Move that doesn't actually relocate anything to NoOp.
func (m Move) Simplify() algebra.Operation {
	if m.Count == 0 || m.NewOffset == m.Offset || m.NewOffset == m.Offset+m.Count {
		return values.NoOp{}
	}
	return m
}

// Inverse produces the Move that relocates the block back to Offset.
func (m Move) Inverse(any) (algebra.Operation, error) {
	switch {
	case m.NewOffset > m.Offset:
		return Move{Offset: m.NewOffset - m.Count, Count: m.Count, NewOffset: m.Offset}, nil
	case m.NewOffset < m.Offset:
		return Move{Offset: m.NewOffset, Count: m.Count, NewOffset: m.Offset + m.Count}, nil
	default:
		return values.NoOp{}, nil
	}
}

// Inspect renders the diagnostic form.
func (m Move) Inspect() string {
	return fmt.Sprintf("<sequences.MOVE @%dx%d => @%d>", m.Offset, m.Count, m.NewOffset)
}

// Encode renders Move's wire form.
func (m Move) Encode() algebra.Encoded {
	return algebra.Encoded{Module: "sequences", Op: "Move", Fields: []any{m.Offset, m.Count, m.NewOffset}}
}

// movePointThroughMove maps a single pre-move index to where it lands
// post-move. Points inside the moved block are carried along with it, so
// (unlike a Splice boundary) this mapping never conflicts.
func movePointThroughMove(pos int, mv Move) int {
	start, end := mv.Offset, mv.Offset+mv.Count
	insertAt := mv.NewOffset
	if mv.NewOffset > mv.Offset {
		insertAt -= mv.Count
	}
	if pos >= start && pos < end {
		return insertAt + (pos - start)
	}
	withoutPos := pos
	if pos >= end {
		withoutPos -= mv.Count
	}
	if withoutPos >= insertAt {
		return withoutPos + mv.Count
	}
	return withoutPos
}

// movePosition maps a Splice-style boundary position through mv. Positions
// strictly inside the moved block are ambiguous for a range boundary (the
// range would no longer be contiguous) and report ok == false.
func movePosition(pos int, mv Move) (int, bool) {
	start, end := mv.Offset, mv.Offset+mv.Count
	if pos > start && pos < end {
		return 0, false
	}
	return movePointThroughMove(pos, mv), true
}

func init() {
	algebra.Register("sequences", "Move", func(fields []any) (algebra.Operation, error) {
		if len(fields) != 3 {
			return nil, fmt.Errorf("sequences: Move expects 3 fields, got %d", len(fields))
		}
		offset, okO := fields[0].(int)
		count, okC := fields[1].(int)
		newOffset, okN := fields[2].(int)
		if !okO || !okC || !okN {
			return nil, algebra.ErrInvalidOperand
		}
		return Move{Offset: offset, Count: count, NewOffset: newOffset}, nil
	})
}
