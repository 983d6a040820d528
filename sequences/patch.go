package sequences

import (
	"fmt"
	"strings"

	"github.com/texere-ot/otcore/algebra"
	"github.com/texere-ot/otcore/values"
)

// Hunk is one covered slice of a Patch: Gap code units/elements are copied
// verbatim from the previous hunk's end, then the next Length are run
// through Op.
type Hunk struct {
	Gap    int
	Length int
	Op     algebra.Operation
}

// Patch is the general hunk-list form every sequence edit reduces to: a
// Splice is a single Set-hunk, an element Apply is a length-1 hunk, and an
// index map is several length-1 hunks.
type Patch struct {
	Hunks []Hunk
}

// Tag identifies Patch for dispatch and serialization.
func (Patch) Tag() string { return "sequences.Patch" }

// Category reports Patch as a sequence-algebra operation.
func (Patch) Category() string { return "sequence" }

// Apply walks the hunks left to right, copying gaps and running each
// hunk's sub-operation over its covered slice.
func (p Patch) Apply(doc any) (any, error) {
	n, err := length(doc)
	if err != nil {
		return nil, err
	}
	parts := make([]any, 0, len(p.Hunks)*2+1)
	pos := 0
	for _, h := range p.Hunks {
		if h.Gap < 0 || h.Length < 0 {
			return nil, algebra.ErrInvalidOperand
		}
		gapEnd := pos + h.Gap
		if gapEnd > n {
			return nil, algebra.ErrOutOfRange
		}
		gapSlice, err := slice(doc, pos, gapEnd)
		if err != nil {
			return nil, err
		}
		parts = append(parts, gapSlice)
		hunkEnd := gapEnd + h.Length
		if hunkEnd > n {
			return nil, algebra.ErrOutOfRange
		}
		hunkSlice, err := slice(doc, gapEnd, hunkEnd)
		if err != nil {
			return nil, err
		}
		out, err := h.Op.Apply(hunkSlice)
		if err != nil {
			return nil, err
		}
		parts = append(parts, out)
		pos = hunkEnd
	}
	tail, err := slice(doc, pos, n)
	if err != nil {
		return nil, err
	}
	parts = append(parts, tail)
	return concat(parts...)
}

// Simplify drops hunks whose sub-operation is an identity, folding their
// span into the surrounding gap, and collapses an empty hunk list to NoOp.
//
// A lone remaining hunk is not collapsed down to its sub_op even when its
// Gap is 0: Patch carries no notion of "this hunk reaches the document's
// end," so that collapse would silently drop the untouched tail whenever
// the hunk doesn't happen to cover the whole document.
func (p Patch) Simplify() algebra.Operation {
	var kept []Hunk
	carry := 0
	for _, h := range p.Hunks {
		sub := h.Op.Simplify()
		if algebra.IsIdentity(sub) {
			carry += h.Gap + h.Length
			continue
		}
		kept = append(kept, Hunk{Gap: h.Gap + carry, Length: h.Length, Op: sub})
		carry = 0
	}
	if len(kept) == 0 {
		return values.NoOp{}
	}
	return Patch{Hunks: kept}
}

// Inverse produces the Patch that undoes p, given the pre-state doc: gaps
// are unaffected by p, but each hunk's length becomes the post-state
// length of its own sub-operation's output.
func (p Patch) Inverse(doc any) (algebra.Operation, error) {
	n, err := length(doc)
	if err != nil {
		return nil, err
	}
	hunks := make([]Hunk, 0, len(p.Hunks))
	pos := 0
	for _, h := range p.Hunks {
		gapEnd := pos + h.Gap
		if gapEnd > n {
			return nil, algebra.ErrOutOfRange
		}
		hunkEnd := gapEnd + h.Length
		if hunkEnd > n {
			return nil, algebra.ErrOutOfRange
		}
		hunkSlice, err := slice(doc, gapEnd, hunkEnd)
		if err != nil {
			return nil, err
		}
		invOp, err := h.Op.Inverse(hunkSlice)
		if err != nil {
			return nil, err
		}
		postOut, err := h.Op.Apply(hunkSlice)
		if err != nil {
			return nil, err
		}
		postLen, err := length(postOut)
		if err != nil {
			return nil, err
		}
		hunks = append(hunks, Hunk{Gap: h.Gap, Length: postLen, Op: invOp})
		pos = hunkEnd
	}
	return Patch{Hunks: hunks}, nil
}

// Inspect renders the diagnostic form. A single Set-hunk (i.e. a Splice in
// disguise) prints its value directly rather than recursing into the
// sub-operation's own Inspect.
func (p Patch) Inspect() string {
	if len(p.Hunks) == 1 {
		h := p.Hunks[0]
		if set, ok := h.Op.(values.Set); ok {
			return fmt.Sprintf("<sequences.PATCH +%dx%d %s>", h.Gap, h.Length, previewValue(set.Value))
		}
	}
	parts := make([]string, len(p.Hunks))
	for i, h := range p.Hunks {
		parts[i] = fmt.Sprintf("+%dx%d %s", h.Gap, h.Length, h.Op.Inspect())
	}
	return fmt.Sprintf("<sequences.PATCH [%s]>", strings.Join(parts, ", "))
}

// Encode renders Patch's wire form: each hunk as a [gap, length, op] triple.
func (p Patch) Encode() algebra.Encoded {
	hunks := make([]any, len(p.Hunks))
	for i, h := range p.Hunks {
		hunks[i] = []any{h.Gap, h.Length, h.Op.Encode()}
	}
	return algebra.Encoded{Module: "sequences", Op: "Patch", Fields: []any{hunks}}
}

// NewApply builds the single-index Patch equivalent to Apply(i, op).
func NewApply(i int, op algebra.Operation) Patch {
	return Patch{Hunks: []Hunk{{Gap: i, Length: 1, Op: op}}}
}

// NewApplyMap builds the Patch equivalent to Apply({i1: op1, i2: op2, ...}),
// one length-1 hunk per index, in ascending index order.
func NewApplyMap(m map[int]algebra.Operation) (Patch, error) {
	indices := make([]int, 0, len(m))
	for i := range m {
		indices = append(indices, i)
	}
	sortInts(indices)
	hunks := make([]Hunk, 0, len(indices))
	pos := 0
	for _, i := range indices {
		if i < pos {
			return Patch{}, algebra.ErrInvalidOperand
		}
		hunks = append(hunks, Hunk{Gap: i - pos, Length: 1, Op: m[i]})
		pos = i + 1
	}
	return Patch{Hunks: hunks}, nil
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// isApplyShaped reports whether every hunk in p has length 1, i.e. p is an
// element-wise index-map Apply rather than a general range hunk list.
func isApplyShaped(p Patch) bool {
	for _, h := range p.Hunks {
		if h.Length != 1 {
			return false
		}
	}
	return len(p.Hunks) > 0
}

// absoluteIndices returns the absolute index of each hunk, assuming p is
// Apply-shaped.
func absoluteIndices(p Patch) []int {
	idx := make([]int, len(p.Hunks))
	pos := 0
	for i, h := range p.Hunks {
		pos += h.Gap
		idx[i] = pos
		pos += h.Length
	}
	return idx
}

func init() {
	algebra.Register("sequences", "Patch", func(fields []any) (algebra.Operation, error) {
		if len(fields) != 1 {
			return nil, fmt.Errorf("sequences: Patch expects 1 field, got %d", len(fields))
		}
		rawHunks, ok := fields[0].([]any)
		if !ok {
			return nil, algebra.ErrInvalidOperand
		}
		hunks := make([]Hunk, len(rawHunks))
		for i, rh := range rawHunks {
			triple, ok := rh.([]any)
			if !ok || len(triple) != 3 {
				return nil, algebra.ErrInvalidOperand
			}
			gap, okG := triple[0].(int)
			ln, okL := triple[1].(int)
			enc, okE := triple[2].(algebra.Encoded)
			if !okG || !okL || !okE {
				return nil, algebra.ErrInvalidOperand
			}
			op, err := algebra.Decode(enc)
			if err != nil {
				return nil, err
			}
			hunks[i] = Hunk{Gap: gap, Length: ln, Op: op}
		}
		return Patch{Hunks: hunks}, nil
	})
}
