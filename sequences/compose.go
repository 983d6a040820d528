package sequences

import (
	"github.com/texere-ot/otcore/algebra"
	"github.com/texere-ot/otcore/values"
)

func init() {
	algebra.RegisterCompose("sequences.Splice", "sequences.Splice", composeSpliceSplice)
	algebra.RegisterCompose("sequences.Splice", "sequences.Patch", composeSplicePatch)
	algebra.RegisterCompose("sequences.Patch", "sequences.Patch", composePatchPatch)
}

// composeSpliceSplice covers Splice's atomic_compose cases: containment
// fuses locally, exact abutment merges into one Splice, disjoint ranges
// become a two-hunk Patch, and genuine partial overlap declines to fuse.
func composeSpliceSplice(a, b algebra.Operation) (algebra.Operation, bool) {
	sa, sb := a.(Splice), b.(Splice)
	aInsLen, err := length(sa.NewValue)
	if err != nil {
		return nil, false
	}

	switch {
	case sb.Offset >= sa.Offset && sb.Offset+sb.Length <= sa.Offset+aInsLen:
		// b's range falls entirely inside a's inserted content: patch it
		// locally and keep a single Splice.
		rel := sb.Offset - sa.Offset
		out, err := sliceReplace(sa.NewValue, rel, sb.Length, sb.NewValue)
		if err != nil {
			return nil, false
		}
		return Splice{Offset: sa.Offset, Length: sa.Length, NewValue: out}, true

	case sb.Offset == sa.Offset+aInsLen:
		// b picks up exactly where a's insertion ends: a single merged
		// edit over the original document.
		merged, err := concat(sa.NewValue, sb.NewValue)
		if err != nil {
			return nil, false
		}
		return Splice{Offset: sa.Offset, Length: sa.Length + sb.Length, NewValue: merged}, true

	case sb.Offset+sb.Length == sa.Offset:
		// b lies entirely before a's touched range, abutting it exactly.
		merged, err := concat(sb.NewValue, sa.NewValue)
		if err != nil {
			return nil, false
		}
		return Splice{Offset: sb.Offset, Length: sb.Length + sa.Length, NewValue: merged}, true

	case sb.Offset >= sa.Offset+aInsLen || sb.Offset+sb.Length <= sa.Offset:
		// Disjoint: express as two independent hunks over the original
		// document, translating b's post-a-state offset back.
		origBOffset := sb.Offset
		if sb.Offset >= sa.Offset+aInsLen {
			origBOffset = sb.Offset - aInsLen + sa.Length
		}
		first, second := sa, Splice{Offset: origBOffset, Length: sb.Length, NewValue: sb.NewValue}
		if origBOffset > sa.Offset {
			return Patch{Hunks: []Hunk{
				{Gap: sa.Offset, Length: sa.Length, Op: setOf(sa.NewValue)},
				{Gap: origBOffset - (sa.Offset + sa.Length), Length: second.Length, Op: setOf(second.NewValue)},
			}}, true
		}
		return Patch{Hunks: []Hunk{
			{Gap: second.Offset, Length: second.Length, Op: setOf(second.NewValue)},
			{Gap: first.Offset - (second.Offset + second.Length), Length: first.Length, Op: setOf(first.NewValue)},
		}}, true

	default:
		// Genuine partial overlap: no single-operation fusion exists.
		return nil, false
	}
}

// composeSplicePatch handles a Splice followed by a single-index Apply,
// whose index i is measured in the post-Splice document. When i falls
// inside the Splice's inserted content, the sub-op patches that content
// locally. When i lands immediately after it, i refers to the first
// untouched element of the original document: the Splice is extended to
// absorb that one element so the fusion still reduces to a single Splice.
func composeSplicePatch(a, b algebra.Operation) (algebra.Operation, bool) {
	sa := a.(Splice)
	patch := b.(Patch)
	if len(patch.Hunks) != 1 || patch.Hunks[0].Length != 1 {
		return nil, false
	}
	idx := absoluteIndices(patch)[0]
	sub := patch.Hunks[0].Op
	newLen, err := length(sa.NewValue)
	if err != nil {
		return nil, false
	}

	if idx >= sa.Offset && idx < sa.Offset+newLen {
		rel := idx - sa.Offset
		elem, err := elementAt(sa.NewValue, rel)
		if err != nil {
			return nil, false
		}
		out, err := sub.Apply(elem)
		if err != nil {
			return nil, false
		}
		newNewValue, err := sliceReplace(sa.NewValue, rel, 1, out)
		if err != nil {
			return nil, false
		}
		return Splice{Offset: sa.Offset, Length: sa.Length, NewValue: newNewValue}, true
	}

	if idx == sa.Offset+newLen {
		// The original element at this position isn't known at compose
		// time, only its position — apply sub to the Missing sentinel so
		// input-independent sub-ops (Set and the like) still fuse; a
		// sub-op that actually inspects its argument fails type-checking
		// against Missing and declines rather than fusing incorrectly.
		out, err := sub.Apply(algebra.Missing)
		if err != nil {
			return nil, false
		}
		slot, err := singletonValue(sa.NewValue, out)
		if err != nil {
			return nil, false
		}
		extended, err := concat(sa.NewValue, slot)
		if err != nil {
			return nil, false
		}
		return Splice{Offset: sa.Offset, Length: sa.Length + 1, NewValue: extended}, true
	}

	return nil, false
}

// singletonValue wraps v as a single element of the same sequence kind as
// sample, so it can be concat-ed onto a NewValue of that kind: a bare
// string for string documents, a one-element slice for arrays.
func singletonValue(sample, v any) (any, error) {
	switch sample.(type) {
	case string:
		s, ok := v.(string)
		if !ok {
			return nil, algebra.ErrTypeMismatch
		}
		return s, nil
	case []any:
		return []any{v}, nil
	default:
		return nil, algebra.ErrTypeMismatch
	}
}

// composePatchPatch fuses two Apply-shaped (single-element) patches: the
// same index sub-composes, disjoint indices merge into one index map.
func composePatchPatch(a, b algebra.Operation) (algebra.Operation, bool) {
	pa, pb := a.(Patch), b.(Patch)
	if !isApplyShaped(pa) || !isApplyShaped(pb) {
		return nil, false
	}
	merged := map[int]algebra.Operation{}
	for i, idx := range absoluteIndices(pa) {
		merged[idx] = pa.Hunks[i].Op
	}
	for i, idx := range absoluteIndices(pb) {
		if existing, found := merged[idx]; found {
			composed, ok := algebra.AtomicCompose(existing, pb.Hunks[i].Op)
			if !ok {
				return nil, false
			}
			merged[idx] = composed
		} else {
			merged[idx] = pb.Hunks[i].Op
		}
	}
	out, err := NewApplyMap(merged)
	if err != nil {
		return nil, false
	}
	return out.Simplify(), true
}

func setOf(v any) algebra.Operation {
	return values.Set{Value: v}
}

// sliceReplace returns doc with doc[offset:offset+length] replaced by
// replacement, in the same container kind as doc.
func sliceReplace(doc any, offset, length int, replacement any) (any, error) {
	n, err := sliceLen(doc)
	if err != nil {
		return nil, err
	}
	head, err := slice(doc, 0, offset)
	if err != nil {
		return nil, err
	}
	tail, err := slice(doc, offset+length, n)
	if err != nil {
		return nil, err
	}
	return concat(head, replacement, tail)
}

func sliceLen(doc any) (int, error) {
	return length(doc)
}
