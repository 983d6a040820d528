package sequences

import (
	"github.com/texere-ot/otcore/algebra"
	"github.com/texere-ot/otcore/values"
)

func init() {
	algebra.RegisterTransform("sequences.Splice", "sequences.Splice", rebaseSpliceSplice)
	algebra.RegisterTransform("sequences.Patch", "sequences.Splice", rebasePatchSplice)
	algebra.RegisterTransform("sequences.Patch", "sequences.Patch", rebasePatchPatch)
	algebra.RegisterTransform("sequences.Move", "sequences.Splice", rebaseMoveSplice)
	algebra.RegisterTransform("sequences.Move", "sequences.Patch", rebaseMovePatch)
	algebra.RegisterTransform("sequences.Move", "sequences.Move", rebaseMoveMove)
	algebra.RegisterCategoryTransform("sequences.Move", "sequence", rebaseMoveDefault)
}

// rebaseSpliceSplice covers the Splice-vs-Splice geometry cases: identical
// edits, pure insertions at the same offset, equal-range replacements,
// disjoint ranges, strict containment either way, and partial overlap.
func rebaseSpliceSplice(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	sa, sb := a.(Splice), b.(Splice)

	if spliceEqual(sa, sb) {
		return noop(), noop(), true
	}

	aStart, aEnd := sa.Offset, sa.Offset+sa.Length
	bStart, bEnd := sb.Offset, sb.Offset+sb.Length
	insA, errA := length(sa.NewValue)
	insB, errB := length(sb.NewValue)
	if errA != nil || errB != nil {
		return nil, nil, false
	}

	switch {
	case aStart == bStart && sa.Length == 0 && sb.Length == 0:
		// Pure insertions at the same point.
		if !algebra.Conflictless(ctx) {
			return nil, nil, false
		}
		cmp := algebra.Compare(sa.NewValue, sb.NewValue)
		if cmp == 0 {
			return noop(), noop(), true
		}
		if cmp < 0 {
			return sa, Splice{Offset: sb.Offset + insA, Length: 0, NewValue: sb.NewValue}, true
		}
		return Splice{Offset: sa.Offset + insB, Length: 0, NewValue: sa.NewValue}, sb, true

	case aStart == bStart && sa.Length == sb.Length && sa.Length > 0:
		// Same deleted range, possibly different replacement text.
		if !algebra.Conflictless(ctx) {
			return nil, nil, false
		}
		if algebra.Equal(sa.NewValue, sb.NewValue) {
			return noop(), noop(), true
		}
		if algebra.Compare(sa.NewValue, sb.NewValue) < 0 {
			return noop(), sb, true
		}
		return sa, noop(), true

	case aEnd <= bStart || bEnd <= aStart:
		// Disjoint.
		deltaA, deltaB := insA-sa.Length, insB-sb.Length
		aPrime := algebra.Operation(sa)
		if aStart >= bEnd {
			aPrime = Splice{Offset: sa.Offset + deltaB, Length: sa.Length, NewValue: sa.NewValue}
		}
		bPrime := algebra.Operation(sb)
		if bStart >= aEnd {
			bPrime = Splice{Offset: sb.Offset + deltaA, Length: sb.Length, NewValue: sb.NewValue}
		}
		return aPrime, bPrime, true

	case bStart <= aStart && aEnd <= bEnd:
		// b strictly contains a.
		if !algebra.Conflictless(ctx) {
			return nil, nil, false
		}
		var aPrime algebra.Operation
		if sa.Length == 0 {
			aPrime = Splice{Offset: sb.Offset + insB, Length: 0, NewValue: sa.NewValue}
		} else {
			aPrime = noop()
		}
		bPrime := Splice{Offset: sb.Offset, Length: sb.Length + (insA - sa.Length), NewValue: sb.NewValue}
		return aPrime, bPrime, true

	case aStart <= bStart && bEnd <= aEnd:
		// a strictly contains b.
		if !algebra.Conflictless(ctx) {
			return nil, nil, false
		}
		var bPrime algebra.Operation
		if sb.Length == 0 {
			bPrime = Splice{Offset: sa.Offset + insA, Length: 0, NewValue: sb.NewValue}
		} else {
			bPrime = noop()
		}
		aPrime := Splice{Offset: sa.Offset, Length: sa.Length + (insB - sb.Length), NewValue: sa.NewValue}
		return aPrime, bPrime, true

	default:
		// Partial overlap: operate on the non-overlapping remainder only.
		if !algebra.Conflictless(ctx) {
			return nil, nil, false
		}
		aPrime := partialOverlapTrim(sa, bStart, bEnd, insB-sb.Length)
		bPrime := partialOverlapTrim(sb, aStart, aEnd, insA-sa.Length)
		return aPrime, bPrime, true
	}
}

// partialOverlapTrim reduces self to whichever part of its range falls
// outside [otherStart, otherEnd), shifting by otherDelta when the kept
// remainder sits past the other's range.
func partialOverlapTrim(self Splice, otherStart, otherEnd, otherDelta int) algebra.Operation {
	selfStart, selfEnd := self.Offset, self.Offset+self.Length
	switch {
	case selfEnd > otherEnd && selfStart < otherEnd:
		newLen := selfEnd - otherEnd
		return Splice{Offset: otherEnd + otherDelta, Length: newLen, NewValue: self.NewValue}
	case selfStart < otherStart && selfEnd > otherStart:
		newLen := otherStart - selfStart
		return Splice{Offset: selfStart, Length: newLen, NewValue: self.NewValue}
	default:
		return self
	}
}

// rebasePatchSplice handles a Patch rebasing against a Splice. For an
// Apply-shaped patch (every hunk touches exactly one element), each
// index shifts or collapses the same way a lone Apply would: inside the
// spliced region it's replaced and becomes NoOp, at or past the region's
// end it shifts by the Splice's length delta, before it is unaffected. A
// general multi-length-hunk Patch only rebases when every hunk's range is
// entirely disjoint from the Splice's range; anything more tangled
// conflicts rather than guessing at an unspecified text-splitting rule.
func rebasePatchSplice(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	patch := a.(Patch)
	spl := b.(Splice)
	insLen, err := length(spl.NewValue)
	if err != nil {
		return nil, nil, false
	}
	delta := insLen - spl.Length

	if isApplyShaped(patch) {
		idxs := absoluteIndices(patch)
		hunks := make([]Hunk, 0, len(patch.Hunks))
		pos := 0
		for i, idx := range idxs {
			var newIdx int
			switch {
			case idx < spl.Offset:
				newIdx = idx
			case idx >= spl.Offset+spl.Length:
				newIdx = idx + delta
			default:
				continue // replaced by the splice: drop (becomes NoOp)
			}
			if newIdx < pos {
				return nil, nil, false
			}
			hunks = append(hunks, Hunk{Gap: newIdx - pos, Length: 1, Op: patch.Hunks[i].Op})
			pos = newIdx + 1
		}
		patchPrime := algebra.Operation(Patch{Hunks: hunks})
		if len(hunks) == 0 {
			patchPrime = values.NoOp{}
		}
		splicePrime, ok := rebaseSpliceAgainstIndices(spl, idxs)
		if !ok {
			return nil, nil, false
		}
		return patchPrime, splicePrime, true
	}

	pos := 0
	for _, h := range patch.Hunks {
		hunkStart := pos + h.Gap
		hunkEnd := hunkStart + h.Length
		if hunkEnd > spl.Offset && hunkStart < spl.Offset+spl.Length {
			return nil, nil, false // overlaps the spliced region: conflict
		}
		pos = hunkEnd
	}
	newHunks := make([]Hunk, len(patch.Hunks))
	pos = 0
	shifted := false
	for i, h := range patch.Hunks {
		hunkStart := pos + h.Gap
		gap := h.Gap
		if !shifted && hunkStart >= spl.Offset+spl.Length {
			gap += delta
			shifted = true
		}
		newHunks[i] = Hunk{Gap: gap, Length: h.Length, Op: h.Op}
		pos = hunkStart + h.Length
	}
	return Patch{Hunks: newHunks}, spl, true
}

// rebaseSpliceAgainstIndices rebases spl against a set of element-wise
// indices that were touched concurrently. The splice's range is kept
// unchanged: element-wise edits do not move positions, and an edited
// element inside the range is simply replaced by the splice as well.
func rebaseSpliceAgainstIndices(spl Splice, idxs []int) (algebra.Operation, bool) {
	return spl.Simplify(), true
}

// rebasePatchPatch handles Patch rebasing against another Patch. Only the
// Apply-shaped case (every hunk in both patches touches a single element)
// is given a general rule: an index touched by both sides sub-rebases its
// op against the other's op at that index via the ordinary algebra.Rebase
// dispatch (so Set-vs-Set, Math-vs-Math, etc. all reuse their existing
// tie-break rules); an index touched by only one side passes through
// unaffected, since Apply never shifts positions. A general multi-length
// hunk Patch (e.g. one nesting a Splice) has no defined rule here and
// conflicts, the same conservative default rebasePatchSplice uses for its
// own general branch.
func rebasePatchPatch(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	pa, pb := a.(Patch), b.(Patch)
	if !isApplyShaped(pa) || !isApplyShaped(pb) {
		return nil, nil, false
	}

	aOps := map[int]algebra.Operation{}
	for i, idx := range absoluteIndices(pa) {
		aOps[idx] = pa.Hunks[i].Op
	}
	bOps := map[int]algebra.Operation{}
	for i, idx := range absoluteIndices(pb) {
		bOps[idx] = pb.Hunks[i].Op
	}

	aPrime, ok := rebasePatchOps(aOps, bOps, ctx)
	if !ok {
		return nil, nil, false
	}
	bPrime, ok := rebasePatchOps(bOps, aOps, ctx)
	if !ok {
		return nil, nil, false
	}
	return aPrime, bPrime, true
}

// rebasePatchOps rebases each index → op in self against other's op at the
// same index (when present), leaving indices unique to self unchanged, and
// collects the survivors back into a Patch (or NoOp if none survive).
func rebasePatchOps(self, other map[int]algebra.Operation, ctx *algebra.Context) (algebra.Operation, bool) {
	survivors := map[int]algebra.Operation{}
	for idx, op := range self {
		rebased := op
		if otherOp, found := other[idx]; found {
			var ok bool
			rebased, ok = algebra.Rebase(op, otherOp, ctx)
			if !ok {
				return nil, false
			}
		}
		if algebra.IsIdentity(rebased.Simplify()) {
			continue
		}
		survivors[idx] = rebased
	}
	if len(survivors) == 0 {
		return values.NoOp{}, true
	}
	patch, err := NewApplyMap(survivors)
	if err != nil {
		return nil, false
	}
	return patch.Simplify(), true
}

// rebaseMoveSplice recomputes Move's three boundaries (source start,
// source end, destination) under the Splice's effect; a boundary that
// falls strictly inside the spliced region makes the source range
// discontiguous, which conflicts. The Splice's own boundaries are mapped
// the opposite way, through the Move.
func rebaseMoveSplice(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	mv := a.(Move)
	spl := b.(Splice)

	newStart, ok1 := spliceShift(mv.Offset, spl)
	newEnd, ok2 := spliceShift(mv.Offset+mv.Count, spl)
	newDest, ok3 := spliceShift(mv.NewOffset, spl)
	if !ok1 || !ok2 || !ok3 || newEnd-newStart != mv.Count {
		return nil, nil, false
	}
	movePrime := Move{Offset: newStart, Count: mv.Count, NewOffset: newDest}.Simplify()

	splStart, ok4 := movePosition(spl.Offset, mv)
	splEnd, ok5 := movePosition(spl.Offset+spl.Length, mv)
	if !ok4 || !ok5 || splEnd < splStart {
		return nil, nil, false
	}
	splicePrime := Splice{Offset: splStart, Length: splEnd - splStart, NewValue: spl.NewValue}.Simplify()

	return movePrime, splicePrime, true
}

// spliceShift maps a scalar boundary position through spl. A position
// strictly inside the spliced region is ambiguous for a boundary.
func spliceShift(pos int, spl Splice) (int, bool) {
	insLen, err := length(spl.NewValue)
	if err != nil {
		return 0, false
	}
	delta := insLen - spl.Length
	switch {
	case pos <= spl.Offset:
		return pos, true
	case pos >= spl.Offset+spl.Length:
		return pos + delta, true
	default:
		return 0, false
	}
}

// rebaseMovePatch handles Move against an Apply-shaped Patch: Apply never
// relocates anything, so Move is unaffected, while each touched index is
// carried through the Move (never ambiguous for a single point). A
// general multi-length-hunk Patch is treated as an opaque structural
// change and left to rebaseMoveDefault.
func rebaseMovePatch(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	mv := a.(Move)
	patch := b.(Patch)
	if !isApplyShaped(patch) {
		return rebaseMoveDefault(a, b, ctx)
	}
	idxs := absoluteIndices(patch)
	type entry struct {
		idx int
		op  algebra.Operation
	}
	entries := make([]entry, len(idxs))
	for i, idx := range idxs {
		entries[i] = entry{movePointThroughMove(idx, mv), patch.Hunks[i].Op}
	}
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j-1].idx > entries[j].idx; j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}
	hunks := make([]Hunk, len(entries))
	pos := 0
	for i, e := range entries {
		if e.idx < pos {
			return nil, nil, false
		}
		hunks[i] = Hunk{Gap: e.idx - pos, Length: 1, Op: e.op}
		pos = e.idx + 1
	}
	return mv, Patch{Hunks: hunks}, true
}

// rebaseMoveMove: two concurrent relocations of possibly-overlapping
// blocks conflict unless their source ranges are disjoint, in which case
// each treats the other's relocation as a Splice-shaped reordering of
// positions and recomputes its own three boundaries the same way
// rebaseMoveSplice does, via the point mapping (never ambiguous, since
// Move never deletes content — only an overlapping *source* range is a
// real conflict).
func rebaseMoveMove(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	ma, mb := a.(Move), b.(Move)
	aStart, aEnd := ma.Offset, ma.Offset+ma.Count
	bStart, bEnd := mb.Offset, mb.Offset+mb.Count
	if aEnd > bStart && bEnd > aStart {
		return nil, nil, false
	}
	maPrime := Move{
		Offset:    movePointThroughMove(ma.Offset, mb),
		Count:     ma.Count,
		NewOffset: movePointThroughMove(ma.NewOffset, mb),
	}.Simplify()
	mbPrime := Move{
		Offset:    movePointThroughMove(mb.Offset, ma),
		Count:     mb.Count,
		NewOffset: movePointThroughMove(mb.NewOffset, ma),
	}.Simplify()
	return maPrime, mbPrime, true
}

// rebaseMoveDefault covers Move against any other sequence-category
// operation with no more specific rule: treated as a conflict, since a
// Move's validity depends on exact positional bookkeeping this harness
// doesn't generalize further.
func rebaseMoveDefault(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	return nil, nil, false
}

func noop() algebra.Operation {
	return values.NoOp{}
}
