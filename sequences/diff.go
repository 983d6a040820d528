package sequences

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/texere-ot/otcore/algebra"
)

// Diff builds the Patch of Splice-shaped hunks that turns oldText into
// newText, the way pkg/transport/patch_manager.go builds a PatchManager's
// patches from two text snapshots — except here the result is an
// in-algebra Patch rather than a wire patch string, so callers can
// atomic_compose or rebase it like any other operation.
func Diff(oldText, newText string) Patch {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var hunks []Hunk
	pos := 0
	gap := 0
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		units := algebra.UTF16Length(d.Text) // Patch positions count UTF-16 code units
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			gap += units
			pos += units
		case diffmatchpatch.DiffDelete:
			deleteLen := units
			insertText := ""
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				insertText = diffs[i+1].Text
				i++
			}
			hunks = append(hunks, Hunk{Gap: gap, Length: deleteLen, Op: setOf(insertText)})
			gap = 0
			pos += deleteLen
		case diffmatchpatch.DiffInsert:
			hunks = append(hunks, Hunk{Gap: gap, Length: 0, Op: setOf(d.Text)})
			gap = 0
		}
	}
	return Patch{Hunks: hunks}
}
