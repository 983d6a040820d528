package algebra

// Context carries the optional pre-state document used by conflictless
// tie-breaking rules. A nil *Context, or one with Conflictless false, means
// strict mode. Rebase pairs that need the post-state (Math against a
// different Math operator) also conflict when Document is not a value the
// operations apply to, including when it was left unset.
//
// Callers wanting a guaranteed convergent result across all sites MUST
// supply the pre-state document and set Conflictless.
type Context struct {
	Document     any
	Conflictless bool
}

// Conflictless reports whether ctx requests conflictless resolution. A nil
// *Context is equivalent to strict mode.
func Conflictless(ctx *Context) bool {
	return ctx != nil && ctx.Conflictless
}

// PreState returns ctx's pre-state document. The second result is false
// only for a nil ctx; a Context whose Document was left unset yields
// (nil, true).
func PreState(ctx *Context) (any, bool) {
	if ctx == nil {
		return nil, false
	}
	return ctx.Document, true
}
