package algebra

// missingType is the sentinel type for Missing.
type missingType struct{}

// Missing means "key absent" in the (out-of-scope) object module. The
// sequence and value algebras never interpret it — they only need to pass
// it through untouched when a sub-operation happens to carry it (e.g. an
// object-module sub-op nested in a Patch hunk).
var Missing any = missingType{}

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v any) bool {
	_, ok := v.(missingType)
	return ok
}
