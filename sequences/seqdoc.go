// Package sequences implements the sequence algebra: Splice, Move, Patch,
// and the Apply/Map constructors, over string and array documents. Strings
// use UTF-16 code-unit indexing via algebra.UTF16Length/UTF16Slice.
package sequences

import (
	"strings"

	"github.com/texere-ot/otcore/algebra"
)

// length returns doc's length in the sequence algebra's unit: UTF-16 code
// units for strings, element count for arrays.
func length(doc any) (int, error) {
	switch d := doc.(type) {
	case string:
		return algebra.UTF16Length(d), nil
	case []any:
		return len(d), nil
	default:
		return 0, algebra.ErrTypeMismatch
	}
}

// slice returns doc[start:end] in the same container kind as doc.
func slice(doc any, start, end int) (any, error) {
	switch d := doc.(type) {
	case string:
		if start < 0 || end < start {
			return nil, algebra.ErrOutOfRange
		}
		return algebra.UTF16Slice(d, start, end), nil
	case []any:
		if start < 0 || end > len(d) || start > end {
			return nil, algebra.ErrOutOfRange
		}
		out := make([]any, end-start)
		copy(out, d[start:end])
		return out, nil
	default:
		return nil, algebra.ErrTypeMismatch
	}
}

// elementAt returns the single-element slice doc[i:i+1].
func elementAt(doc any, i int) (any, error) {
	return slice(doc, i, i+1)
}

// concat joins same-kind sequence documents in order. The kind is taken
// from the first part; every later part must match it.
func concat(parts ...any) (any, error) {
	if len(parts) == 0 {
		return "", nil
	}
	switch parts[0].(type) {
	case string:
		var b strings.Builder
		for _, p := range parts {
			s, ok := p.(string)
			if !ok {
				return nil, algebra.ErrTypeMismatch
			}
			b.WriteString(s)
		}
		return b.String(), nil
	case []any:
		out := make([]any, 0)
		for _, p := range parts {
			arr, ok := p.([]any)
			if !ok {
				return nil, algebra.ErrTypeMismatch
			}
			out = append(out, arr...)
		}
		return out, nil
	default:
		return nil, algebra.ErrTypeMismatch
	}
}

// sameKind reports whether a and b are the same container kind.
func sameKind(a, b any) bool {
	switch a.(type) {
	case string:
		_, ok := b.(string)
		return ok
	case []any:
		_, ok := b.([]any)
		return ok
	default:
		return false
	}
}

// isEmpty reports whether v is an empty sequence of its kind.
func isEmpty(v any) bool {
	switch d := v.(type) {
	case string:
		return d == ""
	case []any:
		return len(d) == 0
	default:
		return true
	}
}
