package algebra

import "unicode/utf16"

// UTF16Length returns the length of s in UTF-16 code units, the unit
// strings are measured and indexed in throughout this module. A single
// helper keeps the comparator and the sequence algebra using one
// definition of "string length."
func UTF16Length(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// UTF16Slice returns the substring covering code units [start, end) of s,
// converting to and from UTF-16 so offsets line up with JavaScript-style
// indexing regardless of how many bytes a rune takes in UTF-8.
func UTF16Slice(s string, start, end int) string {
	units := utf16.Encode([]rune(s))
	if start < 0 {
		start = 0
	}
	if end > len(units) {
		end = len(units)
	}
	if start >= end {
		return ""
	}
	return string(utf16.Decode(units[start:end]))
}
