package sequences

import (
	"fmt"

	"github.com/clipperhouse/uax29/graphemes"
)

// maxPreviewGraphemes bounds how much of a long inserted string Inspect
// shows, the same diagnostic-truncation concern pkg/rope/graphemes.go's
// grapheme walk exists to serve, but truncating at a grapheme boundary
// instead of a raw byte or rune cut so combining marks and emoji sequences
// never get split mid-cluster in the preview.
const maxPreviewGraphemes = 24

// graphemePreview renders s for Inspect, truncating at a grapheme
// boundary rather than a byte or rune cut.
func graphemePreview(s string) string {
	clusters := graphemes.SegmentAllString(s)
	if len(clusters) <= maxPreviewGraphemes {
		return fmt.Sprintf("%q", s)
	}
	truncated := ""
	for _, c := range clusters[:maxPreviewGraphemes] {
		truncated += c
	}
	return fmt.Sprintf("%q…", truncated)
}
