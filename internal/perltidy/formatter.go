package perltidy

import (
	"strings"

	"github.com/krellek/perltidyd/internal/lsp"
)

// Formatter runs document slices through the perltidy process pool.
type Formatter struct {
	pool *Pool
}

func NewFormatter(pool *Pool) *Formatter {
	return &Formatter{pool: pool}
}

// Format runs the text inside rng through perltidy and returns the
// replacement text for the range. The boolean is false when formatting was
// skipped and the document must stay untouched.
func (f *Formatter) Format(document string, rng lsp.Range, root *Root) (string, bool, error) {
	input := TextInRange(document, rng)
	if strings.TrimSpace(input) == "" {
		// Formatting nothing is a no-op success, not an error.
		return "", true, nil
	}
	if root == nil {
		return "", false, &ConfigurationError{Reason: "document must belong to a workspace to be formatted"}
	}
	if f.pool.Disabled(*root) {
		return "", false, nil
	}

	handle, err := f.pool.Acquire(*root)
	if err != nil {
		return "", false, err
	}
	output, err := handle.Run(input)
	f.pool.Release(*root, handle)
	if err != nil {
		return "", false, err
	}
	return output, true, nil
}

// TextInRange returns the slice of document covered by rng.
func TextInRange(document string, rng lsp.Range) string {
	start := OffsetAt(document, rng.Start)
	end := OffsetAt(document, rng.End)
	if end < start {
		start, end = end, start
	}
	return document[start:end]
}

// OffsetAt converts a position into a byte offset into document, clamping
// positions past the end of a line or past the last line.
func OffsetAt(document string, pos lsp.Position) int {
	offset := 0
	for line := uint(0); line < pos.Line; line++ {
		next := strings.IndexByte(document[offset:], '\n')
		if next < 0 {
			return len(document)
		}
		offset += next + 1
	}
	lineEnd := strings.IndexByte(document[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(document) - offset
	}
	character := int(pos.Character)
	if character > lineEnd {
		character = lineEnd
	}
	return offset + character
}
