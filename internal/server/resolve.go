package server

import (
	"strings"

	"github.com/krellek/perltidyd/internal/lsp"
)

// statementTerminators are the characters after which the preceding perl
// statement or block is considered complete. They double as the on-type
// trigger characters advertised in the server capabilities.
const statementTerminators = ";})]"

// expandToLineStart widens the start of rng back to column 0 when only
// whitespace precedes it on its line, so a reformatted block keeps its
// indentation context. A start preceded by code on the same line is left
// alone, widening it would pull in unrelated text.
func expandToLineStart(document string, rng lsp.Range) lsp.Range {
	lines := strings.Split(document, "\n")
	if int(rng.Start.Line) >= len(lines) {
		return rng
	}
	line := lines[rng.Start.Line]
	character := int(rng.Start.Character)
	if character > len(line) {
		character = len(line)
	}
	if strings.TrimSpace(line[:character]) == "" {
		rng.Start.Character = 0
	}
	return rng
}

// onTypeRange computes the range to format after a trigger character was
// typed at pos: from the line following the most recent statement terminator
// (or the document start) up to pos. Everything before the last terminator
// is assumed to be well-formatted already.
func onTypeRange(document string, pos lsp.Position) lsp.Range {
	lines := strings.Split(document, "\n")
	start := lsp.Position{Line: 0, Character: 0}

	scanFrom := int(pos.Line) - 1
	if scanFrom > len(lines)-1 {
		scanFrom = len(lines) - 1
	}
	for line := scanFrom; line >= 0; line-- {
		if strings.ContainsAny(lines[line], statementTerminators) {
			start = lsp.Position{Line: uint(line + 1), Character: 0}
			break
		}
	}
	return lsp.Range{Start: start, End: pos}
}

// commandRange picks the range for the explicit tidy command: the selection
// when there is one, otherwise the whole document.
func commandRange(document string, selection *lsp.Range) lsp.Range {
	if selection != nil && !selection.IsEmpty() {
		return *selection
	}
	return fullDocumentRange(document)
}

func fullDocumentRange(document string) lsp.Range {
	lines := strings.Split(document, "\n")
	last := len(lines) - 1
	return lsp.NewRange(0, 0, uint(last), uint(len(lines[last])))
}
