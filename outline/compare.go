package outline

import "go.lsp.dev/protocol"

// ComparePositions orders two positions by line, then character. The result is
// negative when a precedes b, zero when they are equal, positive otherwise.
func ComparePositions(a, b protocol.Position) int {
	if a.Line != b.Line {
		if a.Line < b.Line {
			return -1
		}
		return 1
	}
	if a.Character != b.Character {
		if a.Character < b.Character {
			return -1
		}
		return 1
	}
	return 0
}

// CompareRangeStarts orders two ranges by their start position only. End
// positions never participate, so entries spanning different extents but
// starting at the same spot compare equal.
func CompareRangeStarts(a, b protocol.Range) int {
	return ComparePositions(a.Start, b.Start)
}
