package parser

import (
	"sort"
	"unicode/utf8"

	"github.com/yacobolo/cssmix/internal/ast"
)

// lineStarts returns the byte offset at which each line begins.
func lineStarts(src string) []int {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}

// pos converts a byte offset into a node position. Columns count runes, as
// parse.Position does for errors.
func (s *state) pos(off int) ast.Pos {
	line := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > off }) - 1
	if line < 0 {
		line = 0
	}
	col := utf8.RuneCountInString(s.src[s.lines[line]:off]) + 1
	return ast.Pos{Offset: off, Line: line + 1, Column: col}
}
