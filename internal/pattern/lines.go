package pattern

import (
	"sort"
	"strings"
)

// ByteOffsetToLine returns the 1-indexed line containing offset:
// 1 + the number of '\n' bytes in content[:offset].
func ByteOffsetToLine(content string, offset int) int {
	if offset <= 0 {
		return 1
	}
	if offset > len(content) {
		offset = len(content)
	}
	return 1 + strings.Count(content[:offset], "\n")
}

// LineIndex は改行位置を事前計算し、オフセット→行番号を二分探索で引けるようにします。
type LineIndex struct {
	starts []int
}

func NewLineIndex(content string) *LineIndex {
	starts := make([]int, 0, strings.Count(content, "\n")+1)
	starts = append(starts, 0)
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts}
}

// Line returns the same value as ByteOffsetToLine for the indexed content.
func (x *LineIndex) Line(offset int) int {
	if offset <= 0 {
		return 1
	}
	return sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset })
}

// LineStart returns the byte offset where the 1-indexed line begins, or -1.
func (x *LineIndex) LineStart(line int) int {
	if line < 1 || line > len(x.starts) {
		return -1
	}
	return x.starts[line-1]
}
