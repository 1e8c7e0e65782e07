package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ANSI escape sequences (covers common CSI and OSC forms).
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes color and hyperlink escapes.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// eachGrapheme calls fn with every grapheme cluster of the visible text and
// its cell width until fn returns false.
func eachGrapheme(s string, fn func(seg string, w int) bool) {
	g := uniseg.NewGraphemes(StripANSI(s))
	for g.Next() {
		seg := g.Str()
		if !fn(seg, runewidth.StringWidth(seg)) {
			return
		}
	}
}

// VisibleWidth returns terminal display width (wcwidth-based).
func VisibleWidth(s string) int {
	width := 0
	eachGrapheme(s, func(_ string, w int) bool {
		width += w
		return true
	})
	return width
}

// TruncateByWidth は書記素を分割せずに幅 w に収めます。切り詰めた場合は
// ellipsis が収まるときだけ付けます。結果からエスケープシーケンスは除かれます。
func TruncateByWidth(s string, w int, ellipsis string) string {
	if s == "" || w <= 0 {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	budget := w
	ellW := runewidth.StringWidth(ellipsis)
	if ellipsis != "" && ellW <= w {
		budget -= ellW
	} else {
		ellipsis = ""
	}
	var b strings.Builder
	used := 0
	eachGrapheme(s, func(seg string, sw int) bool {
		if used+sw > budget {
			return false
		}
		b.WriteString(seg)
		used += sw
		return true
	})
	return b.String() + ellipsis
}

// PadRight pads s on the right with spaces so that the visible width equals w.
func PadRight(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// PadLeft pads s on the left with spaces so that the visible width equals w.
func PadLeft(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// WrapByWidth splits s into lines no wider than w, breaking at spaces.
// Existing newlines are kept; a single word wider than w gets its own line.
func WrapByWidth(s string, w int) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		if w <= 0 || VisibleWidth(para) <= w {
			out = append(out, para)
			continue
		}
		var line strings.Builder
		used := 0
		for _, word := range strings.Fields(para) {
			ww := VisibleWidth(word)
			switch {
			case used == 0:
				line.WriteString(word)
				used = ww
			case used+1+ww <= w:
				line.WriteByte(' ')
				line.WriteString(word)
				used += 1 + ww
			default:
				out = append(out, line.String())
				line.Reset()
				line.WriteString(word)
				used = ww
			}
		}
		out = append(out, line.String())
	}
	return out
}
