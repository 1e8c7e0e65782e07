package termcolor

import (
	"strconv"
	"strings"
)

// Style は SGR 属性と前景色です。色は FGTrue, FG256, FGBasic の順に優先されます。
type Style struct {
	Bold      bool
	Underline bool
	Dim       bool
	FGBasic   *int
	FG256     *int
	FGTrue    *[3]uint8
}

// IsZero reports whether the style would emit nothing.
func (s Style) IsZero() bool {
	return !s.Bold && !s.Underline && !s.Dim && s.FGBasic == nil && s.FG256 == nil && s.FGTrue == nil
}

// Paint wraps text in SGR sequences when on is set.
func (s Style) Paint(text string, on bool) string {
	if !on || text == "" || s.IsZero() {
		return text
	}
	var b strings.Builder
	b.WriteString("\x1b[")
	s.writeCodes(&b)
	b.WriteByte('m')
	b.WriteString(text)
	b.WriteString("\x1b[0m")
	return b.String()
}

func (s Style) writeCodes(b *strings.Builder) {
	first := true
	put := func(codes ...string) {
		for _, c := range codes {
			if !first {
				b.WriteByte(';')
			}
			first = false
			b.WriteString(c)
		}
	}
	if s.Bold {
		put("1")
	}
	if s.Dim {
		put("2")
	}
	if s.Underline {
		put("4")
	}
	switch {
	case s.FGTrue != nil:
		put("38", "2", strconv.Itoa(int(s.FGTrue[0])), strconv.Itoa(int(s.FGTrue[1])), strconv.Itoa(int(s.FGTrue[2])))
	case s.FG256 != nil:
		put("38", "5", strconv.Itoa(*s.FG256))
	case s.FGBasic != nil:
		put("3" + strconv.Itoa(*s.FGBasic))
	}
}
