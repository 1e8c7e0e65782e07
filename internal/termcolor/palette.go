package termcolor

import (
	"math"
	"strings"

	"github.com/phyten/hatchgate/internal/colorutil"
)

// 想定する端末背景色
var (
	darkBackground  = colorutil.RGB{R: 17, G: 24, B: 39}
	lightBackground = colorutil.RGB{R: 249, G: 250, B: 251}
)

const minContrast = 4.5

type typeColor struct {
	basic int
	dark  colorutil.RGB
	light colorutil.RGB
	bold  bool
}

var (
	red    = typeColor{basic: 1, dark: colorutil.RGB{R: 248, G: 113, B: 113}, light: colorutil.RGB{R: 185, G: 28, B: 28}, bold: true}
	amber  = typeColor{basic: 3, dark: colorutil.RGB{R: 245, G: 158, B: 11}, light: colorutil.RGB{R: 180, G: 83, B: 9}}
	violet = typeColor{basic: 5, dark: colorutil.RGB{R: 192, G: 132, B: 252}, light: colorutil.RGB{R: 126, G: 34, B: 206}}
)

var typeColors = map[string]typeColor{
	"forbidden":                red,
	"suppress_forbidden":       red,
	"missing_comment":          amber,
	"suppress_missing_comment": amber,
	"threshold_exceeded":       violet,
}

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// LocationStyle は file:line 表示用です。
func LocationStyle() Style {
	return Style{Bold: true}
}

// AdviceStyle dims advice text on dark terminals only.
func AdviceStyle(scheme Scheme) Style {
	if scheme == SchemeLight {
		return Style{}
	}
	return Style{Dim: true}
}

// TypeStyle colors a finding type. Truecolor and 256-color values are
// adjusted to stay readable on the detected background.
func TypeStyle(kind string, scheme Scheme, profile Profile) Style {
	c, ok := typeColors[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return Style{}
	}
	fg, bg := c.dark, darkBackground
	if scheme == SchemeLight {
		fg, bg = c.light, lightBackground
	}
	fg = colorutil.EnsureContrast(fg, bg, minContrast)
	s := Style{Bold: c.bold}
	switch profile {
	case ProfileTrueColor:
		rgb := [3]uint8{fg.R, fg.G, fg.B}
		s.FGTrue = &rgb
	case ProfileANSI256:
		idx := rgbToANSI256(fg.R, fg.G, fg.B)
		s.FG256 = &idx
	default:
		basic := c.basic
		s.FGBasic = &basic
	}
	return s
}

// CountStyle colors a metric count from green (unused) to red (over the
// threshold). threshold < 0 means the pattern has no threshold.
func CountStyle(count, threshold int, profile Profile) Style {
	if threshold < 0 {
		return Style{}
	}
	switch profile {
	case ProfileTrueColor, ProfileANSI256:
		r, g, b := gradientRGB(count, float64(threshold+1))
		if profile == ProfileANSI256 {
			idx := rgbToANSI256(r, g, b)
			return Style{FG256: &idx}
		}
		rgb := [3]uint8{r, g, b}
		return Style{FGTrue: &rgb}
	default:
		color := countBucketColor(count, threshold)
		return Style{FGBasic: &color}
	}
}

func gradientRGB(n int, max float64) (uint8, uint8, uint8) {
	if max <= 0 {
		max = 1
	}
	t := float64(n) / max
	if t <= 0 {
		return 0, 255, 0
	}
	if t >= 1 {
		return 255, 0, 0
	}
	if t < 0.5 {
		ratio := t / 0.5
		r := uint8(math.Round(255 * ratio))
		return r, 255, 0
	}
	ratio := (t - 0.5) / 0.5
	g := uint8(math.Round(255 * (1 - ratio)))
	return 255, g, 0
}

func countBucketColor(count, threshold int) int {
	switch {
	case count == 0:
		return 2
	case count <= threshold:
		return 3
	default:
		return 1
	}
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
