package colorutil

import "math"

// RGB は 8bit sRGB 色です。
type RGB struct {
	R uint8
	G uint8
	B uint8
}

var (
	black = RGB{0, 0, 0}
	white = RGB{255, 255, 255}
)

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func luminance(rgb RGB) float64 {
	r := srgbToLinear(float64(rgb.R) / 255.0)
	g := srgbToLinear(float64(rgb.G) / 255.0)
	b := srgbToLinear(float64(rgb.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio of two colors.
func ContrastRatio(fg, bg RGB) float64 {
	l1 := luminance(fg)
	l2 := luminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func AutoTextColor(bg RGB) RGB {
	crBlack := ContrastRatio(black, bg)
	crWhite := ContrastRatio(white, bg)
	if crBlack >= 4.5 || crBlack >= crWhite {
		return black
	}
	return white
}

// EnsureContrast moves fg toward black or white (whichever reads better on
// bg) in small steps until the ratio reaches minRatio, keeping as much of the
// original hue as possible.
func EnsureContrast(fg, bg RGB, minRatio float64) RGB {
	if minRatio <= 0 {
		minRatio = 4.5
	}
	if ContrastRatio(fg, bg) >= minRatio {
		return fg
	}
	target := AutoTextColor(bg)
	for step := 1; step < contrastSteps; step++ {
		candidate := Mix(fg, target, float64(step)/contrastSteps)
		if ContrastRatio(candidate, bg) >= minRatio {
			return candidate
		}
	}
	return target
}

const contrastSteps = 20

// Mix は a から b へ t (0..1) の割合で線形補間します。
func Mix(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return RGB{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B)}
}
