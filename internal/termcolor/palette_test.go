package termcolor

import (
	"testing"

	"github.com/phyten/hatchgate/internal/colorutil"
)

func TestHeaderStyle(t *testing.T) {
	s := HeaderStyle()
	if !s.Bold || !s.Underline {
		t.Fatalf("header style should enable bold+underline: %+v", s)
	}
}

func TestTypeStyleRespectsScheme(t *testing.T) {
	forbidDark := TypeStyle("forbidden", SchemeDark, ProfileBasic8)
	if forbidDark.FGBasic == nil || *forbidDark.FGBasic != 1 || !forbidDark.Bold {
		t.Fatalf("forbidden dark basic style mismatch: %+v", forbidDark)
	}
	missing := TypeStyle("MISSING_COMMENT", SchemeDark, ProfileBasic8)
	if missing.FGBasic == nil || *missing.FGBasic != 3 || missing.Bold {
		t.Fatalf("missing_comment basic style mismatch: %+v", missing)
	}
	thr := TypeStyle("threshold_exceeded", SchemeLight, ProfileANSI256)
	if thr.FG256 == nil {
		t.Fatalf("threshold 256 color missing: %+v", thr)
	}

	for _, kind := range []string{"forbidden", "missing_comment", "suppress_missing_comment", "threshold_exceeded"} {
		for _, scheme := range []Scheme{SchemeDark, SchemeLight} {
			s := TypeStyle(kind, scheme, ProfileTrueColor)
			if s.FGTrue == nil {
				t.Fatalf("%s truecolor missing fg: %+v", kind, s)
			}
			rgb := *s.FGTrue
			bg := darkBackground
			if scheme == SchemeLight {
				bg = lightBackground
			}
			contrast := colorutil.ContrastRatio(colorutil.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}, bg)
			if contrast < minContrast {
				t.Fatalf("%s scheme=%v contrast %.2f < %.1f (rgb=%v)", kind, scheme, contrast, minContrast, rgb)
			}
		}
	}

	none := TypeStyle("other", SchemeDark, ProfileBasic8)
	if none.FGBasic != nil || none.FG256 != nil || none.FGTrue != nil {
		t.Fatalf("unknown types should have no color: %+v", none)
	}
}

func TestCountStyleBasicBuckets(t *testing.T) {
	tests := []struct {
		count, threshold int
		want             int
	}{
		{0, 0, 2},
		{0, 5, 2},
		{3, 5, 3},
		{5, 5, 3},
		{6, 5, 1},
		{1, 0, 1},
	}
	for _, tc := range tests {
		style := CountStyle(tc.count, tc.threshold, ProfileBasic8)
		if style.FGBasic == nil {
			t.Fatalf("count %d missing basic color", tc.count)
		}
		if *style.FGBasic != tc.want {
			t.Fatalf("count %d/%d expected color %d, got %d", tc.count, tc.threshold, tc.want, *style.FGBasic)
		}
	}
	if s := CountStyle(4, -1, ProfileBasic8); s.FGBasic != nil {
		t.Fatalf("no threshold should produce no color: %+v", s)
	}
}

func TestCountStyleGradient(t *testing.T) {
	style := CountStyle(0, 10, ProfileANSI256)
	if style.FG256 == nil || *style.FG256 != rgbToANSI256(0, 255, 0) {
		t.Fatalf("zero count should map to green in 256 palette, got %+v", style)
	}
	style = CountStyle(20, 10, ProfileTrueColor)
	if style.FGTrue == nil {
		t.Fatalf("true color style missing value")
	}
	rgb := *style.FGTrue
	if rgb[0] != 255 || rgb[1] != 0 || rgb[2] != 0 {
		t.Fatalf("count beyond threshold should be red, got %v", rgb)
	}
}

func TestAdviceStyle(t *testing.T) {
	if !AdviceStyle(SchemeDark).Dim {
		t.Fatal("advice should be dim on dark backgrounds")
	}
	if AdviceStyle(SchemeLight).Dim {
		t.Fatal("advice should not be dim on light backgrounds")
	}
}
