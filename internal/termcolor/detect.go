package termcolor

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ColorMode は --color の値です。
type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeAuto, fmt.Errorf("unknown color mode: %s (want auto|always|never)", v)
	}
}

// Profile is how many colors the terminal can show.
type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

// Scheme is the terminal background brightness.
type Scheme int

const (
	SchemeDark Scheme = iota
	SchemeLight
)

func (s Scheme) String() string {
	if s == SchemeLight {
		return "light"
	}
	return "dark"
}

// ThemeEnv overrides the background detection with light or dark.
const ThemeEnv = "HATCHGATE_THEME"

// Settings bundles what renderers need to know about the terminal.
type Settings struct {
	Enabled bool
	Scheme  Scheme
	Profile Profile
}

// EnvMap turns os.Environ() style entries into a map.
func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		k, v, _ := strings.Cut(entry, "=")
		env[k] = v
	}
	return env
}

// Detect resolves the configured mode against the environment.
//
// For auto, the first rule that applies wins:
//  1. TERM=dumb, NO_COLOR or CLICOLOR=0 disable colors.
//  2. CLICOLOR_FORCE / FORCE_COLOR with a non-zero value enable them.
//  3. Otherwise colors follow whether stdout is a TTY.
//
// always and never ignore the environment for the on/off decision only.
func Detect(mode ColorMode, stdout *os.File, env map[string]string) Settings {
	var on bool
	switch mode {
	case ModeAlways:
		on = true
	case ModeNever:
		on = false
	default:
		on = autoEnabled(stdout, env)
	}
	if !on {
		return Settings{}
	}
	return Settings{Enabled: true, Scheme: detectScheme(env), Profile: detectProfile(env)}
}

func autoEnabled(stdout *os.File, env map[string]string) bool {
	get := func(k string) string { return strings.TrimSpace(env[k]) }
	if strings.EqualFold(get("TERM"), "dumb") || get("NO_COLOR") != "" || get("CLICOLOR") == "0" {
		return false
	}
	if nonZero(get("CLICOLOR_FORCE")) || nonZero(get("FORCE_COLOR")) {
		return true
	}
	return stdout != nil && term.IsTerminal(int(stdout.Fd()))
}

func nonZero(v string) bool {
	return v != "" && v != "0"
}

// detectProfile: COLORTERM truecolor/24bit, then TERM *256color, else 8 colors.
func detectProfile(env map[string]string) Profile {
	ct := strings.ToLower(env["COLORTERM"])
	if strings.Contains(ct, "truecolor") || strings.Contains(ct, "24bit") || strings.Contains(ct, "24-bit") {
		return ProfileTrueColor
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}

// detectScheme reads HATCHGATE_THEME, then the background index of COLORFGBG
// ("fg;bg" or "fg;other;bg", 7 and above is light), then a TERM name
// containing "light". Dark is the default.
func detectScheme(env map[string]string) Scheme {
	switch strings.ToLower(strings.TrimSpace(env[ThemeEnv])) {
	case "light":
		return SchemeLight
	case "dark":
		return SchemeDark
	}
	if raw := strings.TrimSpace(env["COLORFGBG"]); raw != "" {
		parts := strings.Split(raw, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil && bg >= 0 {
			if bg >= 7 {
				return SchemeLight
			}
			return SchemeDark
		}
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}
