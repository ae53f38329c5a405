// Package theme discovers installed desktop themes, pairs light themes
// with their dark counterparts and applies them through xfconf.
package theme

import "regexp"

// Mode represents the light/dark classification of a theme.
type Mode int

// Mode values. ModeUnknown is the zero value used before any theme
// has been classified or applied.
const (
	ModeUnknown Mode = iota
	ModeLight
	ModeDark
)

// darkMarker matches the naming conventions dark theme variants use.
// it must agree with baseNameRe in pairs.go, otherwise a theme could
// end up paired with itself.
var darkMarker = regexp.MustCompile(`(?i)dark|black|noir`)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLight:
		return "light"
	case ModeDark:
		return "dark"
	default:
		return "unknown"
	}
}

// Opposite returns the opposite mode (dark↔light). Unknown maps to dark.
func (m Mode) Opposite() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// ClassifyMode determines whether a theme name is light or dark.
// a theme is dark if its name contains a dark marker, light otherwise.
func ClassifyMode(name string) Mode {
	if darkMarker.MatchString(name) {
		return ModeDark
	}
	return ModeLight
}
