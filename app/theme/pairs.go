package theme

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// ErrNoCounterpart is returned when a theme has no discovered light/dark
// pair. Recoverable: callers treat it as "nothing to switch to".
var ErrNoCounterpart = errors.New("no counterpart theme")

// baseNameRe strips the dark/light variant suffix from a theme name,
// e.g. "Adwaita-dark" and "Adwaita" share the base name "Adwaita".
var baseNameRe = regexp.MustCompile(`(?i)-(dark|light|black|noir)`)

// GeneratePairMap builds a bidirectional mapping between light and dark
// variants of installed themes. Themes are grouped by base name; groups
// containing both light and dark members produce two entries, one per
// direction. When a side has multiple variants they are comma-joined
// into a single composite key, all resolving to the same counterpart.
// Themes without a counterpart are simply absent from the map.
func GeneratePairMap(names []string) map[string]string {
	groups := map[string][]string{}
	seen := map[string]bool{}
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		base := baseNameRe.ReplaceAllString(name, "")
		groups[base] = append(groups[base], name)
	}

	mapping := map[string]string{}
	for _, members := range groups {
		var lights, darks []string
		for _, name := range members {
			if ClassifyMode(name) == ModeDark {
				darks = append(darks, name)
				continue
			}
			lights = append(lights, name)
		}
		if len(lights) == 0 || len(darks) == 0 {
			continue // no discoverable counterpart, not an error
		}
		sort.Strings(lights)
		sort.Strings(darks)
		lightKey := strings.Join(lights, ",")
		darkKey := strings.Join(darks, ",")
		mapping[lightKey] = darkKey
		mapping[darkKey] = lightKey
	}
	return mapping
}

// FindCounterpart returns the opposite-mode theme for the given name.
// composite keys are membership-checked by splitting on commas; the first
// member of the opposite side is returned. The second return value is
// false when the theme has no discovered counterpart.
func FindCounterpart(name string, pairMap map[string]string) (string, bool) {
	for key, value := range pairMap {
		for _, member := range strings.Split(key, ",") {
			if member == name {
				return strings.Split(value, ",")[0], true
			}
		}
	}
	return "", false
}
