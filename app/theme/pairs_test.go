package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePairMap(t *testing.T) {
	t.Run("simple pair", func(t *testing.T) {
		m := GeneratePairMap([]string{"Adwaita", "Adwaita-dark"})
		assert.Equal(t, map[string]string{
			"Adwaita":      "Adwaita-dark",
			"Adwaita-dark": "Adwaita",
		}, m)
	})

	t.Run("multiple light aliases share one dark counterpart", func(t *testing.T) {
		m := GeneratePairMap([]string{"Adwaita", "Adwaita-Light", "Adwaita-Dark"})
		assert.Equal(t, "Adwaita-Dark", m["Adwaita,Adwaita-Light"])
		assert.Equal(t, "Adwaita,Adwaita-Light", m["Adwaita-Dark"])
	})

	t.Run("unpaired themes omitted", func(t *testing.T) {
		m := GeneratePairMap([]string{"Greybird", "Arc-Dark"})
		assert.Empty(t, m)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, GeneratePairMap(nil))
		assert.Empty(t, GeneratePairMap([]string{}))
	})

	t.Run("duplicates are idempotent", func(t *testing.T) {
		once := GeneratePairMap([]string{"Adwaita", "Adwaita-dark"})
		twice := GeneratePairMap([]string{"Adwaita", "Adwaita-dark", "Adwaita", "Adwaita-dark"})
		assert.Equal(t, once, twice)
	})

	t.Run("mixed catalog", func(t *testing.T) {
		m := GeneratePairMap([]string{"Arc", "Arc-Dark", "Greybird", "Greybird-dark", "Numix"})
		assert.Equal(t, "Arc-Dark", m["Arc"])
		assert.Equal(t, "Greybird", m["Greybird-dark"])
		_, found := FindCounterpart("Numix", m)
		assert.False(t, found)
	})
}

func TestGeneratePairMap_Symmetric(t *testing.T) {
	names := []string{"Adwaita", "Adwaita-Light", "Adwaita-Dark", "Arc", "Arc-Dark",
		"Greybird", "Greybird-dark", "Materia", "Materia-Black", "Nordic-Noir", "Numix"}
	m := GeneratePairMap(names)

	for key, value := range m {
		back, ok := m[value]
		require.True(t, ok, "missing reverse entry for %q", value)
		assert.Equal(t, key, back, "relation not symmetric for %q", key)
	}
}

func TestGeneratePairMap_ClassificationDisagrees(t *testing.T) {
	// every discovered pair must put its two sides in opposite modes,
	// otherwise a theme could be paired with itself
	names := []string{"Adwaita", "Adwaita-Light", "Adwaita-Dark", "Arc", "Arc-Dark",
		"Greybird", "Greybird-dark", "Materia", "Materia-Black"}
	m := GeneratePairMap(names)
	require.NotEmpty(t, m)

	for key := range m {
		for _, member := range strings.Split(key, ",") {
			counterpart, ok := FindCounterpart(member, m)
			require.True(t, ok, "no counterpart for %q", member)
			assert.NotEqual(t, ClassifyMode(member), ClassifyMode(counterpart),
				"%q and %q classify the same", member, counterpart)
		}
	}
}

func TestFindCounterpart(t *testing.T) {
	m := GeneratePairMap([]string{"Adwaita", "Adwaita-Light", "Adwaita-Dark", "Greybird", "Greybird-dark"})

	tests := []struct {
		name        string
		counterpart string
		found       bool
	}{
		{"Adwaita", "Adwaita-Dark", true},
		{"Adwaita-Light", "Adwaita-Dark", true},
		{"Adwaita-Dark", "Adwaita", true},
		{"Greybird", "Greybird-dark", true},
		{"Greybird-dark", "Greybird", true},
		{"Numix", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			counterpart, found := FindCounterpart(tc.name, m)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.counterpart, counterpart)
		})
	}
}

func TestFindCounterpart_EmptyMap(t *testing.T) {
	_, found := FindCounterpart("Adwaita", map[string]string{})
	assert.False(t, found)
}
