package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Rural Water Grant", "rural-water-grant"},
		{"ampersand becomes and", "Arts & Culture Fund", "arts-and-culture-fund"},
		{"punctuation collapses", "Health -- Program!! (2024)", "health-program-2024"},
		{"leading and trailing junk", "  --Community Fund-- ", "community-fund"},
		{"already a slug", "community-fund", "community-fund"},
		{"mixed case", "STEM Education", "stem-education"},
		{"only punctuation", "###", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestShortID(t *testing.T) {
	t.Run("uuid takes first segment", func(t *testing.T) {
		assert.Equal(t, "f81d4fae", ShortID("f81d4fae-7dec-11d0-a765-00a0c91e6bf6"))
	})

	t.Run("plain id is filtered and capped", func(t *testing.T) {
		assert.Equal(t, "grant123", ShortID("GRANT_1234567"))
		assert.LessOrEqual(t, len(ShortID("GRANT_1234567")), MaxShortIDLen)
	})

	t.Run("stable for a given id", func(t *testing.T) {
		id := "abc-123"
		assert.Equal(t, ShortID(id), ShortID(id))
		assert.Equal(t, "abc", ShortID(id))
	})

	t.Run("falls back past an empty first segment", func(t *testing.T) {
		assert.Equal(t, "123", ShortID("---123"))
	})
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "water-grant-abc", Compose("water-grant", "abc"))
	assert.Equal(t, "abc", Compose("", "abc"), "empty title slug falls back to the short id")
	assert.Equal(t, "water-grant", Compose("water-grant", ""))
}

func TestForRecord(t *testing.T) {
	t.Run("same title different ids stay distinct", func(t *testing.T) {
		a := ForRecord("Water Grant", "abc-123")
		b := ForRecord("Water Grant", "def-456")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty title yields non-empty slug", func(t *testing.T) {
		assert.Equal(t, "abc", ForRecord("", "abc-123"))
	})
}
