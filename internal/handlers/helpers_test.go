package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Run("short strings pass through", func(t *testing.T) {
		assert.Equal(t, "hello", truncate("hello", 10))
	})

	t.Run("cuts at a word break", func(t *testing.T) {
		assert.Equal(t, "alpha beta…", truncate("alpha beta gamma delta", 12))
	})

	t.Run("never splits a multibyte rune", func(t *testing.T) {
		got := truncate(strings.Repeat("é", 100), 75)
		assert.True(t, utf8.ValidString(got))
		assert.NotContains(t, got, string(utf8.RuneError))
		assert.True(t, strings.HasSuffix(got, "…"))
	})
}

func TestShortIDFromSlug(t *testing.T) {
	assert.Equal(t, "abc", shortIDFromSlug("clean-water-grant-abc"))
	assert.Equal(t, "abc", shortIDFromSlug("abc"))
}
