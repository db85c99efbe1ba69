package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLanguagesFixedSet(t *testing.T) {
	langs := Languages()
	require.Len(t, langs, 6)

	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		codes = append(codes, l.Code)
		assert.NotEmpty(t, l.Label)
	}
	assert.Equal(t, []string{"en-us", "es", "fr", "de", "it", "pt-br"}, codes)
}

func TestLanguagesReturnsCopy(t *testing.T) {
	langs := Languages()
	langs[0].Code = "xx"

	_, ok := LookupLanguage("xx")
	assert.False(t, ok)
	assert.Equal(t, "en-us", Languages()[0].Code)
}

func TestLookupLanguage(t *testing.T) {
	l, ok := LookupLanguage("pt-br")
	require.True(t, ok)
	assert.Equal(t, "Português", l.Label)

	l, ok = LookupLanguage(" EN-US ")
	require.True(t, ok)
	assert.Equal(t, "en-us", l.Code)

	_, ok = LookupLanguage("ja")
	assert.False(t, ok)
}

func TestLanguageTagAndMessageID(t *testing.T) {
	l, _ := LookupLanguage("pt-br")
	assert.Equal(t, "language_pt-br", l.MessageID())

	base, _ := l.Tag().Base()
	region, _ := l.Tag().Region()
	assert.Equal(t, "pt", base.String())
	assert.Equal(t, "BR", region.String())

	de, _ := LookupLanguage("de")
	assert.Equal(t, language.German.String(), de.Tag().String())
}
