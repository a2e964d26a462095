package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixKey(t *testing.T) {
	assert.Equal(t, "document-metadata.opened-at", PrefixKey("opened-at"))
}

func TestTranslateSubstitutesValues(t *testing.T) {
	b := Load("en")

	out := b.Translate("en", "opened-by", map[string]string{"username": "Ada Lovelace"})
	assert.Equal(t, "by Ada Lovelace", out)

	out = b.Translate("en", "date.today", map[string]string{"formattedTime": "2:30:00 PM"})
	assert.Equal(t, "Today at 2:30:00 PM", out)
}

func TestTranslateFallsBackToEnglish(t *testing.T) {
	// "fr" has no catalog file; loading it must not fail, and lookups fall
	// back to English.
	b := Load("en", "fr")

	out := b.Translate("fr", "opened-at", nil)
	assert.Equal(t, "Last opened", out)
}

func TestTranslateMissingKeyStaysVisible(t *testing.T) {
	b := Load("en")

	out := b.Translate("en", "no-such-key", nil)
	assert.Equal(t, "document-metadata.no-such-key", out)
}

func TestLoadGermanCatalog(t *testing.T) {
	b := Load("de")

	out := b.Translate("de", "date.yesterday", map[string]string{"formattedTime": "14:30"})
	assert.Equal(t, "Gestern um 14:30", out)
}
