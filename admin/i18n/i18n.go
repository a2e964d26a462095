package i18n

import (
	"embed"
	"encoding/json"
	"strings"

	"docmeta/pkg/logger"
)

// PluginID prefixes every translation key so the plugin's messages can't
// collide with the host's.
const PluginID = "document-metadata"

//go:embed translations/*.json
var translationsFS embed.FS

// PrefixKey namespaces a translation key with the plugin ID.
func PrefixKey(key string) string {
	return PluginID + "." + key
}

// Bundle holds the message catalogs for a set of locales.
type Bundle struct {
	messages map[string]map[string]string
}

// Load reads the embedded catalogs for the requested locales. A locale
// without a catalog file yields an empty map, not an error, matching how the
// host asks plugins for every locale it supports.
func Load(locales ...string) *Bundle {
	b := &Bundle{messages: make(map[string]map[string]string, len(locales))}
	for _, locale := range locales {
		data, err := translationsFS.ReadFile("translations/" + locale + ".json")
		if err != nil {
			b.messages[locale] = map[string]string{}
			continue
		}
		var catalog map[string]string
		if err := json.Unmarshal(data, &catalog); err != nil {
			logger.Sugar.Errorf("Failed to parse translations for locale %s: %v", locale, err)
			b.messages[locale] = map[string]string{}
			continue
		}
		b.messages[locale] = catalog
	}
	return b
}

// Translate resolves a message by its unprefixed key, substituting
// {placeholder} values. Falls back to English, then to the prefixed key
// itself so missing messages stay visible instead of rendering blank.
func (b *Bundle) Translate(locale, key string, values map[string]string) string {
	prefixed := PrefixKey(key)
	msg, ok := b.messages[locale][prefixed]
	if !ok {
		msg, ok = b.messages["en"][prefixed]
	}
	if !ok {
		return prefixed
	}
	for name, value := range values {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg
}
