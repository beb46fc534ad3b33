// Package i18n provides localized messages for API responses.
package i18n

import (
	"encoding/json"
	"fmt"
	"strings"

	"visitas/internal/i18n/locales"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var bundle *i18n.Bundle

// Init initializes the i18n bundle. Spanish is the default language.
func Init() error {
	bundle = i18n.NewBundle(language.Spanish)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	languages := []string{"es-MX", "en-US"}
	for _, lang := range languages {
		if err := loadMessages(lang); err != nil {
			return fmt.Errorf("failed to load language %s: %w", lang, err)
		}
	}

	return nil
}

func loadMessages(lang string) error {
	for id, msg := range getMessages(lang) {
		bundle.AddMessages(language.MustParse(lang), &i18n.Message{
			ID:    id,
			Other: msg,
		})
	}
	return nil
}

// GetLocalizer resolves a localizer from an Accept-Language header value.
func GetLocalizer(acceptLang string) *i18n.Localizer {
	langs := parseAcceptLanguage(acceptLang)
	if len(langs) == 0 {
		langs = []string{"es-MX"}
	}
	return i18n.NewLocalizer(bundle, langs...)
}

// parseAcceptLanguage takes the first language of an Accept-Language header.
func parseAcceptLanguage(acceptLang string) []string {
	if acceptLang == "" {
		return nil
	}

	parts := strings.Split(acceptLang, ",")
	if len(parts) == 0 {
		return nil
	}

	lang := strings.TrimSpace(parts[0])
	if idx := strings.Index(lang, ";"); idx > 0 {
		lang = lang[:idx]
	}
	return []string{normalizeLanguageCode(lang)}
}

// normalizeLanguageCode maps language tags onto the supported locales.
func normalizeLanguageCode(lang string) string {
	switch l := strings.ToLower(strings.TrimSpace(lang)); {
	case l == "es" || l == "es-mx" || strings.HasPrefix(l, "es"):
		return "es-MX"
	case l == "en" || l == "en-us" || strings.HasPrefix(l, "en"):
		return "en-US"
	default:
		return "es-MX"
	}
}

// T translates a message ID with optional template data.
func T(localizer *i18n.Localizer, msgID string, data ...map[string]any) string {
	config := &i18n.LocalizeConfig{MessageID: msgID}
	if len(data) > 0 {
		config.TemplateData = data[0]
	}

	msg, err := localizer.Localize(config)
	if err != nil {
		// Untranslated IDs fall through unchanged
		return msgID
	}
	return msg
}

func getMessages(lang string) map[string]string {
	switch lang {
	case "en-US":
		return locales.MessagesEnUS
	default:
		return locales.MessagesEsMX
	}
}
