package i18n

import (
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

const (
	// LocalizerKey is the gin.Context key holding the request Localizer
	LocalizerKey = "localizer"
	// LangKey is the gin.Context key holding the resolved language
	LangKey = "lang"
)

// Middleware resolves a localizer per request from the Accept-Language header.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		acceptLang := c.GetHeader("Accept-Language")

		c.Set(LocalizerKey, GetLocalizer(acceptLang))
		c.Set(LangKey, normalizeLanguageCode(acceptLang))

		c.Next()
	}
}

// GetLocalizerFromContext gets the Localizer from gin.Context.
func GetLocalizerFromContext(c *gin.Context) *i18n.Localizer {
	if localizer, exists := c.Get(LocalizerKey); exists {
		if l, ok := localizer.(*i18n.Localizer); ok {
			return l
		}
	}
	return GetLocalizer("es-MX")
}

// Message translates a message ID using the request's localizer.
func Message(c *gin.Context, msgID string, data ...map[string]any) string {
	return T(GetLocalizerFromContext(c), msgID, data...)
}
