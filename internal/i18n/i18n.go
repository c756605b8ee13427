package i18n

import (
	"fmt"
	"strings"

	"github.com/linea-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// ResolveLocale 解析请求语言：query 参数 locale 优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleDefault
	}
	if locale := normalizeLocale(c.Query("locale")); locale != "" {
		return locale
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		if idx := strings.Index(part, ";"); idx >= 0 {
			part = part[:idx]
		}
		if locale := normalizeLocale(part); locale != "" {
			return locale
		}
	}
	return constants.LocaleDefault
}

// T 返回指定语言的文案，缺失时回落到默认语言，再回落到 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if messages, ok := catalog[constants.LocaleDefault]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 返回带格式化参数的文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return constants.LocaleZhCN
	case strings.HasPrefix(lower, "en"):
		return constants.LocaleEnUS
	default:
		return ""
	}
}
