package middleware

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/mediafeed-backend/internal/infrastructure/i18n"
)

const (
	LanguageContextKey    = i18n.LanguageContextKey
	I18nServiceContextKey = i18n.ServiceContextKey
)

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=pt-BR (override explícito)
// 2. Accept-Language header (preferência do browser)
// 3. Idioma padrão (fallback)
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		// 1. Verificar query parameter
		if queryLang := c.Query("lang"); queryLang != "" {
			if m.i18nService.IsLanguageSupported(queryLang) {
				lang = queryLang
			}
		}

		// 2. Se não encontrou, verificar Accept-Language header
		if lang == "" {
			acceptLang := c.GetHeader("Accept-Language")
			lang = m.parseAcceptLanguage(acceptLang)
		}

		// 3. Se ainda não encontrou, usar idioma padrão
		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		// Armazenar idioma e serviço no contexto
		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)

		c.Next()
	}
}

// parseAcceptLanguage escolhe o idioma suportado de maior peso no header Accept-Language
// Exemplo: "en;q=0.5,pt;q=0.9" -> "pt-BR"
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	best, bestQ := "", 0.0
	for _, part := range strings.Split(acceptLang, ",") {
		tag, q := parseLanguageRange(part)
		if tag == "" || q <= bestQ {
			continue
		}
		if lang := m.matchSupported(tag); lang != "" {
			best, bestQ = lang, q
		}
	}
	return best
}

// matchSupported casa a tag exata, depois o idioma base (es-MX -> es)
// e por fim uma variante regional do catálogo (pt -> pt-BR)
func (m *I18nMiddleware) matchSupported(tag string) string {
	if m.i18nService.IsLanguageSupported(tag) {
		return tag
	}

	base, _, _ := strings.Cut(tag, "-")
	if m.i18nService.IsLanguageSupported(base) {
		return base
	}

	supported := m.i18nService.GetSupportedLanguages()
	sort.Strings(supported)
	for _, lang := range supported {
		if prefix, _, ok := strings.Cut(lang, "-"); ok && strings.EqualFold(prefix, base) {
			return lang
		}
	}
	return ""
}

// parseLanguageRange separa "pt-BR;q=0.8" em tag e peso (1 quando ausente)
func parseLanguageRange(part string) (string, float64) {
	tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "*" {
		return "", 0
	}

	q := 1.0
	for _, param := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || strings.TrimSpace(key) != "q" {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return "", 0
		}
		q = parsed
	}
	return tag, q
}
