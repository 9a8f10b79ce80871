package handlers

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

// RequestLanguage язык из query "lang" или первый из Accept-Language, без региона
func RequestLanguage(r *http.Request) string {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		header := r.Header.Get("Accept-Language")
		lang = strings.Split(strings.Split(header, ",")[0], ";")[0]
	}
	lang = strings.TrimSpace(lang)
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	if lang == "" || lang == "*" {
		return domain.DefaultLanguage
	}
	return strings.ToLower(lang)
}
