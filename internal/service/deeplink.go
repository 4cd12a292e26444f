package service

import (
	"net/url"
	"strings"

	"github.com/rishidar/freelance-connector/internal/models"
)

// LinkFile - вложение, упоминаемое в ссылке на мессенджер.
type LinkFile struct {
	Name string
	URL  string
}

// LinkBuilder собирает ссылки вида https://wa.me/<номер>?text=<сообщение>.
type LinkBuilder struct {
	number string
}

// NewLinkBuilder создаёт построитель ссылок для номера WhatsApp.
func NewLinkBuilder(number string) *LinkBuilder {
	return &LinkBuilder{number: strings.TrimPrefix(strings.TrimSpace(number), "+")}
}

// Base возвращает ссылку на чат без текста.
func (b *LinkBuilder) Base() string {
	return "https://wa.me/" + b.number
}

// Build кодирует сообщение и вложения в ссылку.
func (b *LinkBuilder) Build(message string, files ...LinkFile) models.DeepLink {
	var sb strings.Builder
	sb.WriteString(b.Base())
	sb.WriteString("?text=")
	sb.WriteString(EncodeURIComponent(message))
	for _, f := range files {
		sb.WriteString("&attached_file=")
		sb.WriteString(EncodeURIComponent(f.Name))
		if f.URL != "" {
			sb.WriteString("&file_url=")
			sb.WriteString(EncodeURIComponent(f.URL))
		}
	}
	return models.DeepLink{Message: message, URL: sb.String()}
}

// uriComponentUnescaper возвращает символы, которые QueryEscape экранирует, а encodeURIComponent нет.
var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent кодирует строку для параметра запроса так же, как
// encodeURIComponent в браузере: пробел становится %20, а ! ' ( ) * не экранируются.
func EncodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}
