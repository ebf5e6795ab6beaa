package sanitize

import "github.com/microcosm-cc/bluemonday"

// Политика для пользовательского HTML: небольшой белый список тегов,
// атрибуты только у a и span, стили span ограничены тремя свойствами.
// Запрещённые теги вырезаются, их текстовое содержимое сохраняется.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "strong", "em", "u", "h1", "h2", "h3",
		"ul", "ol", "li", "blockquote", "a", "span",
	)
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowStyles("color", "background-color", "font-weight").OnElements("span")
	return p
}

// Sanitize очищает пользовательскую разметку. Чистая функция,
// идемпотентна: повторный вызов на своём результате ничего не меняет.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
