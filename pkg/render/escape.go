package render

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// Escape escapes s for use as HTML text content. Interpolation never
// escapes on its own; wrap untrusted strings with Escape.
func Escape(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes s for use inside a quoted attribute value. Besides
// the text entities it encodes whitespace that would otherwise be
// normalized by attribute parsing.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
