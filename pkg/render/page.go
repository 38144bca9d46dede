package render

import "strings"

// DefaultClientScript is the module script that boots client hydration.
const DefaultClientScript = "/index.mjs"

// PageData describes a complete HTML document around a body value.
type PageData struct {
	// Body is interpolated into <body>. Usually a *Render.
	Body any

	// Title is the page title. Escaped.
	Title string

	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	// Meta contains extra meta tags.
	Meta []MetaTag

	// Links contains link tags (stylesheets, favicon, etc.).
	Links []LinkTag

	// Styles contains inline CSS, inserted verbatim.
	Styles []string

	// Scripts are emitted at the end of <head>.
	Scripts []ScriptTag

	// ClientScript is the hydration entry module. Defaults to
	// DefaultClientScript; "-" disables it.
	ClientScript string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string
	Content   string
	Property  string
	HTTPEquiv string
	Charset   string
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel  string
	Href string
	Type string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Type   string
	Module bool
	Defer  bool
	Async  bool
	Inline string // inserted verbatim
}

// Page builds the full document for page. The body value goes through
// normal interpolation, so a body render is nested like any other.
func (rt *Runtime) Page(page PageData) *Render {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	return rt.HTML(
		"<!DOCTYPE html>\n<html lang=\"", EscapeAttr(lang), "\">\n<head>\n",
		headMarkup(page),
		"</head>\n<body>\n",
		page.Body,
		"\n</body>\n</html>\n",
	)
}

// Page builds a document on the default runtime.
func Page(page PageData) *Render {
	return defaultRuntime.Page(page)
}

func headMarkup(page PageData) string {
	var b strings.Builder

	b.WriteString("  <meta charset=\"utf-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")

	if page.Title != "" {
		b.WriteString("  <title>" + Escape(page.Title) + "</title>\n")
	}

	for _, meta := range page.Meta {
		b.WriteString("  <meta")
		writeAttr(&b, "charset", meta.Charset)
		writeAttr(&b, "name", meta.Name)
		writeAttr(&b, "property", meta.Property)
		writeAttr(&b, "http-equiv", meta.HTTPEquiv)
		writeAttr(&b, "content", meta.Content)
		b.WriteString(">\n")
	}

	for _, link := range page.Links {
		b.WriteString("  <link")
		writeAttr(&b, "rel", link.Rel)
		writeAttr(&b, "href", link.Href)
		writeAttr(&b, "type", link.Type)
		b.WriteString(">\n")
	}

	for _, style := range page.Styles {
		b.WriteString("  <style>" + style + "</style>\n")
	}

	scripts := page.Scripts
	switch page.ClientScript {
	case "-":
	case "":
		scripts = append(scripts, ScriptTag{Src: DefaultClientScript, Module: true})
	default:
		scripts = append(scripts, ScriptTag{Src: page.ClientScript, Module: true})
	}
	for _, script := range scripts {
		writeScript(&b, script)
	}

	return b.String()
}

func writeScript(b *strings.Builder, script ScriptTag) {
	b.WriteString("  <script")
	if script.Module {
		b.WriteString(` type="module"`)
	} else {
		writeAttr(b, "type", script.Type)
	}
	writeAttr(b, "src", script.Src)
	if script.Defer {
		b.WriteString(" defer")
	}
	if script.Async {
		b.WriteString(" async")
	}
	b.WriteString(">")
	b.WriteString(script.Inline)
	b.WriteString("</script>\n")
}

func writeAttr(b *strings.Builder, key, val string) {
	if val == "" {
		return
	}
	b.WriteString(" " + key + `="` + EscapeAttr(val) + `"`)
}
