package dom

import (
	"errors"
	"testing"

	"golang.org/x/net/html"
)

func mustFragment(t *testing.T, markup string) *html.Node {
	t.Helper()
	frag, err := ParseFragment(markup)
	if err != nil {
		t.Fatalf("ParseFragment(%q): %v", markup, err)
	}
	return frag
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc.Body() == nil {
		t.Fatal("Body() = nil")
	}
	if doc.Body().Data != "body" {
		t.Errorf("Body().Data = %q, want body", doc.Body().Data)
	}
	if !doc.Contains(doc.Body()) {
		t.Error("document should contain its body")
	}
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument(`<!DOCTYPE html><html><body><main id="app"><p>server</p></main></body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	app := ElementByID(doc.Root(), "app")
	if app == nil {
		t.Fatal("#app not found")
	}
	if got := TextContent(app); got != "server" {
		t.Errorf("TextContent = %q, want server", got)
	}
}

func TestAppendChildFragment(t *testing.T) {
	doc := NewDocument()
	frag := mustFragment(t, `<li>a</li><li>b</li>`)

	if err := doc.AppendChild(doc.Body(), frag); err != nil {
		t.Fatal(err)
	}
	if frag.FirstChild != nil {
		t.Error("fragment should be emptied by insertion")
	}
	if got := InnerHTML(doc.Body()); got != "<li>a</li><li>b</li>" {
		t.Errorf("body = %q", got)
	}
}

func TestInsertBefore(t *testing.T) {
	doc := NewDocument()
	frag := mustFragment(t, `<p id="b"></p>`)
	doc.AppendChild(doc.Body(), frag)
	ref := ElementByID(doc.Body(), "b")

	if err := doc.InsertBefore(doc.Body(), mustFragment(t, `<p id="a"></p>`), ref); err != nil {
		t.Fatal(err)
	}
	if got := InnerHTML(doc.Body()); got != `<p id="a"></p><p id="b"></p>` {
		t.Errorf("body = %q", got)
	}

	stranger := mustFragment(t, `<p></p>`).FirstChild
	if err := doc.InsertBefore(doc.Body(), mustFragment(t, `<i></i>`), stranger); !errors.Is(err, ErrNotChild) {
		t.Errorf("err = %v, want ErrNotChild", err)
	}
}

func TestHierarchyError(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(doc.Body(), mustFragment(t, `<div id="outer"><div id="inner"></div></div>`))
	outer := ElementByID(doc.Body(), "outer")
	inner := ElementByID(doc.Body(), "inner")

	if err := doc.AppendChild(inner, outer); !errors.Is(err, ErrHierarchy) {
		t.Errorf("err = %v, want ErrHierarchy", err)
	}
}

func TestRemoveChild(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(doc.Body(), mustFragment(t, `<span>x</span>`))
	span := doc.Body().FirstChild

	if err := doc.RemoveChild(doc.Body(), span); err != nil {
		t.Fatal(err)
	}
	if doc.Body().FirstChild != nil {
		t.Error("body should be empty")
	}
	if err := doc.RemoveChild(doc.Body(), span); !errors.Is(err, ErrNotChild) {
		t.Errorf("second remove err = %v, want ErrNotChild", err)
	}
}

func TestReplaceWith(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(doc.Body(), mustFragment(t, `<div><template id="slot"></template></div>`))
	slot := ElementByID(doc.Body(), "slot")

	if err := doc.ReplaceWith(slot, mustFragment(t, `<b>1</b><b>2</b>`)); err != nil {
		t.Fatal(err)
	}
	if got := InnerHTML(doc.Body()); got != "<div><b>1</b><b>2</b></div>" {
		t.Errorf("body = %q", got)
	}
	if err := doc.ReplaceWith(slot); !errors.Is(err, ErrNoParent) {
		t.Errorf("err = %v, want ErrNoParent", err)
	}
}

func TestReplaceChildren(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(doc.Body(), mustFragment(t, `<p>old</p>`))

	if err := doc.ReplaceChildren(doc.Body(), mustFragment(t, `<p>new</p>`)); err != nil {
		t.Fatal(err)
	}
	if got := InnerHTML(doc.Body()); got != "<p>new</p>" {
		t.Errorf("body = %q", got)
	}
}

func TestParseFragmentContexts(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"plain", `<div>hi</div>`, `<div>hi</div>`},
		{"list items", `<li>1</li><li>2</li>`, `<li>1</li><li>2</li>`},
		{"text only", `hello`, `hello`},
		{"placeholder", `<ul><template id="feather-1"></template></ul>`, `<ul><template id="feather-1"></template></ul>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag := mustFragment(t, tt.markup)
			if got := OuterHTML(frag); got != tt.want {
				t.Errorf("OuterHTML = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttrHelpers(t *testing.T) {
	frag := mustFragment(t, `<a href="/x">x</a>`)
	a := frag.FirstChild

	if v, ok := Attr(a, "href"); !ok || v != "/x" {
		t.Errorf("Attr(href) = %q, %v", v, ok)
	}
	if _, ok := Attr(a, "id"); ok {
		t.Error("Attr(id) should be missing")
	}
	SetAttr(a, "id", "link")
	SetAttr(a, "href", "/y")
	if got := OuterHTML(a); got != `<a href="/y" id="link">x</a>` {
		t.Errorf("OuterHTML = %q", got)
	}
}

func TestPostOrder(t *testing.T) {
	frag := mustFragment(t, `<a><b></b><c><d></d></c></a>`)
	var got []string
	for _, n := range PostOrder(frag.FirstChild) {
		got = append(got, n.Data)
	}
	want := []string{"b", "d", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("PostOrder() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PostOrder() = %v, want %v", got, want)
		}
	}
	if PostOrder(nil) != nil {
		t.Error("PostOrder(nil) should be empty")
	}
}
