// Package dom is the host document Feather renders into.
//
// A Document wraps an HTML node tree (golang.org/x/net/html) and routes
// every structural change through its own mutation methods, so that
// MutationObservers registered on the document see each insertion and
// removal. Delivery is synchronous: a mutation method notifies all
// matching observers before it returns, and mutations performed inside an
// observer callback are delivered (recursively) before the outer callback
// resumes.
//
// # Fragments
//
// A fragment is a detached html.DocumentNode used as a container, the
// equivalent of a browser DocumentFragment. Passing a fragment to a
// mutation method inserts its children and leaves the fragment empty.
//
//	frag, err := dom.ParseFragment(`<li>a</li><li>b</li>`)
//	doc := dom.NewDocument()
//	obs := doc.NewMutationObserver(func(records []dom.MutationRecord) { ... })
//	obs.Observe(doc.Body(), dom.ObserveOptions{ChildList: true, Subtree: true})
//	doc.AppendChild(doc.Body(), frag)
//
// A Document is not safe for concurrent use. Confine it to one goroutine,
// the way a browser confines the DOM to its main thread.
package dom
