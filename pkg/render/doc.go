// Package render is Feather's template and lifecycle engine.
//
// A Render is produced from literal HTML segments interleaved with
// interpolated values. Its serialized form is available immediately and
// everywhere, which is all a server needs:
//
//	page := render.HTML(`<p>Hello, `, name, `!</p>`)
//	w.Write([]byte(page.String()))
//
// # Client runtimes
//
// A Runtime created with a dom.Document is a client runtime. Renders built
// by it can be materialized into a detached fragment whose top-level
// elements carry lifecycle handles. Nested renders are not materialized
// with their parent; the parent's markup holds a placeholder element and
// the nested render is spliced in when the parent first mounts.
//
//	rt := render.NewRuntime(render.Options{Document: doc})
//	item := rt.HTML(`<li>`, title, `</li>`)
//	list := rt.HTML(`<ul id="list">`, item, `</ul>`)
//	list.OnMount(func() { ... })
//	hydrate.Hydrate(list, doc.Body())
//
// # Components
//
// Runtime.Func opens a component scope. Lifecycle callbacks registered with
// Runtime.OnMount or Runtime.OnUnmount inside the scope are attached to the
// render the component returns:
//
//	func Clock(rt *render.Runtime) *render.Render {
//	    return rt.Func(func() *render.Render {
//	        rt.OnMount(start)
//	        rt.OnUnmount(stop)
//	        return rt.HTML(`<time id="now"></time>`)
//	    })
//	}
//
// # Security
//
// Interpolated strings are inserted verbatim. Escape untrusted values with
// Escape or EscapeAttr before interpolating them.
package render
