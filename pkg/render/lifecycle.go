package render

import (
	"fmt"
	"strings"

	"github.com/vango-dev/feather/internal/errors"
	"github.com/vango-dev/feather/pkg/dom"
	"golang.org/x/net/html"
)

// placeholder is a reserved element in a parent's fragment that stands in
// for a nested render until the parent mounts.
type placeholder struct {
	key    string
	node   *html.Node
	render *Render
}

// Handle is the lifecycle handle attached to each top-level element of a
// materialized fragment. The hydration observer calls Mount when the
// element enters the document and Unmount when it leaves.
//
// A handle moves Unmounted -> Mounted -> Unmounted and may cycle. Repeated
// calls in the same state do nothing.
type Handle struct {
	owner       *Render
	placeholder bool
	mounted     bool
}

// Owner returns the render the handle belongs to.
func (h *Handle) Owner() *Render {
	return h.owner
}

// Mounted reports whether the handle's node is considered in the document.
func (h *Handle) Mounted() bool {
	return h.mounted
}

// Mount records that the node entered the document. The owner's mount
// phase runs when its first top-level node mounts.
func (h *Handle) Mount() {
	if h.mounted {
		return
	}
	h.mounted = true
	h.owner.enter(h.placeholder)
}

// Unmount records that the node left the document. The owner's unmount
// phase runs when its last top-level element unmounts. Placeholder nodes
// never trigger it: the nested content that replaced them carries its own
// handles.
func (h *Handle) Unmount() {
	if !h.mounted {
		return
	}
	h.mounted = false
	h.owner.leave(h.placeholder)
}

// Materialize parses the client markup into a detached fragment and wires
// lifecycle handles onto its top-level elements. It runs at most once per
// render; later calls return the memoized result. In server mode it
// returns a nil fragment and no error.
//
// Placeholders for nested renders are recorded, not expanded: nested
// renders materialize when this render first mounts.
func (r *Render) Materialize() (*html.Node, error) {
	rt := r.rt
	if !rt.IsClient() {
		return nil, nil
	}
	if r.materialized {
		return r.fragment, r.materializeErr
	}
	r.materialized = true

	prev := rt.swapCurrent(r)
	defer rt.swapCurrent(prev)

	frag, refs, placeholders, err := rt.parseMarkup(r)
	if err != nil {
		r.materializeErr = err
		return nil, err
	}

	nodes := dom.ChildElements(frag)
	for _, n := range nodes {
		rt.attachHandle(n, &Handle{owner: r, placeholder: isPlaceholderNode(placeholders, n)})
	}

	r.fragment = frag
	r.nodes = nodes
	r.refs = refs
	r.placeholders = placeholders
	rt.recorder.Materialized()
	return frag, nil
}

// parseMarkup parses r's client markup and collects refs and placeholders.
//
// A placeholder only survives parsing where an element may appear. Inside
// raw text (textarea, title, script, style) or an attribute value it turns
// into text, so those nested renders are written inline, as on the server,
// and the markup is parsed again.
func (rt *Runtime) parseMarkup(r *Render) (*html.Node, map[string]*html.Node, []placeholder, error) {
	var inline map[*Render]bool
	for {
		frag, err := dom.ParseFragment(r.markup)
		if err != nil {
			return nil, nil, nil, errors.New("E004").
				WithDetailf("render %d", r.id).
				Wrap(fmt.Errorf("%w: %w", ErrMarkup, err))
		}

		refs := make(map[string]*html.Node)
		found := make(map[string]bool)
		var placeholders []placeholder
		var dangling []string
		dom.Walk(frag, func(n *html.Node) {
			if n.Type != html.ElementNode {
				return
			}
			id, ok := dom.Attr(n, "id")
			if !ok {
				return
			}
			if !rt.IsPlaceholderID(id) {
				refs[id] = n
				return
			}
			nested, ok := rt.lookupPending(id)
			if !ok {
				dangling = append(dangling, id)
				return
			}
			found[id] = true
			placeholders = append(placeholders, placeholder{key: id, node: n, render: nested})
		})

		var lost []*Render
		for _, n := range r.nested {
			if !found[rt.PlaceholderID(n)] {
				lost = append(lost, n)
			}
		}
		if len(lost) == 0 {
			if len(dangling) > 0 {
				return nil, nil, nil, errors.New("E041").
					WithDetailf("render %d: %s", r.id, strings.Join(dangling, ", ")).
					Wrap(ErrDanglingPlaceholder)
			}
			return frag, refs, placeholders, nil
		}

		if inline == nil {
			inline = make(map[*Render]bool)
		}
		for _, n := range lost {
			inline[n] = true
			rt.dropPendingTree(n)
			rt.logger.Debug("feather: nested render written inline",
				"parent", r.id, "render", n.id)
		}
		cm := &clientMarkup{inline: inline}
		r.markup = rt.serialize(r, cm)
		r.nested = cm.nested
	}
}

func isPlaceholderNode(placeholders []placeholder, n *html.Node) bool {
	for _, p := range placeholders {
		if p.node == n {
			return true
		}
	}
	return false
}

// Mounted reports whether r is in the mounted state.
func (r *Render) Mounted() bool {
	return r.mounted
}

// enter runs the mount phase on the first mount of any handle. Only real
// elements count towards staying mounted.
func (r *Render) enter(placeholder bool) {
	if !placeholder {
		r.live++
	}
	if !r.mounted {
		r.mounted = true
		r.mount()
	}
}

// leave runs the unmount phase when the last real element leaves.
func (r *Render) leave(placeholder bool) {
	if placeholder || r.live == 0 {
		return
	}
	r.live--
	if r.live == 0 && r.mounted {
		r.mounted = false
		r.unmount()
	}
}

// mount splices pending nested renders into the live tree, then runs the
// mount callbacks. Splicing goes through the document, so the observer
// mounts nested content (and runs its callbacks) before ours run.
func (r *Render) mount() {
	rt := r.rt
	rt.swapCurrent(nil)

	placeholders := r.placeholders
	r.placeholders = nil
	for _, p := range placeholders {
		rt.splice(r, p)
	}

	for _, cb := range r.callbacks(phaseMount) {
		cb()
	}
	rt.recorder.Mounted()
}

func (r *Render) unmount() {
	for _, cb := range r.callbacks(phaseUnmount) {
		cb()
	}
	r.rt.recorder.Unmounted()
}

// splice replaces a placeholder with the nested render's fragment. A
// failed splice leaves the placeholder and its pending entry in place.
func (rt *Runtime) splice(parent *Render, p placeholder) {
	frag, err := p.render.Materialize()
	if err != nil {
		rt.logger.Error("feather: nested render failed to materialize",
			"parent", parent.id, "render", p.render.id, "placeholder", p.key, "error", err)
		return
	}
	if frag == nil {
		return
	}
	if err := rt.doc.ReplaceWith(p.node, frag); err != nil {
		rt.logger.Error("feather: placeholder splice failed",
			"parent", parent.id, "placeholder", p.key, "error", err)
		return
	}
	rt.dropHandle(p.node)
	rt.resolvePending(p.key)
}
