package hydrate

import (
	stderrors "errors"
	"log/slog"

	"github.com/vango-dev/feather/internal/errors"
	"github.com/vango-dev/feather/pkg/dom"
	"github.com/vango-dev/feather/pkg/render"
	"golang.org/x/net/html"
)

var (
	// ErrMissingFragment is returned when hydrating a render that has no
	// client fragment, typically one built by a server-mode runtime.
	ErrMissingFragment = stderrors.New("hydrate: render has no client fragment")

	// ErrTargetDetached is returned when the hydration target is not part
	// of the runtime's document.
	ErrTargetDetached = stderrors.New("hydrate: target is not in the document")

	// ErrNoDocument is returned when attaching an observer to a
	// server-mode runtime.
	ErrNoDocument = stderrors.New("hydrate: runtime has no document")
)

// Option configures an Observer.
type Option func(*Observer)

// WithLogger sets the observer's logger. Defaults to the runtime's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Observer) {
		o.logger = logger
	}
}

// Observer drives lifecycle handles from document mutations.
type Observer struct {
	rt     *render.Runtime
	logger *slog.Logger
	mo     *dom.MutationObserver
	root   *html.Node
}

// New creates an observer for rt. It does nothing until Attach.
func New(rt *render.Runtime, opts ...Option) *Observer {
	o := &Observer{rt: rt, logger: rt.Logger()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Attach starts watching root and its whole subtree. Attaching again
// moves the watch to the new root.
func (o *Observer) Attach(root *html.Node) error {
	doc := o.rt.Document()
	if doc == nil {
		return errors.New("E043").
			WithSuggestion("Create the runtime with render.Options{Document: doc}").
			Wrap(ErrNoDocument)
	}
	if !doc.Contains(root) {
		return errors.New("E042").Wrap(ErrTargetDetached)
	}

	o.Detach()
	o.mo = doc.NewMutationObserver(o.handle)
	if err := o.mo.Observe(root, dom.ObserveOptions{ChildList: true, Subtree: true}); err != nil {
		o.mo = nil
		return err
	}
	o.root = root
	return nil
}

// Detach stops observation. Handles keep their current state.
func (o *Observer) Detach() {
	if o.mo == nil {
		return
	}
	o.mo.Disconnect()
	o.mo = nil
	o.root = nil
}

// Root returns the observed node, or nil when detached.
func (o *Observer) Root() *html.Node {
	return o.root
}

func (o *Observer) handle(records []dom.MutationRecord) {
	doc := o.rt.Document()
	for _, rec := range records {
		for _, n := range rec.RemovedNodes {
			for _, d := range dom.Descendants(n) {
				if h, ok := o.rt.HandleOf(d); ok {
					h.Unmount()
				}
			}
		}
		// Children mount before their parents, so a re-inserted subtree
		// runs nested mount callbacks first, as on the first splice.
		for _, n := range rec.AddedNodes {
			for _, d := range dom.PostOrder(n) {
				// An earlier mount may have moved d out again.
				if !doc.Contains(d) {
					continue
				}
				if h, ok := o.rt.HandleOf(d); ok {
					h.Mount()
				}
			}
		}
	}
}

// Hydrate materializes r, starts observing target and replaces target's
// children with r's fragment. A nil target means the document body.
//
// Callback panics are not recovered and propagate out of Hydrate.
func Hydrate(r *render.Render, target *html.Node, opts ...Option) (*Observer, error) {
	rt := r.Runtime()
	frag, err := r.Materialize()
	if err != nil {
		return nil, err
	}
	if frag == nil {
		return nil, errors.New("E040").
			WithDetailf("render %d was built by a server-mode runtime", r.ID()).
			WithSuggestion("Create the runtime with render.Options{Document: doc}").
			Wrap(ErrMissingFragment)
	}

	doc := rt.Document()
	if target == nil {
		target = doc.Body()
	}

	o := New(rt, opts...)
	if err := o.Attach(target); err != nil {
		return nil, err
	}
	if err := doc.ReplaceChildren(target, frag); err != nil {
		o.Detach()
		return nil, err
	}

	if pending := rt.Pending(); len(pending) > 0 {
		o.logger.Warn("feather: nested renders still pending after hydration",
			"render", r.ID(), "pending", pending)
	}
	return o, nil
}
