package render

import (
	"io"
	"maps"
	"strings"
	"sync"

	"github.com/vango-dev/feather/internal/errors"
	"golang.org/x/net/html"
)

// Render is the result of building a template.
type Render struct {
	rt       *Runtime
	id       uint64
	segments []string
	values   []any

	serialized string
	markup     string // client markup, nested renders replaced by placeholders
	nested     []*Render

	// Client-only state, owned by the document goroutine.
	materialized   bool
	materializeErr error
	fragment       *html.Node
	nodes          []*html.Node
	refs           map[string]*html.Node
	placeholders   []placeholder
	mounted        bool
	live           int

	mu               sync.Mutex
	mountCallbacks   []func()
	unmountCallbacks []func()
}

// Build creates a render on the default runtime.
func Build(segments []string, values ...any) (*Render, error) {
	return defaultRuntime.Build(segments, values...)
}

// HTML creates a render on the default runtime. See Runtime.HTML.
func HTML(parts ...any) *Render {
	return defaultRuntime.HTML(parts...)
}

// Build creates a render from literal segments and the values that go
// between them. len(segments) must be len(values)+1.
func (rt *Runtime) Build(segments []string, values ...any) (*Render, error) {
	if len(segments) != len(values)+1 {
		return nil, errors.New("E002").
			WithDetailf("%d segments for %d values", len(segments), len(values)).
			Wrap(ErrTemplateArity)
	}

	r := &Render{
		rt:       rt,
		id:       rt.nextID.Add(1) - 1,
		segments: append([]string(nil), segments...),
		values:   append([]any(nil), values...),
	}
	r.serialized = rt.serialize(r, nil)
	if rt.IsClient() {
		cm := &clientMarkup{}
		r.markup = rt.serialize(r, cm)
		r.nested = cm.nested
	}

	rt.recorder.RenderBuilt()
	return r, nil
}

// HTML builds a render from alternating parts: even positions are literal
// segments and must be strings, odd positions are values. A trailing value
// implies an empty final segment.
//
//	rt.HTML(`<div>`, inner, `</div>`)
//
// HTML panics on a malformed template, like template.Must.
func (rt *Runtime) HTML(parts ...any) *Render {
	segments, values, err := splitParts(parts)
	if err != nil {
		panic(err)
	}
	r, err := rt.Build(segments, values...)
	if err != nil {
		panic(err)
	}
	return r
}

func splitParts(parts []any) ([]string, []any, error) {
	segments := make([]string, 0, len(parts)/2+1)
	values := make([]any, 0, len(parts)/2)
	for i, p := range parts {
		if i%2 == 1 {
			values = append(values, p)
			continue
		}
		s, ok := p.(string)
		if !ok {
			return nil, nil, errors.New("E003").
				WithDetailf("position %d holds %T", i, p).
				Wrap(ErrSegmentType)
		}
		segments = append(segments, s)
	}
	if len(parts)%2 == 0 {
		segments = append(segments, "")
	}
	return segments, values, nil
}

// ID returns the process-unique identity of r.
func (r *Render) ID() uint64 {
	return r.id
}

// Runtime returns the runtime that built r.
func (r *Render) Runtime() *Runtime {
	return r.rt
}

// String returns the serialized HTML. Nested renders are fully expanded.
func (r *Render) String() string {
	return r.serialized
}

// Serialize is String under the name used by the two-phase API
// (Serialize is pure, Materialize has side effects).
func (r *Render) Serialize() string {
	return r.serialized
}

// WriteTo writes the serialized HTML to w.
func (r *Render) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.serialized)
	return int64(n), err
}

// Content returns the segments and values interleaved, in template order.
// Sequences are not flattened.
func (r *Render) Content() []any {
	out := make([]any, 0, len(r.segments)+len(r.values))
	for i, seg := range r.segments {
		out = append(out, seg)
		if i < len(r.values) {
			out = append(out, r.values[i])
		}
	}
	return out
}

// Markup returns the client markup: the serialization with nested renders
// of the same runtime replaced by placeholder elements. Nested renders in
// raw text or attribute values are written inline once Materialize finds
// their placeholder did not parse as an element. Empty in server mode.
func (r *Render) Markup() string {
	return r.markup
}

// Fragment returns the materialized fragment, or nil before Materialize
// and in server mode. Inserting the fragment into a document moves its
// children out of it.
func (r *Render) Fragment() *html.Node {
	return r.fragment
}

// Nodes returns the top-level elements of the materialized fragment.
func (r *Render) Nodes() []*html.Node {
	return append([]*html.Node(nil), r.nodes...)
}

// Refs returns the elements of the fragment keyed by their id attribute.
// Placeholder ids are excluded. Empty in server mode.
func (r *Render) Refs() map[string]*html.Node {
	if _, err := r.Materialize(); err != nil || r.refs == nil {
		return map[string]*html.Node{}
	}
	return maps.Clone(r.refs)
}

// Ref returns the element with the given id, or nil.
func (r *Render) Ref(id string) *html.Node {
	if _, err := r.Materialize(); err != nil {
		return nil
	}
	return r.refs[id]
}

// OnMount queues cb for the mount phase. Callbacks run in registration
// order on every mount transition that happens after registration.
func (r *Render) OnMount(cb func()) {
	r.addCallback(phaseMount, cb)
}

// OnUnmount queues cb for the unmount phase.
func (r *Render) OnUnmount(cb func()) {
	r.addCallback(phaseUnmount, cb)
}

type phase uint8

const (
	phaseMount phase = iota
	phaseUnmount
)

func (r *Render) addCallback(p phase, cb func()) {
	if cb == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p == phaseMount {
		r.mountCallbacks = append(r.mountCallbacks, cb)
	} else {
		r.unmountCallbacks = append(r.unmountCallbacks, cb)
	}
}

// callbacks snapshots the queue for p so registrations made while it runs
// wait for the next transition.
func (r *Render) callbacks(p phase) []func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p == phaseMount {
		return append([]func(){}, r.mountCallbacks...)
	}
	return append([]func(){}, r.unmountCallbacks...)
}

func (rt *Runtime) serialize(r *Render, cm *clientMarkup) string {
	var b strings.Builder
	for i, seg := range r.segments {
		b.WriteString(seg)
		if i < len(r.values) {
			rt.writeValue(&b, r.values[i], cm)
		}
	}
	return b.String()
}
