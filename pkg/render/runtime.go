package render

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/feather/internal/errors"
	"github.com/vango-dev/feather/pkg/dom"
	"golang.org/x/net/html"
)

// DefaultPlaceholderPrefix is the id prefix reserved for nested-render
// placeholders.
const DefaultPlaceholderPrefix = "feather-"

// Recorder observes engine activity. pkg/middleware provides a Prometheus
// implementation.
type Recorder interface {
	RenderBuilt()
	Materialized()
	Mounted()
	Unmounted()
}

type nopRecorder struct{}

func (nopRecorder) RenderBuilt()  {}
func (nopRecorder) Materialized() {}
func (nopRecorder) Mounted()      {}
func (nopRecorder) Unmounted()    {}

// Options configures a Runtime.
type Options struct {
	// Document makes the runtime a client runtime. Nil means server mode:
	// renders serialize but never materialize.
	Document *dom.Document

	// PlaceholderPrefix overrides DefaultPlaceholderPrefix.
	PlaceholderPrefix string

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Recorder receives engine events. Optional.
	Recorder Recorder
}

// Runtime is the process-scoped state of the engine: the id counter, the
// pending-hydration registry, the current-render pointer, the lifecycle
// handle table and the component scope stack.
//
// Building and serializing renders is safe for concurrent use. Everything
// that touches the document (materialization, lifecycle) must stay on the
// document's goroutine.
type Runtime struct {
	doc      *dom.Document
	prefix   string
	logger   *slog.Logger
	recorder Recorder

	nextID atomic.Uint64

	mu      sync.Mutex
	pending map[string]*Render
	current *Render
	handles map[*html.Node]*Handle
	scopes  []*scope
}

// scope collects callbacks registered inside Runtime.Func.
type scope struct {
	mount   []func()
	unmount []func()
}

var defaultRuntime = NewRuntime(Options{})

// Default returns the package-level server runtime used by Build and HTML.
func Default() *Runtime {
	return defaultRuntime
}

// NewRuntime creates a Runtime.
func NewRuntime(opts Options) *Runtime {
	if opts.PlaceholderPrefix == "" {
		opts.PlaceholderPrefix = DefaultPlaceholderPrefix
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	return &Runtime{
		doc:      opts.Document,
		prefix:   opts.PlaceholderPrefix,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		pending:  make(map[string]*Render),
		handles:  make(map[*html.Node]*Handle),
	}
}

// IsClient reports whether the runtime has a document.
func (rt *Runtime) IsClient() bool {
	return rt.doc != nil
}

// Document returns the runtime's document, nil in server mode.
func (rt *Runtime) Document() *dom.Document {
	return rt.doc
}

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger
}

// Current returns the render whose fragment is being materialized, if any.
func (rt *Runtime) Current() *Render {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.current
}

func (rt *Runtime) swapCurrent(r *Render) *Render {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	prev := rt.current
	rt.current = r
	return prev
}

// =============================================================================
// Pending-hydration registry
// =============================================================================

// PlaceholderID returns the reserved element id standing in for r inside
// a parent's client markup.
func (rt *Runtime) PlaceholderID(r *Render) string {
	return rt.prefix + strconv.FormatUint(r.id, 10)
}

// IsPlaceholderID reports whether id follows the placeholder convention.
func (rt *Runtime) IsPlaceholderID(id string) bool {
	rest, ok := strings.CutPrefix(id, rt.prefix)
	if !ok || rest == "" {
		return false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (rt *Runtime) registerPending(key string, r *Render) {
	rt.mu.Lock()
	rt.pending[key] = r
	rt.mu.Unlock()
}

func (rt *Runtime) lookupPending(key string) (*Render, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	r, ok := rt.pending[key]
	return r, ok
}

func (rt *Runtime) resolvePending(key string) {
	rt.mu.Lock()
	delete(rt.pending, key)
	rt.mu.Unlock()
}

// dropPendingTree forgets r and the renders nested under it. Used when r
// is written inline and none of them will be spliced.
func (rt *Runtime) dropPendingTree(r *Render) {
	rt.resolvePending(rt.PlaceholderID(r))
	for _, n := range r.nested {
		rt.dropPendingTree(n)
	}
}

// Pending returns the placeholder ids still waiting to be spliced, sorted.
// Between hydration passes this should be empty; anything left is a nested
// render that was serialized but never reached the document.
func (rt *Runtime) Pending() []string {
	rt.mu.Lock()
	keys := make([]string, 0, len(rt.pending))
	for k := range rt.pending {
		keys = append(keys, k)
	}
	rt.mu.Unlock()
	sort.Strings(keys)
	return keys
}

// =============================================================================
// Lifecycle handle table
// =============================================================================

func (rt *Runtime) attachHandle(n *html.Node, h *Handle) {
	rt.mu.Lock()
	rt.handles[n] = h
	rt.mu.Unlock()
}

func (rt *Runtime) dropHandle(n *html.Node) {
	rt.mu.Lock()
	delete(rt.handles, n)
	rt.mu.Unlock()
}

// HandleOf returns the lifecycle handle attached to n. Only top-level
// elements of materialized fragments have one.
func (rt *Runtime) HandleOf(n *html.Node) (*Handle, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	h, ok := rt.handles[n]
	return h, ok
}

// Release forgets r's lifecycle handles and any pending registration of r.
// Call it for renders that have left the document for good.
func (rt *Runtime) Release(r *Render) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	for _, n := range r.nodes {
		if h, ok := rt.handles[n]; ok && h.owner == r {
			delete(rt.handles, n)
		}
	}
	for k, v := range rt.pending {
		if v == r {
			delete(rt.pending, k)
		}
	}
}

// =============================================================================
// Component scopes
// =============================================================================

// Func runs fn inside a component scope and returns its render with every
// callback registered through rt.OnMount and rt.OnUnmount during fn
// attached. Scopes nest: callbacks go to the innermost open scope.
func (rt *Runtime) Func(fn func() *Render) *Render {
	if !rt.IsClient() {
		return fn()
	}

	s := &scope{}
	rt.mu.Lock()
	rt.scopes = append(rt.scopes, s)
	rt.mu.Unlock()

	defer func() {
		rt.mu.Lock()
		rt.scopes = rt.scopes[:len(rt.scopes)-1]
		rt.mu.Unlock()
	}()

	r := fn()
	if r != nil {
		for _, cb := range s.mount {
			r.OnMount(cb)
		}
		for _, cb := range s.unmount {
			r.OnUnmount(cb)
		}
	}
	return r
}

// OnMount attaches cb to the render currently materializing, or stages it
// on the innermost component scope. In server mode it does nothing.
func (rt *Runtime) OnMount(cb func()) error {
	return rt.register(phaseMount, cb)
}

// OnUnmount is OnMount for the unmount phase.
func (rt *Runtime) OnUnmount(cb func()) error {
	return rt.register(phaseUnmount, cb)
}

func (rt *Runtime) register(p phase, cb func()) error {
	if !rt.IsClient() {
		return nil
	}

	rt.mu.Lock()
	cur := rt.current
	var top *scope
	if n := len(rt.scopes); n > 0 {
		top = rt.scopes[n-1]
	}
	if cur == nil && top != nil {
		if p == phaseMount {
			top.mount = append(top.mount, cb)
		} else {
			top.unmount = append(top.unmount, cb)
		}
	}
	rt.mu.Unlock()

	switch {
	case cur != nil:
		cur.addCallback(p, cb)
		return nil
	case top != nil:
		return nil
	default:
		return errors.New("E001").
			WithSuggestion("Wrap the component body in rt.Func(func() *render.Render { ... })").
			Wrap(ErrOutsideComponent)
	}
}
