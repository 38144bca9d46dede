package dom

import (
	"errors"

	"golang.org/x/net/html"
)

// ErrNoChildList is returned by Observe when the options watch nothing.
var ErrNoChildList = errors.New("dom: observe requires ChildList")

// MutationRecord describes one structural change under Target.
type MutationRecord struct {
	Target       *html.Node
	AddedNodes   []*html.Node
	RemovedNodes []*html.Node
}

// ObserveOptions selects what an observer watches.
type ObserveOptions struct {
	// ChildList watches insertion and removal of children.
	ChildList bool

	// Subtree extends the watch to every descendant of the target.
	Subtree bool
}

type registration struct {
	target  *html.Node
	subtree bool
}

// MutationObserver receives mutation records from a Document.
type MutationObserver struct {
	doc      *Document
	callback func([]MutationRecord)
	regs     []registration
}

// NewMutationObserver creates an observer that is inactive until Observe
// is called.
func (d *Document) NewMutationObserver(callback func([]MutationRecord)) *MutationObserver {
	return &MutationObserver{doc: d, callback: callback}
}

// Observe starts watching target. Observing the same target again replaces
// its options.
func (o *MutationObserver) Observe(target *html.Node, opts ObserveOptions) error {
	if !opts.ChildList {
		return ErrNoChildList
	}
	for i := range o.regs {
		if o.regs[i].target == target {
			o.regs[i].subtree = opts.Subtree
			return nil
		}
	}
	o.regs = append(o.regs, registration{target: target, subtree: opts.Subtree})
	o.doc.register(o)
	return nil
}

// Disconnect stops all observation.
func (o *MutationObserver) Disconnect() {
	o.regs = nil
	o.doc.unregister(o)
}

func (o *MutationObserver) matches(target *html.Node) bool {
	for _, reg := range o.regs {
		if reg.target == target {
			return true
		}
		if reg.subtree && Contains(reg.target, target) {
			return true
		}
	}
	return false
}

func (d *Document) register(o *MutationObserver) {
	for _, existing := range d.observers {
		if existing == o {
			return
		}
	}
	d.observers = append(d.observers, o)
}

func (d *Document) unregister(o *MutationObserver) {
	for i, existing := range d.observers {
		if existing == o {
			d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
			return
		}
	}
}

// notify delivers rec synchronously to every matching observer.
func (d *Document) notify(rec MutationRecord) {
	if len(rec.AddedNodes) == 0 && len(rec.RemovedNodes) == 0 {
		return
	}
	observers := append([]*MutationObserver(nil), d.observers...)
	for _, o := range observers {
		if o.matches(rec.Target) {
			o.callback([]MutationRecord{rec})
		}
	}
}
