package vdom

import (
	"log/slog"

	"github.com/vango-dev/widgetkit/internal/errors"
)

// Projection is the live binding between a tree lineage and its output.
// It is not safe for concurrent use.
type Projection struct {
	root    *VNode
	opts    *Options
	patcher *patcher
}

// Handle returns the output node of the root.
func (p *Projection) Handle() Handle {
	return p.patcher.handle(p.root)
}

// Root returns the tree the output currently reflects.
func (p *Projection) Root() *VNode {
	return p.root
}

// Options returns the options the projection was created with.
func (p *Projection) Options() *Options {
	return p.opts
}

// Stats returns the counters of the most recent pass.
func (p *Projection) Stats() Stats {
	return p.patcher.stats
}

// Update patches the output to match tree, which becomes the baseline for
// the next call. The root selector may not change.
func (p *Projection) Update(tree *VNode) error {
	if p.root.Selector != tree.Selector {
		return errors.New("W101").WithDetailf("from %q to %q", p.root.Selector, tree.Selector)
	}
	p.patcher.stats = Stats{}
	if _, err := p.patcher.updateDom(p.root, tree, p.opts); err != nil {
		return err
	}
	p.root = tree
	p.log("vdom: projection updated")
	return nil
}

func (p *Projection) log(msg string) {
	st := p.patcher.stats
	p.opts.Logger.Debug(msg,
		slog.String("root", p.root.String()),
		slog.Int("created", st.Created),
		slog.Int("removed", st.Removed),
		slog.Int("patched", st.Patched),
	)
}

func newProjection(tree *VNode, opts *Options, pt *patcher) *Projection {
	p := &Projection{root: tree, opts: opts, patcher: pt}
	p.log("vdom: projection created")
	return p
}

// Create realizes tree under a fresh detached container element.
func Create(tree *VNode, opts Options) (*Projection, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	container := o.Surface.CreateElement("", "div")
	return attach(tree, container, nil, o)
}

// Append realizes tree as the last child of parent.
func Append(parent Handle, tree *VNode, opts Options) (*Projection, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return attach(tree, parent, nil, o)
}

// InsertBefore realizes tree as the previous sibling of sibling.
func InsertBefore(sibling Handle, tree *VNode, opts Options) (*Projection, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return attach(tree, o.Surface.Parent(sibling), sibling, o)
}

// Replace realizes tree in place of existing, which is removed.
func Replace(existing Handle, tree *VNode, opts Options) (*Projection, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	parent := o.Surface.Parent(existing)
	p, err := attach(tree, parent, existing, o)
	if err != nil {
		return nil, err
	}
	o.Surface.RemoveChild(parent, existing)
	return p, nil
}

// Merge adopts existing as the output of the root of tree. The root's
// selector is not applied; its properties and children are, and whatever
// existing already contains is kept.
func Merge(existing Handle, tree *VNode, opts Options) (*Projection, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	pt := newPatcher()
	if err := pt.claim(tree, existing); err != nil {
		return nil, err
	}
	if err := pt.initPropertiesAndChildren(existing, tree, o); err != nil {
		return nil, err
	}
	return newProjection(tree, o, pt), nil
}

func attach(tree *VNode, parent, before Handle, opts *Options) (*Projection, error) {
	pt := newPatcher()
	if err := pt.createDom(tree, parent, before, opts); err != nil {
		return nil, err
	}
	return newProjection(tree, opts, pt), nil
}
