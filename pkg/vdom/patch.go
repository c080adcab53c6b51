package vdom

import (
	"strings"

	"github.com/vango-dev/widgetkit/internal/errors"
)

// Stats counts the output changes of one pass.
type Stats struct {
	Created int // nodes created, including descendants
	Removed int // nodes removed or handed to an exit animation
	Patched int // nodes compared against a previous node
}

// patcher owns the side table linking tree nodes to their output handles.
// A node is live while it is in the table; updating moves the handle from
// the previous node to the new one.
type patcher struct {
	handles map[*VNode]Handle
	stats   Stats
}

func newPatcher() *patcher {
	return &patcher{handles: make(map[*VNode]Handle)}
}

func (p *patcher) handle(node *VNode) Handle {
	return p.handles[node]
}

func (p *patcher) claim(node *VNode, h Handle) error {
	if _, live := p.handles[node]; live {
		return errors.New("W110").WithDetailf("%s was submitted again", node)
	}
	p.handles[node] = h
	return nil
}

// forget drops node and its descendants from the table.
func (p *patcher) forget(node *VNode) {
	delete(p.handles, node)
	for _, child := range node.Children {
		p.forget(child)
	}
}

func (p *patcher) createDom(node *VNode, parent, before Handle, opts *Options) error {
	s := opts.Surface
	p.stats.Created++
	if node.IsText() {
		h := s.CreateText(node.Text)
		if err := p.claim(node, h); err != nil {
			return err
		}
		s.InsertBefore(parent, h, before)
		return nil
	}

	sel := ParseSelector(node.Selector)
	if sel.IsSVG() {
		opts = opts.withNamespace(NamespaceSVG)
	}
	h := s.CreateElement(opts.Namespace, sel.Tag)
	if err := p.claim(node, h); err != nil {
		return err
	}
	s.InsertBefore(parent, h, before)
	for _, className := range sel.Classes {
		s.AddClass(h, className)
	}
	if sel.ID != "" {
		s.SetAttribute(h, "", "id", sel.ID)
	}
	return p.initPropertiesAndChildren(h, node, opts)
}

// initPropertiesAndChildren creates children before applying properties so
// a select's options exist before its value is set.
func (p *patcher) initPropertiesAndChildren(h Handle, node *VNode, opts *Options) error {
	for _, child := range node.Children {
		if err := p.createDom(child, h, nil, opts); err != nil {
			return err
		}
	}
	if node.Text != "" {
		opts.Surface.SetText(h, node.Text)
	}
	if err := setProperties(h, node, opts); err != nil {
		return err
	}
	afterCreate, err := lifecycleHook(node.Properties, PropAfterCreate)
	if err != nil {
		return err
	}
	if afterCreate != nil {
		afterCreate(h, opts, node.Selector, node.Properties, node.Children)
	}
	return nil
}

// updateDom patches the output of previous to match node; the two must be
// Same. It reports whether a text leaf was replaced.
func (p *patcher) updateDom(previous, node *VNode, opts *Options) (bool, error) {
	if previous == node {
		return false, nil
	}
	h, ok := p.handles[previous]
	if !ok {
		return false, errors.New("W110").WithDetailf("%s is not live in this projection", previous)
	}
	if _, live := p.handles[node]; live {
		return false, errors.New("W110").WithDetailf("%s was submitted again", node)
	}
	p.stats.Patched++
	s := opts.Surface

	if node.IsText() {
		if node.Text != previous.Text {
			replacement := s.CreateText(node.Text)
			s.ReplaceChild(s.Parent(h), replacement, h)
			delete(p.handles, previous)
			p.handles[node] = replacement
			return true, nil
		}
		delete(p.handles, previous)
		p.handles[node] = h
		return false, nil
	}

	if strings.HasPrefix(node.Selector, "svg") {
		opts = opts.withNamespace(NamespaceSVG)
	}
	updated := false
	if previous.Text != node.Text {
		updated = true
		if node.Text == "" {
			if first := s.FirstChild(h); first != nil {
				s.RemoveChild(h, first)
			}
		} else {
			s.SetText(h, node.Text)
		}
	}

	childText, err := p.updateChildren(node, h, previous.Children, node.Children, opts)
	if err != nil {
		return false, err
	}
	updated = childText || updated

	propsUpdated, err := updateProperties(h, previous, node, opts)
	if err != nil {
		return false, err
	}
	updated = propsUpdated || updated

	afterUpdate, err := lifecycleHook(node.Properties, PropAfterUpdate)
	if err != nil {
		return false, err
	}
	if afterUpdate != nil {
		afterUpdate(h, opts, node.Selector, node.Properties, node.Children)
	}

	if updated {
		updateAnimation, err := updateAnimationHook(node.Properties)
		if err != nil {
			return false, err
		}
		if updateAnimation != nil {
			updateAnimation(h, node.Properties, previous.Properties)
		}
	}

	delete(p.handles, previous)
	p.handles[node] = h
	return false, nil
}

// nodeAdded runs the enter animation of a node inserted into an existing
// parent.
func (p *patcher) nodeAdded(node *VNode, opts *Options) error {
	if node.Properties == nil {
		return nil
	}
	h := p.handles[node]
	switch enter := node.Properties[PropEnterAnimation].(type) {
	case nil:
	case EnterAnimationFunc:
		enter(h, node.Properties)
	case func(Handle, Props):
		enter(h, node.Properties)
	case string:
		if enter == "" {
			return nil
		}
		if opts.Transitions == nil {
			return errors.New("W104").WithDetailf("enter animation %q on %s", enter, node.Selector)
		}
		opts.Transitions.Enter(h, node.Properties, enter)
	default:
		return invalidHook(PropEnterAnimation, enter)
	}
	return nil
}

// nodeToRemove detaches node, or hands it to its exit animation which
// detaches it when done.
func (p *patcher) nodeToRemove(node *VNode, opts *Options) error {
	s := opts.Surface
	h := p.handles[node]
	p.forget(node)
	p.stats.Removed++

	remove := func() {
		if parent := s.Parent(h); parent != nil {
			s.RemoveChild(parent, h)
		}
	}

	if node.Properties != nil {
		exit := node.Properties[PropExitAnimation]
		if truthy(exit) {
			opts.StyleApplier(h, "pointer-events", "none")
		}
		switch fn := exit.(type) {
		case nil:
		case ExitAnimationFunc:
			fn(h, remove, node.Properties)
			return nil
		case func(Handle, func(), Props):
			fn(h, remove, node.Properties)
			return nil
		case string:
			if fn == "" {
				break
			}
			if opts.Transitions == nil {
				return errors.New("W104").WithDetailf("exit animation %q on %s", fn, node.Selector)
			}
			opts.Transitions.Exit(h, node.Properties, fn, remove)
			return nil
		default:
			return invalidHook(PropExitAnimation, exit)
		}
	}
	remove()
	return nil
}
