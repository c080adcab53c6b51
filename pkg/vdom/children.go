package vdom

import "github.com/vango-dev/widgetkit/internal/errors"

// findIndexOfChild returns the index of the first child from start that is
// Same as sameAs, or -1. Text leaves are never searched for.
func findIndexOfChild(children []*VNode, sameAs *VNode, start int) int {
	if sameAs.IsText() {
		return -1
	}
	for i := start; i < len(children); i++ {
		if Same(children[i], sameAs) {
			return i
		}
	}
	return -1
}

// checkDistinguishable fails when the child at index has a Same sibling in
// children. Text leaves need not be distinguishable; keyed siblings collide
// only when their keys are identical.
func checkDistinguishable(children []*VNode, index int, parent *VNode, added bool) error {
	child := children[index]
	if child.IsText() {
		return nil
	}
	for i, sibling := range children {
		if i == index || !Same(sibling, child) {
			continue
		}
		if added {
			return errors.New("W106").WithDetailf("%s had a %s child added, but there is now more than one", parent.Selector, child.Selector)
		}
		return errors.New("W107").WithDetailf("%s had a %s child removed, but there were more than one", parent.Selector, child.Selector)
	}
	return nil
}

// updateChildren matches newChildren against oldChildren with a single
// forward scan and patches the output of parent. Old children skipped over
// by the scan are set aside; a later new child that is Same as one of them
// moves it into place, the rest are removed once the scan ends. It reports
// whether any text leaf among the children was replaced.
func (p *patcher) updateChildren(node *VNode, parent Handle, oldChildren, newChildren []*VNode, opts *Options) (bool, error) {
	s := opts.Surface
	textUpdated := false
	oldIndex := 0
	var skipped []int

	for newIndex, newChild := range newChildren {
		if oldIndex < len(oldChildren) && Same(oldChildren[oldIndex], newChild) {
			changed, err := p.updateDom(oldChildren[oldIndex], newChild, opts)
			if err != nil {
				return false, err
			}
			textUpdated = changed || textUpdated
			oldIndex++
			continue
		}

		if found := findIndexOfChild(oldChildren, newChild, oldIndex+1); found >= 0 {
			for i := oldIndex; i < found; i++ {
				skipped = append(skipped, i)
			}
			changed, err := p.updateDom(oldChildren[found], newChild, opts)
			if err != nil {
				return false, err
			}
			textUpdated = changed || textUpdated
			oldIndex = found + 1
			continue
		}

		var before Handle
		if oldIndex < len(oldChildren) {
			before = p.handle(oldChildren[oldIndex])
		}

		if k := p.takeSkipped(&skipped, oldChildren, newChild); k >= 0 {
			s.InsertBefore(parent, p.handle(oldChildren[k]), before)
			changed, err := p.updateDom(oldChildren[k], newChild, opts)
			if err != nil {
				return false, err
			}
			textUpdated = changed || textUpdated
			continue
		}

		if err := p.createDom(newChild, parent, before, opts); err != nil {
			return false, err
		}
		if err := p.nodeAdded(newChild, opts); err != nil {
			return false, err
		}
		if err := checkDistinguishable(newChildren, newIndex, node, true); err != nil {
			return false, err
		}
	}

	for i := oldIndex; i < len(oldChildren); i++ {
		skipped = append(skipped, i)
	}
	for _, i := range skipped {
		if err := p.nodeToRemove(oldChildren[i], opts); err != nil {
			return false, err
		}
		if err := checkDistinguishable(oldChildren, i, node, false); err != nil {
			return false, err
		}
	}
	return textUpdated, nil
}

// takeSkipped removes and returns the first skipped old index whose node is
// Same as sameAs, or -1.
func (p *patcher) takeSkipped(skipped *[]int, oldChildren []*VNode, sameAs *VNode) int {
	if sameAs.IsText() {
		return -1
	}
	for i, k := range *skipped {
		if Same(oldChildren[k], sameAs) {
			*skipped = append((*skipped)[:i], (*skipped)[i+1:]...)
			return k
		}
	}
	return -1
}
