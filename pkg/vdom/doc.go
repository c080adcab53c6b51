// Package vdom renders declarative tree descriptions into output nodes and
// keeps that output synchronized as new descriptions arrive.
//
// # Core Types
//
// VNode describes one element or text leaf. Props holds the element's
// properties; a handful of names are reserved (key, bind, class, classes,
// styles, on* handlers, animation and lifecycle hooks). Handle is an opaque
// output node owned by a Surface, the mutable output the engine patches.
//
// # Building Trees
//
// H is the hyperscript constructor:
//
//	H("div.card#main", Props{"key": id},
//	    H("h2", title),
//	    H("button", Props{"onclick": addToCart}, "Add to cart"),
//	)
//
// The element helpers fold attributes and handlers into Props:
//
//	Div(Class("card"), Key(id),
//	    H2(title),
//	    Button(OnClick(addToCart), "Add to cart"),
//	)
//
// # Projections
//
// Create, Append, InsertBefore, Merge and Replace realize a tree and return
// a Projection. Projection.Update compares the previous tree with a new one
// and patches the output in place. Children are matched with a forward scan
// using Same; unmatched old siblings are kept aside until the end of the
// list so a reordered sibling is moved rather than recreated.
//
// A VNode handed to the engine belongs to it: build a fresh tree for every
// update. Output handles are tracked in a side table per projection, and a
// node that is already live is rejected with ErrNodeReused.
package vdom
