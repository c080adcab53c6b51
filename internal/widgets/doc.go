// Package widgets holds the demo commerce widgets: product cards with an
// option selector and quantity, and a cart that collects line items.
//
// The widgets are plain render functions over mutable models. Handlers
// mutate the model; the projector they are mounted on schedules the next
// render after every handler.
package widgets
