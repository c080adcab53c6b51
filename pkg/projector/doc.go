// Package projector batches the renders of many projections into one pass
// per display frame.
//
// A Projector owns an ordered list of render functions, each paired with
// the vdom.Projection it keeps up to date. ScheduleRender requests a frame
// from the frame source; however often it is called before the frame
// fires, one pass runs, calling every render function in registration
// order and updating its projection with the fresh tree. Every event
// handler bound through the projector schedules a render after it runs,
// so state changed by a handler shows up in the next frame.
//
// Basic usage:
//
//	loop := frame.NewLoop(60, logger)
//	p := projector.New(loop, vdom.Options{Surface: doc},
//	    projector.WithLogger(logger),
//	    projector.WithMetrics(projector.NewMetrics()),
//	)
//	loop.Post(func() {
//	    p.Append(doc.Root(), cart.Render)
//	})
//
// A pass that fails moves the projector to StateFailed: the failing tree
// is reported once, through the logger, metrics, the pass span and Err,
// and no further pass runs until Resume. A projector is not safe for
// concurrent use; call it from the goroutine that runs the frame source.
package projector
