package projector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/widgetkit/internal/errors"
	"github.com/vango-dev/widgetkit/internal/identity"
	"github.com/vango-dev/widgetkit/pkg/frame"
	"github.com/vango-dev/widgetkit/pkg/vdom"
)

// ErrNotRegistered is returned by Detach for an unknown render function.
var ErrNotRegistered = errors.New("W108")

// Default tracer name for render pass spans.
const defaultTracerName = "widgetkit/projector"

// FrameSource schedules the projector's passes.
type FrameSource = frame.Source

// RenderFunc produces the current tree of one projection.
type RenderFunc func() *vdom.VNode

// State is the scheduling state of a Projector.
type State uint8

const (
	StateIdle         State = iota // nothing scheduled
	StateFramePending              // a frame was requested
	StateRendering                 // a pass is running
	StateStopped                   // inert until Resume
	StateFailed                    // a pass failed; inert until Resume
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateFramePending:
		return "FramePending"
	case StateRendering:
		return "Rendering"
	case StateStopped:
		return "Stopped"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Option configures a Projector.
type Option func(*Projector)

// WithLogger sets the logger. Defaults to the vdom.Options logger, then
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Projector) {
		p.logger = logger
	}
}

// WithMetrics records pass metrics.
func WithMetrics(m *Metrics) Option {
	return func(p *Projector) {
		p.metrics = m
	}
}

// WithTracer sets the tracer used for pass spans. Defaults to the tracer
// of the global OpenTelemetry provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Projector) {
		p.tracer = tracer
	}
}

type registration struct {
	render     RenderFunc
	projection *vdom.Projection
}

// Projector schedules and runs render passes.
type Projector struct {
	frames  FrameSource
	opts    vdom.Options
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	state    State
	pending  frame.ID
	rerender bool
	err      error

	registrations []registration
}

// New creates an idle projector. Projections it creates use opts with the
// event handler interceptor extended to schedule a render after every
// handler.
func New(frames FrameSource, opts vdom.Options, options ...Option) *Projector {
	p := &Projector{frames: frames}
	for _, opt := range options {
		opt(p)
	}
	if p.logger == nil {
		p.logger = opts.Logger
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = p.logger
	}
	if p.tracer == nil {
		p.tracer = otel.Tracer(defaultTracerName)
	}

	inner := opts.EventHandlerInterceptor
	opts.EventHandlerInterceptor = func(name string, handler vdom.EventHandler, h vdom.Handle, props vdom.Props) vdom.EventHandler {
		if inner != nil {
			handler = inner(name, handler, h, props)
		}
		return func(evt *vdom.Event) {
			handler(evt)
			p.ScheduleRender()
		}
	}
	p.opts = opts
	return p
}

// State returns the scheduling state.
func (p *Projector) State() State {
	return p.state
}

// Err returns the error of the failed pass while the projector is in
// StateFailed.
func (p *Projector) Err() error {
	return p.err
}

// Projections returns the registered projections in registration order.
func (p *Projector) Projections() []*vdom.Projection {
	out := make([]*vdom.Projection, len(p.registrations))
	for i, r := range p.registrations {
		out[i] = r.projection
	}
	return out
}

// ScheduleRender requests a pass at the next frame. Requests made before
// that frame fires share one pass; a request made during a pass gets one
// more pass. Stopped and failed projectors ignore it.
func (p *Projector) ScheduleRender() {
	switch p.state {
	case StateIdle:
		p.requestFrame()
	case StateFramePending:
		p.metrics.coalesced()
	case StateRendering:
		if p.rerender {
			p.metrics.coalesced()
		}
		p.rerender = true
	}
}

// Stop cancels a pending frame and makes the projector inert.
func (p *Projector) Stop() {
	if p.state == StateFramePending {
		p.frames.CancelFrame(p.pending)
		p.pending = 0
	}
	p.rerender = false
	p.state = StateStopped
}

// Resume reactivates a stopped or failed projector and schedules a pass.
func (p *Projector) Resume() {
	switch p.state {
	case StateStopped, StateFailed:
		p.err = nil
		p.state = StateIdle
		p.requestFrame()
	case StateIdle:
		p.requestFrame()
	case StateRendering:
		p.rerender = true
	}
}

func (p *Projector) requestFrame() {
	p.state = StateFramePending
	p.pending = p.frames.RequestFrame(p.onFrame)
}

func (p *Projector) onFrame() {
	p.pending = 0
	if p.state != StateFramePending {
		p.metrics.skipped()
		return
	}

	p.state = StateRendering
	if err := p.renderPass(); err != nil {
		p.state = StateFailed
		p.err = err
		p.rerender = false
		p.logger.Error("render pass failed", slog.String("error", err.Error()))
		return
	}

	if p.state != StateRendering {
		// stopped from inside a render function
		return
	}
	p.state = StateIdle
	if p.rerender {
		p.rerender = false
		p.requestFrame()
	}
}

func (p *Projector) renderPass() (err error) {
	regs := append([]registration(nil), p.registrations...)

	_, span := p.tracer.Start(context.Background(), "widgetkit.render",
		trace.WithAttributes(attribute.Int("widgetkit.projections", len(regs))),
	)
	defer span.End()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.CategoryRender, "render function panicked: %v", r)
		}
		p.metrics.observePass(time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}()

	created, removed := 0, 0
	for i, r := range regs {
		if err := r.projection.Update(r.render()); err != nil {
			span.SetAttributes(attribute.Int("widgetkit.failed_projection", i))
			return err
		}
		st := r.projection.Stats()
		created += st.Created
		removed += st.Removed
	}
	span.SetAttributes(
		attribute.Int("widgetkit.created", created),
		attribute.Int("widgetkit.removed", removed),
	)
	return nil
}

// Append renders a new projection as the last child of parent.
func (p *Projector) Append(parent vdom.Handle, render RenderFunc) (*vdom.Projection, error) {
	return p.register(render, func(tree *vdom.VNode) (*vdom.Projection, error) {
		return vdom.Append(parent, tree, p.opts)
	})
}

// InsertBefore renders a new projection as the previous sibling of sibling.
func (p *Projector) InsertBefore(sibling vdom.Handle, render RenderFunc) (*vdom.Projection, error) {
	return p.register(render, func(tree *vdom.VNode) (*vdom.Projection, error) {
		return vdom.InsertBefore(sibling, tree, p.opts)
	})
}

// Merge adopts existing as the root output of a new projection.
func (p *Projector) Merge(existing vdom.Handle, render RenderFunc) (*vdom.Projection, error) {
	return p.register(render, func(tree *vdom.VNode) (*vdom.Projection, error) {
		return vdom.Merge(existing, tree, p.opts)
	})
}

// Replace renders a new projection in place of existing.
func (p *Projector) Replace(existing vdom.Handle, render RenderFunc) (*vdom.Projection, error) {
	return p.register(render, func(tree *vdom.VNode) (*vdom.Projection, error) {
		return vdom.Replace(existing, tree, p.opts)
	})
}

func (p *Projector) register(render RenderFunc, attach func(*vdom.VNode) (*vdom.Projection, error)) (*vdom.Projection, error) {
	proj, err := attach(render())
	if err != nil {
		return nil, fmt.Errorf("projector: attach: %w", err)
	}
	p.registrations = append(p.registrations, registration{render: render, projection: proj})
	p.metrics.setProjections(len(p.registrations))
	return proj, nil
}

// Detach unregisters render and returns its projection. The output is
// left in place.
func (p *Projector) Detach(render RenderFunc) (*vdom.Projection, error) {
	id := identity.Func(render)
	for i, r := range p.registrations {
		if identity.Func(r.render) == id {
			p.registrations = append(p.registrations[:i], p.registrations[i+1:]...)
			p.metrics.setProjections(len(p.registrations))
			return r.projection, nil
		}
	}
	return nil, errors.New("W108").WithDetailf("render function %p", render)
}
