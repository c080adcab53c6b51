// Package transition serves animation tokens for projections.
//
// A Set maps tokens such as "fade" or "slide" to style tweens and advances
// every running tween once per frame of its frame source. Enter tweens run
// from an effect's From value to its To value; exit tweens run backwards
// and detach the node when they finish.
//
//	t := transition.New(loop, doc.SetStyle)
//	opts := vdom.Options{Surface: doc, Transitions: t}
//	... vdom.Li(vdom.Key(id), vdom.EnterTransition("fade"), vdom.ExitTransition("fade"))
package transition

import (
	"fmt"
	"log/slog"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vango-dev/widgetkit/pkg/frame"
	"github.com/vango-dev/widgetkit/pkg/vdom"
)

// Effect animates one style property.
type Effect struct {
	Style    string        // style name, e.g. "opacity"
	From, To float32       // enter runs From→To, exit To→From
	Duration float32       // seconds
	Ease     ease.TweenFunc // defaults to ease.OutQuad
	Format   func(v float32) string
}

func (e Effect) format(v float32) string {
	if e.Format != nil {
		return e.Format(v)
	}
	return fmt.Sprintf("%.3g", v)
}

// Built-in effects.
var (
	Fade = Effect{Style: "opacity", From: 0, To: 1, Duration: 0.2}

	Slide = Effect{Style: "transform", From: -12, To: 0, Duration: 0.25,
		Format: func(v float32) string { return fmt.Sprintf("translateY(%.1fpx)", v) }}

	Scale = Effect{Style: "transform", From: 0.8, To: 1, Duration: 0.15,
		Format: func(v float32) string { return fmt.Sprintf("scale(%.3f)", v) }}
)

// StyleFunc applies a single style, usually vdom.Surface.SetStyle.
type StyleFunc func(h vdom.Handle, name, value string)

// Option configures a Set.
type Option func(*Set)

// WithEffect registers effect under token, replacing any built-in.
func WithEffect(token string, effect Effect) Option {
	return func(s *Set) {
		s.effects[token] = effect
	}
}

// WithStep sets the seconds each frame advances the tweens by.
// Defaults to 1/60.
func WithStep(seconds float32) Option {
	return func(s *Set) {
		s.step = seconds
	}
}

// WithLogger sets the logger for unknown tokens.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Set) {
		s.logger = logger
	}
}

type run struct {
	h      vdom.Handle
	effect Effect
	tween  *gween.Tween
	done   func()
}

// Set is a vdom.Transitions driven by a frame source. It is not safe for
// concurrent use.
type Set struct {
	frames  frame.Source
	apply   StyleFunc
	effects map[string]Effect
	step    float32
	logger  *slog.Logger

	running []*run
	pending frame.ID
}

var _ vdom.Transitions = (*Set)(nil)

// New creates a Set with the built-in "fade", "slide" and "scale" effects.
func New(frames frame.Source, apply StyleFunc, opts ...Option) *Set {
	s := &Set{
		frames: frames,
		apply:  apply,
		effects: map[string]Effect{
			"fade":  Fade,
			"slide": Slide,
			"scale": Scale,
		},
		step:   1.0 / 60,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Running returns the number of unfinished tweens.
func (s *Set) Running() int {
	return len(s.running)
}

// Enter starts the enter tween of token on h.
func (s *Set) Enter(h vdom.Handle, props vdom.Props, token string) {
	effect, ok := s.effects[token]
	if !ok {
		s.logger.Warn("unknown enter transition", slog.String("token", token))
		return
	}
	s.start(h, effect, effect.From, effect.To, nil)
}

// Exit starts the exit tween of token on h and calls done when it ends.
// Unknown tokens call done at once.
func (s *Set) Exit(h vdom.Handle, props vdom.Props, token string, done func()) {
	effect, ok := s.effects[token]
	if !ok {
		s.logger.Warn("unknown exit transition", slog.String("token", token))
		done()
		return
	}
	s.start(h, effect, effect.To, effect.From, done)
}

func (s *Set) start(h vdom.Handle, effect Effect, from, to float32, done func()) {
	fn := effect.Ease
	if fn == nil {
		fn = ease.OutQuad
	}
	s.apply(h, effect.Style, effect.format(from))
	s.running = append(s.running, &run{
		h:      h,
		effect: effect,
		tween:  gween.New(from, to, effect.Duration, fn),
		done:   done,
	})
	if s.pending == 0 {
		s.pending = s.frames.RequestFrame(s.tick)
	}
}

func (s *Set) tick() {
	s.pending = 0
	active := s.running[:0]
	var finished []*run
	for _, r := range s.running {
		v, end := r.tween.Update(s.step)
		s.apply(r.h, r.effect.Style, r.effect.format(v))
		if end {
			finished = append(finished, r)
			continue
		}
		active = append(active, r)
	}
	s.running = active
	for _, r := range finished {
		if r.done != nil {
			r.done()
		}
	}
	if len(s.running) > 0 && s.pending == 0 {
		s.pending = s.frames.RequestFrame(s.tick)
	}
}
