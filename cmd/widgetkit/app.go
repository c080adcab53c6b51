package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vango-dev/widgetkit/internal/config"
	"github.com/vango-dev/widgetkit/internal/publish"
	"github.com/vango-dev/widgetkit/internal/widgets"
	"github.com/vango-dev/widgetkit/pkg/frame"
	"github.com/vango-dev/widgetkit/pkg/memdom"
	"github.com/vango-dev/widgetkit/pkg/projector"
	"github.com/vango-dev/widgetkit/pkg/transition"
	"github.com/vango-dev/widgetkit/pkg/vdom"
)

// loadConfig resolves the configuration and applies flag overrides. With
// no --config and no config file in any parent directory the defaults are
// used.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case flags.configPath != "":
		info, statErr := os.Stat(flags.configPath)
		if statErr == nil && info.IsDir() {
			cfg, err = config.Load(flags.configPath)
		} else {
			cfg, err = config.LoadFile(flags.configPath)
		}
	default:
		root, findErr := config.FindProjectRoot(".")
		if findErr != nil {
			cfg = config.New()
		} else {
			cfg, err = config.Load(root)
		}
	}
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	return cfg, cfg.Validate()
}

// newLogger builds the slog handler named by cfg.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// app is a storefront mounted on an in-memory document.
type app struct {
	doc       *memdom.Document
	projector *projector.Projector
	store     *widgets.Storefront
	registry  *prometheus.Registry
}

type appOptions struct {
	frames  frame.Source
	logger  *slog.Logger
	animate bool
}

// newApp loads the catalog, mounts the storefront on a fresh document and
// wires metrics when they are enabled.
func newApp(cfg *config.Config, o appOptions) (*app, error) {
	catalog := widgets.DefaultCatalog()
	if path := cfg.CatalogPath(); path != "" {
		var err error
		if catalog, err = widgets.LoadCatalog(path); err != nil {
			return nil, err
		}
	}

	a := &app{doc: memdom.New()}
	vopts := vdom.Options{Surface: a.doc, Logger: o.logger}
	cartOpts := []widgets.CartOption{widgets.WithCartLogger(o.logger)}
	if o.animate {
		vopts.Transitions = transition.New(o.frames, a.doc.SetStyle, transition.WithLogger(o.logger))
		cartOpts = append(cartOpts, widgets.WithCartTransitions())
	}

	popts := []projector.Option{projector.WithLogger(o.logger)}
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(collectors.NewGoCollector())
		popts = append(popts, projector.WithMetrics(projector.NewMetrics(
			projector.WithNamespace(cfg.Metrics.Namespace),
			projector.WithRegistry(a.registry),
		)))
	}

	a.projector = projector.New(o.frames, vopts, popts...)
	a.store = widgets.NewStorefront(catalog, cartOpts...)
	if err := a.store.Mount(a.projector, a.doc.Root()); err != nil {
		return nil, err
	}
	return a, nil
}

// addToCart adds the default selection of each product to the cart.
func (a *app) addToCart(productIDs []string) error {
	for _, id := range productIDs {
		var card *widgets.ProductCard
		for _, c := range a.store.Cards {
			if c.Product().ID == id {
				card = c
			}
		}
		if card == nil {
			return fmt.Errorf("unknown product %q", id)
		}
		if !card.AddToCart() {
			return fmt.Errorf("product %q is not available", id)
		}
	}
	if len(productIDs) > 0 {
		a.projector.ScheduleRender()
	}
	return nil
}

// settle fires frames until none are pending.
func (a *app) settle(frames *frame.Manual) error {
	for i := 0; frames.Pending() > 0 && i < 16; i++ {
		frames.Fire()
	}
	return a.projector.Err()
}

// snapshot renders the document as a standalone page.
func (a *app) snapshot(title string) ([]byte, error) {
	return publish.Page(title, a.doc.InnerHTML(a.doc.Root()))
}
