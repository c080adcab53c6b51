//go:build js && wasm

// Command widgetkit-wasm mounts the demo storefront on the page it is
// loaded into.
//
//	GOOS=js GOARCH=wasm go build -o widgets.wasm ./cmd/widgetkit-wasm
package main

import (
	"log/slog"
	"os"

	"github.com/vango-dev/widgetkit/internal/widgets"
	"github.com/vango-dev/widgetkit/pkg/jsdom"
	"github.com/vango-dev/widgetkit/pkg/projector"
	"github.com/vango-dev/widgetkit/pkg/transition"
	"github.com/vango-dev/widgetkit/pkg/vdom"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	doc := jsdom.New()
	frames := jsdom.AnimationFrames()
	mount := doc.Query("[data-widgetkit]")
	if mount == nil {
		mount = doc.Body()
	}

	p := projector.New(frames, vdom.Options{
		Surface:     doc,
		Logger:      logger,
		Transitions: transition.New(frames, doc.SetStyle, transition.WithLogger(logger)),
	}, projector.WithLogger(logger))

	store := widgets.NewStorefront(nil, widgets.WithCartTransitions(), widgets.WithCartLogger(logger))
	if err := store.Mount(p, mount); err != nil {
		logger.Error("mount storefront", slog.String("error", err.Error()))
		return
	}

	select {}
}
