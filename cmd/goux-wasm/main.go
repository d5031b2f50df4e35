//go:build js && wasm

// Command goux-wasm runs the goUX engine inside the browser. Search queries
// are dispatched to the page as a "goux:search" CustomEvent whose detail is
// the query string.
package main

import (
	"context"
	"log/slog"
	"os"
	"syscall/js"

	goUX "github.com/MrEthical07/goUX"
	"github.com/MrEthical07/goUX/dom"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	engine, err := goUX.New().
		WithTabStorage(dom.NewLocalStorage()).
		WithSearchHandler(dispatchSearch).
		WithLogger(logger).
		Build()
	if err != nil {
		logger.Error("goux: build engine", "err", err)
		return
	}
	defer engine.Close()

	ctx := context.Background()
	doc := dom.NewDocument()
	defer doc.Release()
	// The saved tab is restored once by Bind; tab_state.live_sync is left off.
	if err := engine.Bind(ctx, doc, dom.NewPresenter()); err != nil {
		logger.Error("goux: bind page", "err", err)
		return
	}

	select {}
}

func dispatchSearch(query string) {
	init := js.Global().Get("Object").New()
	init.Set("detail", query)
	event := js.Global().Get("CustomEvent").New("goux:search", init)
	js.Global().Get("document").Call("dispatchEvent", event)
}
