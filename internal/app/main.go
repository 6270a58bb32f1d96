//go:build js || wasm

package main

import (
	"syscall/js"
	"time"

	"github.com/vcrobe/entryform/console"
	"github.com/vcrobe/entryform/internal/app/components/pages"
	"github.com/vcrobe/entryform/internal/app/services"
	"github.com/vcrobe/entryform/runtime"
)

func main() {
	// The dev server serves both the app and /api, so the page origin is the API base.
	origin := js.Global().Get("location").Get("origin").String()

	client, err := services.NewClient(services.ClientOptions{
		BaseURL:    origin,
		Attempts:   3,
		RetryDelay: 500 * time.Millisecond,
	})
	if err != nil {
		console.Error("Failed to create API client:", err.Error())
		panic(err)
	}

	form := pages.NewEntryForm(client, client)
	form.RequestTimeout = 10 * time.Second

	renderer := runtime.NewRenderer("#app")
	renderer.SetCurrentComponent(form)
	renderer.RenderRoot()

	unload := js.FuncOf(func(this js.Value, args []js.Value) any {
		renderer.Unmount()
		return nil
	})
	defer unload.Release()
	js.Global().Call("addEventListener", "pagehide", unload)

	// Keep the Go program running
	select {}
}
