//go:build (js || wasm) && !dev

package runtime

import (
	"fmt"

	"github.com/vcrobe/entryform/console"
)

// In production mode, panics in lifecycle hooks and async callbacks are
// recovered and logged so one faulty component cannot take down the app.

func (r *RendererImpl) callOnInit(initializer Initializer, key string) {
	defer recoverTo("OnInit", key)
	initializer.OnInit()
}

func (r *RendererImpl) callOnParametersSet(receiver ParameterReceiver, key string) {
	defer recoverTo("OnParametersSet", key)
	receiver.OnParametersSet()
}

func (r *RendererImpl) callOnDestroy(cleaner Cleaner, key string) {
	defer recoverTo("OnDestroy", key)
	cleaner.OnDestroy()
}

func (r *RendererImpl) callAsync(fn func()) {
	defer recoverTo("InvokeAsync", "callback")
	fn()
}

func recoverTo(hook, key string) {
	if rec := recover(); rec != nil {
		console.Error(fmt.Sprintf("ERROR: %s panic in component %s: %v", hook, key, rec))
	}
}
