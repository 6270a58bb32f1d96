//go:build !(js || wasm)

package console

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Native builds forward to the global zerolog logger so component code keeps
// the same call sites in tests and in the browser.

// Log writes a debug-level entry.
func Log(args ...any) {
	log.Debug().Msg(join(args))
}

// Warn writes a warn-level entry.
func Warn(args ...any) {
	log.Warn().Msg(join(args))
}

// Error writes an error-level entry.
func Error(args ...any) {
	log.Error().Msg(join(args))
}

func join(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, " ")
}
