package model

import (
	"fmt"
	"log/slog"
)

// Debug turns invariant violations into panics. Release builds log and
// clamp instead.
var Debug = false

// Invariant reports an internal bug. It never returns an error because
// there is no recovery path for the caller.
func Invariant(ok bool, format string, args ...any) {
	if ok {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if Debug {
		panic("invariant violated: " + msg)
	}
	slog.Error("invariant violated", "detail", msg)
}
