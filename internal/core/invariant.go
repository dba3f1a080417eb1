package core

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Invariant reports whether ok holds. A violation panics in builds tagged
// "debug"; otherwise it is logged and false is returned so the caller can
// clamp to a safe state.
func Invariant(ok bool, msg string, keyvals ...any) bool {
	if ok {
		return true
	}
	if strictInvariants {
		panic(fmt.Sprintf("invariant violated: %s %v", msg, keyvals))
	}
	log.Error("invariant violated: "+msg, keyvals...)
	return false
}
