package bridge

import (
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"
)

// PanicHook receives a panic raised inside a bridge operation before it propagates.
type PanicHook func(op string, value any, stack []byte)

var (
	hookMu   sync.RWMutex
	hook     PanicHook
	hookOnce sync.Once
)

// SetPanicHook routes bridge panics to h. A nil hook restores the default logger.
// Hosts without a usable stderr (wasm, SSH sessions) install their own channel here.
func SetPanicHook(h PanicHook) {
	hookMu.Lock()
	defer hookMu.Unlock()

	if h == nil {
		h = logPanic
	}
	hook = h
}

// installHook sets the default hook unless a host already chose one.
func installHook() {
	hookOnce.Do(func() {
		hookMu.Lock()
		defer hookMu.Unlock()

		if hook == nil {
			hook = logPanic
		}
	})
}

// logPanic is the default hook.
func logPanic(op string, value any, stack []byte) {
	log.Error("bridge panic", "op", op, "panic", value, "stack", string(stack))
}

// guard reports a recovered panic to the hook and re-raises it.
// It must be deferred directly.
func guard(op string) {
	r := recover()
	if r == nil {
		return
	}

	hookMu.RLock()
	h := hook
	hookMu.RUnlock()

	if h != nil {
		h(op, r, debug.Stack())
	}
	panic(r)
}
