//go:build js && wasm

// Package wasm exposes the adapter to JavaScript.
//
// Register installs a global "blockfall" object. blockfall.newGame(mode,
// difficulty) returns a game object whose methods mirror the adapter:
// tick, rendering, the accessors and the four buffer addresses inside the
// module's linear memory. Copy accessors return fresh Uint8Arrays for hosts
// that do not want to read memory directly.
//
// Randomness comes from the page: a global function rand_gen_js returning
// an unsigned 32-bit integer must exist before newGame is called.
package wasm

import (
	"syscall/js"

	"github.com/vovakirdan/blockfall/internal/bridge"
	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// RandGlobal is the name of the page-provided random function.
const RandGlobal = "rand_gen_js"

// funcs keeps every js.Func reachable for the lifetime of the module.
var funcs []js.Func

// Register installs the blockfall global and routes adapter panics to the
// browser console.
func Register() {
	bridge.SetPanicHook(consoleHook)

	api := js.Global().Get("Object").New()
	api.Set("newGame", export(newGame))
	api.Set("modes", export(listModes))
	js.Global().Set("blockfall", api)
}

func consoleHook(op string, value any, stack []byte) {
	js.Global().Get("console").Call("error", "blockfall: panic in "+op, js.ValueOf(toString(value)), string(stack))
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	default:
		return "unknown panic"
	}
}

func export(fn func(this js.Value, args []js.Value) any) js.Func {
	f := js.FuncOf(fn)
	funcs = append(funcs, f)
	return f
}

// randSource imports the page's random function.
func randSource() bridge.RandSource {
	fn := js.Global().Get(RandGlobal)
	return func() uint32 {
		return uint32(fn.Invoke().Float())
	}
}

func listModes(_ js.Value, _ []js.Value) any {
	out := js.Global().Get("Array").New()
	for _, m := range registry.List() {
		o := js.Global().Get("Object").New()
		o.Set("id", m.ID)
		o.Set("title", m.Title)
		out.Call("push", o)
	}
	return out
}

// newGame(mode?, difficulty?) returns a game object, or null for an unknown
// mode or a missing random source.
func newGame(_ js.Value, args []js.Value) any {
	mode := "marathon"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		mode = args[0].String()
	}

	rules := config.DefaultTetrisConfig()
	if len(args) > 1 && args[1].Type() == js.TypeString {
		config.ApplyTetrisPreset(&rules, config.DifficultyPreset(args[1].String()))
	}

	console := js.Global().Get("console")
	if js.Global().Get(RandGlobal).Type() != js.TypeFunction {
		console.Call("error", "blockfall: "+RandGlobal+" is not defined")
		return js.Null()
	}

	b, err := registry.Open(mode, randSource(), rules)
	if err != nil {
		console.Call("error", "blockfall: "+err.Error())
		return js.Null()
	}
	return gameObject(b)
}

func gameObject(b *bridge.Bridge) js.Value {
	g := js.Global().Get("Object").New()

	g.Set("tick", export(func(_ js.Value, args []js.Value) any {
		flags := make([]bool, len(args))
		for i, a := range args {
			flags[i] = a.Truthy()
		}
		b.TickKeys(tickKeys(flags))
		return nil
	}))
	g.Set("rendering", export(func(js.Value, []js.Value) any {
		b.Rendering()
		return nil
	}))

	for name, get := range accessors(b) {
		g.Set(name, export(func(js.Value, []js.Value) any { return get() }))
	}
	for name, view := range buffers(b) {
		g.Set(name, export(func(js.Value, []js.Value) any { return copyOut(view()) }))
	}

	return g
}

func copyOut(src []byte) js.Value {
	dst := js.Global().Get("Uint8Array").New(len(src))
	js.CopyBytesToJS(dst, src)
	return dst
}
