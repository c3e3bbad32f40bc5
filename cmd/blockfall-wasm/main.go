//go:build js && wasm

// blockfall-wasm is the browser build of the engine adapter.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o blockfall.wasm ./cmd/blockfall-wasm
//
// and load it with wasm_exec.js after defining rand_gen_js on the page.
package main

import (
	_ "github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/platform/wasm"
)

func main() {
	wasm.Register()
	select {}
}
