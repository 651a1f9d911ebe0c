//go:build tools

package tools

// gopherjs builds the client as plain JavaScript (make gopherjs) for
// browsers without WebAssembly.
import (
	_ "github.com/gopherjs/gopherjs"
)
