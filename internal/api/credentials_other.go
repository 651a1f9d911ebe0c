//go:build !(js && wasm)

package api

import "net/http"

// includeCredentials is a no-op outside the WebAssembly fetch bridge. The
// cookie jar handles cookies in tests and the gopherjs transport sends
// same-origin cookies itself.
func includeCredentials(*http.Request) {}
