//go:build js && wasm

package api

import "net/http"

// includeCredentials makes the fetch-based transport send and accept cookies
// on cross-origin requests. The transport strips the header before sending.
func includeCredentials(req *http.Request) {
	req.Header.Set("js.fetch:credentials", "include")
}
