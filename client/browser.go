//go:build js

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"syscall/js"

	"github.com/pkg/errors"

	"jobportal-front/internal/api"
	"jobportal-front/internal/store"
)

// hashNavigator maps app routes such as "/login" onto location.hash.
type hashNavigator struct{}

func (hashNavigator) Navigate(route string) {
	js.Global().Get("location").Set("hash", "#"+route)
}

// currentRoute returns the route encoded in location.hash, "/" by default.
func currentRoute() string {
	route := strings.TrimPrefix(js.Global().Get("location").Get("hash").String(), "#")
	if route == "" {
		return "/"
	}
	return route
}

// catch turns a JavaScript exception raised inside fn into an error.
func catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = jsErr
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

// localStoragePersister keeps the session user in window.localStorage.
type localStoragePersister struct {
	key string
}

func (p localStoragePersister) storage() js.Value {
	return js.Global().Get("localStorage")
}

func (p localStoragePersister) Load() (*store.User, error) {
	var raw js.Value
	if err := catch(func() { raw = p.storage().Call("getItem", p.key) }); err != nil {
		return nil, errors.Wrap(err, "reading localStorage")
	}
	if raw.IsNull() || raw.IsUndefined() {
		return nil, nil
	}

	u := new(store.User)
	if err := json.Unmarshal([]byte(raw.String()), u); err != nil {
		return nil, errors.Wrap(err, "decoding stored session")
	}
	return u, nil
}

func (p localStoragePersister) Save(u *store.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return catch(func() { p.storage().Call("setItem", p.key, string(data)) })
}

func (p localStoragePersister) Clear() error {
	return catch(func() { p.storage().Call("removeItem", p.key) })
}

// jsFile is a File picked in an <input type="file">.
type jsFile struct {
	v js.Value
}

func (f jsFile) Filename() string    { return f.v.Get("name").String() }
func (f jsFile) ContentType() string { return f.v.Get("type").String() }

// Open reads the whole file. It blocks on a promise and must not be called
// from an event handler.
func (f jsFile) Open() (io.ReadCloser, error) {
	buf, err := await(f.v.Call("arrayBuffer"))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", f.Filename())
	}
	arr := js.Global().Get("Uint8Array").New(buf)
	data := make([]byte, arr.Get("length").Int())
	js.CopyBytesToGo(data, arr)
	return io.NopCloser(bytes.NewReader(data)), nil
}

// selectedFiles returns the files of the file input with the given id.
func selectedFiles(id string) []api.FileSource {
	input := js.Global().Get("document").Call("getElementById", id)
	if input.IsNull() || input.IsUndefined() {
		return nil
	}
	files := input.Get("files")
	if files.IsNull() || files.IsUndefined() {
		return nil
	}

	n := files.Get("length").Int()
	out := make([]api.FileSource, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, jsFile{v: files.Call("item", i)})
	}
	return out
}

// await blocks until promise settles.
func await(promise js.Value) (js.Value, error) {
	type result struct {
		v   js.Value
		err error
	}
	ch := make(chan result, 1)

	onResolve := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		ch <- result{v: args[0]}
		return nil
	})
	defer onResolve.Release()
	onReject := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		ch <- result{err: fmt.Errorf("%s", args[0].Call("toString").String())}
		return nil
	})
	defer onReject.Release()

	promise.Call("then", onResolve, onReject)
	r := <-ch
	return r.v, r.err
}
