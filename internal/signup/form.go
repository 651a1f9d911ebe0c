// Package signup implements the account signup form: the editable draft,
// the one-shot session guard and the submit flow against the user API.
package signup

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"jobportal-front/internal/api"
)

// Routes the form navigates to.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
)

// DefaultSuccessMessage is shown when the API accepts the signup without a
// message.
const DefaultSuccessMessage = "Account created"

// StateReader reads the shared auth state.
type StateReader interface {
	Loading() bool
	HasSession() bool
}

// StateWriter writes the shared loading flag.
type StateWriter interface {
	SetLoading(bool)
}

// Navigator moves the app to another route.
type Navigator interface {
	Navigate(route string)
}

// Notifier shows success and error toasts.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Registrar creates accounts. *api.Client implements it.
type Registrar interface {
	Register(ctx context.Context, r api.RegisterRequest) (*api.Response, error)
}

// Deps are the collaborators of a Form.
type Deps struct {
	State     StateReader
	Loading   StateWriter
	Navigator Navigator
	Notifier  Notifier
	Registrar Registrar
}

// Option configures a Form.
type Option func(*Form)

// WithStrictValidation rejects drafts that fail Draft.Validate before any
// request is sent.
func WithStrictValidation(strict bool) Option {
	return func(f *Form) {
		f.strict = strict
	}
}

// Form is the controller behind the signup page. Its methods are safe to call
// from event handlers and from the goroutine running Submit.
type Form struct {
	deps   Deps
	strict bool
	log    *logrus.Entry

	mu    sync.Mutex
	draft Draft

	initOnce   sync.Once
	redirected bool

	inFlight int32
}

// NewForm returns a form with an empty draft.
func NewForm(deps Deps, opts ...Option) *Form {
	f := &Form{
		deps: deps,
		log:  logrus.WithField("component", "signup"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Init runs the mount guard: when a session already exists the form
// navigates home and reports true. Only the first call checks the session,
// later calls return the first answer.
func (f *Form) Init() bool {
	f.initOnce.Do(func() {
		if f.deps.State.HasSession() {
			f.redirected = true
			f.log.Debug("session exists, leaving signup")
			f.deps.Navigator.Navigate(RouteHome)
		}
	})
	return f.redirected
}

// Redirected reports whether Init sent the user away.
func (f *Form) Redirected() bool {
	f.Init()
	return f.redirected
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Loading reports the shared loading flag.
func (f *Form) Loading() bool {
	return f.deps.State.Loading()
}

// Submitting reports whether a Submit call is running.
func (f *Form) Submitting() bool {
	return atomic.LoadInt32(&f.inFlight) == 1
}

// ChangeField replaces a single field of the draft. Unknown names and
// unknown roles leave the draft untouched.
func (f *Form) ChangeField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, err := f.draft.with(name, value)
	if err != nil {
		return err
	}
	f.draft = d
	return nil
}

// ChangeFile sets the profile image to the first selected file. An empty
// selection, e.g. a cancelled picker, clears it.
func (f *Form) ChangeFile(files []api.FileSource) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(files) == 0 {
		f.draft.ProfileImage = nil
		return
	}
	f.draft.ProfileImage = files[0]
}

// Submit sends the draft to the user API. On success it navigates to the
// login page and shows the server message; on any failure it shows an error
// and keeps the draft for another attempt. The loading flag is set for the
// lifetime of the request and always reset.
func (f *Form) Submit(ctx context.Context) (err error) {
	if !atomic.CompareAndSwapInt32(&f.inFlight, 0, 1) {
		return ErrSubmitInFlight
	}
	defer atomic.StoreInt32(&f.inFlight, 0)

	d := f.Draft()
	log := f.log.WithFields(logrus.Fields{
		"role":       d.Role,
		"with_image": d.ProfileImage != nil,
	})

	if f.strict {
		if err := d.Validate(); err != nil {
			log.WithError(err).Info("signup rejected by validation")
			f.deps.Notifier.Error(MessageFor(err))
			return err
		}
	}

	release := f.acquireLoading()
	defer release()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", fmt.Sprint(r)).Error("signup panicked")
			err = errors.Wrapf(ErrUnexpected, "%v", r)
			f.deps.Notifier.Error(FallbackMessage)
		}
	}()

	log.Info("submitting signup")
	resp, err := f.deps.Registrar.Register(ctx, d.request())
	if err == nil && (resp == nil || !resp.Success) {
		err = &api.Error{Message: messageOf(resp)}
	}
	if err != nil {
		log.WithError(err).Info("signup failed")
		f.deps.Notifier.Error(MessageFor(err))
		return err
	}

	log.Info("signup succeeded")
	f.deps.Navigator.Navigate(RouteLogin)
	msg := resp.Message
	if msg == "" {
		msg = DefaultSuccessMessage
	}
	f.deps.Notifier.Success(msg)
	return nil
}

// acquireLoading sets the loading flag and returns the function that resets
// it. The returned function resets the flag at most once.
func (f *Form) acquireLoading() func() {
	f.deps.Loading.SetLoading(true)
	var once sync.Once
	return func() {
		once.Do(func() { f.deps.Loading.SetLoading(false) })
	}
}

func messageOf(resp *api.Response) string {
	if resp == nil {
		return ""
	}
	return resp.Message
}
