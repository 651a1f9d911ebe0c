// Package login implements the login form the signup flow hands over to.
package login

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"jobportal-front/internal/api"
	"jobportal-front/internal/signup"
	"jobportal-front/internal/store"
)

var ErrUnknownField = errors.New("login: unknown field")

// Session is the part of the store the login form needs.
type Session interface {
	signup.StateReader
	signup.StateWriter
	SetUser(*store.User)
}

// Authenticator starts sessions. *api.Client implements it.
type Authenticator interface {
	Login(ctx context.Context, r api.LoginRequest) (*api.Response, error)
}

// Form is the controller behind the login page.
type Form struct {
	session  Session
	nav      signup.Navigator
	notifier signup.Notifier
	auth     Authenticator
	log      *logrus.Entry
	mu       sync.Mutex
	req      api.LoginRequest
	initOnce sync.Once
	redirect bool
	inFlight int32
}

// NewForm returns a login form with an empty request.
func NewForm(session Session, nav signup.Navigator, notifier signup.Notifier, auth Authenticator) *Form {
	return &Form{
		session:  session,
		nav:      nav,
		notifier: notifier,
		auth:     auth,
		log:      logrus.WithField("component", "login"),
	}
}

// Init navigates home when a session already exists. It checks only once.
func (f *Form) Init() bool {
	f.initOnce.Do(func() {
		if f.session.HasSession() {
			f.redirect = true
			f.nav.Navigate(signup.RouteHome)
		}
	})
	return f.redirect
}

func (f *Form) Request() api.LoginRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.req
}

// ChangeField updates email, password or role.
func (f *Form) ChangeField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case signup.FieldEmail:
		f.req.Email = value
	case signup.FieldPassword:
		f.req.Password = value
	case signup.FieldRole:
		r, err := signup.ParseRole(value)
		if err != nil {
			return err
		}
		f.req.Role = string(r)
	default:
		return errors.Wrapf(ErrUnknownField, "%q", name)
	}
	return nil
}

// Submit logs in, stores the returned user and navigates home.
func (f *Form) Submit(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&f.inFlight, 0, 1) {
		return signup.ErrSubmitInFlight
	}
	defer atomic.StoreInt32(&f.inFlight, 0)

	req := f.Request()
	log := f.log.WithField("role", req.Role)

	f.session.SetLoading(true)
	defer f.session.SetLoading(false)

	resp, err := f.auth.Login(ctx, req)
	if err == nil && (resp == nil || resp.User == nil) {
		err = &api.Error{Err: api.ErrMalformedResponse}
	}
	if err != nil {
		log.WithError(err).Info("login failed")
		f.notifier.Error(signup.MessageFor(err))
		return err
	}

	log.Info("logged in")
	f.session.SetUser(resp.User)
	f.nav.Navigate(signup.RouteHome)
	if resp.Message != "" {
		f.notifier.Success(resp.Message)
	}
	return nil
}
