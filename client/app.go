//go:build js

package main

import (
	"syscall/js"

	"github.com/hexops/vecty"
	"github.com/hexops/vecty/elem"

	"jobportal-front/internal/api"
	"jobportal-front/internal/config"
	"jobportal-front/internal/login"
	"jobportal-front/internal/signup"
	"jobportal-front/internal/store"
)

const routeSignup = "/signup"

// App is the main application component, acting as a router.
type App struct {
	vecty.Core
	config    *config.ClientConfiguration
	store     *store.Store
	client    *api.Client
	navigator hashNavigator
	toaster   *Toaster

	currentRoute string
	page         vecty.Component
	onHashChange js.Func
	unsubscribe  func()
}

// NewApp creates a new App component showing the current route.
func NewApp(c *config.ClientConfiguration, s *store.Store, client *api.Client) *App {
	a := &App{
		config:  c,
		store:   s,
		client:  client,
		toaster: NewToaster(c.ToastDuration),
	}
	a.currentRoute = currentRoute()
	a.page = a.newPage(a.currentRoute)
	return a
}

// Mount handles component mounting and sets up routing.
func (a *App) Mount() {
	a.onHashChange = js.FuncOf(a.handleRouteChange)
	js.Global().Call("addEventListener", "hashchange", a.onHashChange)

	// the navbar and home page follow the session user
	a.unsubscribe = a.store.Subscribe(func(st store.AuthState) {
		vecty.Rerender(a)
	})
}

func (a *App) Unmount() {
	js.Global().Call("removeEventListener", "hashchange", a.onHashChange)
	a.onHashChange.Release()
	a.unsubscribe()
}

func (a *App) handleRouteChange(this js.Value, args []js.Value) interface{} {
	route := currentRoute()
	if route == a.currentRoute {
		return nil
	}
	a.currentRoute = route
	// a fresh page per visit, so each visit runs its guard once
	a.page = a.newPage(route)
	vecty.Rerender(a)
	return nil
}

func (a *App) newPage(route string) vecty.Component {
	switch route {
	case routeSignup:
		form := signup.NewForm(signup.Deps{
			State:     a.store,
			Loading:   a.store,
			Navigator: a.navigator,
			Notifier:  a.toaster,
			Registrar: a.client,
		}, signup.WithStrictValidation(a.config.StrictValidation))
		return NewSignupPage(a.store, form)
	case signup.RouteLogin:
		return NewLoginPage(a.store, login.NewForm(a.store, a.navigator, a.toaster, a.client))
	default:
		return nil
	}
}

// Render renders the component based on the current route.
func (a *App) Render() vecty.ComponentOrHTML {
	user := a.store.User()

	page := a.page
	if page == nil {
		page = &HomePage{User: user}
	}

	return elem.Body(
		&Navbar{
			User:      user,
			store:     a.store,
			client:    a.client,
			navigator: a.navigator,
			notifier:  a.toaster,
		},
		elem.Main(page),
		a.toaster,
	)
}
