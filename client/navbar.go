//go:build js

package main

import (
	"context"

	"github.com/hexops/vecty"
	"github.com/hexops/vecty/elem"
	"github.com/hexops/vecty/event"
	"github.com/sirupsen/logrus"

	"jobportal-front/internal/api"
	"jobportal-front/internal/signup"
	"jobportal-front/internal/store"
)

// Navbar shows the brand, auth links and, with a session, a logout button.
type Navbar struct {
	vecty.Core
	User *store.User `vecty:"prop"`

	store     *store.Store
	client    *api.Client
	navigator signup.Navigator
	notifier  signup.Notifier
}

func (n *Navbar) Render() vecty.ComponentOrHTML {
	return elem.Navigation(
		vecty.Markup(vecty.Class("navbar")),
		elem.Anchor(
			vecty.Markup(vecty.Class("brand"), vecty.Property("href", "#"+signup.RouteHome)),
			vecty.Text("Job"),
			elem.Span(vecty.Text("Portal")),
		),
		n.renderLinks(),
	)
}

func (n *Navbar) renderLinks() vecty.ComponentOrHTML {
	if n.User == nil {
		return elem.Div(
			vecty.Markup(vecty.Class("nav-links")),
			elem.Anchor(vecty.Markup(vecty.Property("href", "#"+signup.RouteLogin)), vecty.Text("Login")),
			elem.Anchor(vecty.Markup(vecty.Class("btn"), vecty.Property("href", "#"+routeSignup)), vecty.Text("Signup")),
		)
	}
	return elem.Div(
		vecty.Markup(vecty.Class("nav-links")),
		elem.Span(vecty.Text(n.User.FullName)),
		elem.Button(
			vecty.Markup(vecty.Class("btn"), event.Click(n.onLogout)),
			vecty.Text("Logout"),
		),
	)
}

func (n *Navbar) onLogout(e *vecty.Event) {
	go func() {
		resp, err := n.client.Logout(context.Background())
		if err != nil {
			logrus.WithError(err).Warn("logout failed")
			n.notifier.Error(signup.MessageFor(err))
			return
		}
		n.store.Logout()
		n.navigator.Navigate(signup.RouteHome)
		if resp.Message != "" {
			n.notifier.Success(resp.Message)
		}
	}()
}
