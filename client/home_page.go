//go:build js

package main

import (
	"github.com/hexops/vecty"
	"github.com/hexops/vecty/elem"

	"jobportal-front/internal/store"
)

// HomePage greets the session user.
type HomePage struct {
	vecty.Core
	User *store.User `vecty:"prop"`
}

func (h *HomePage) Render() vecty.ComponentOrHTML {
	if h.User == nil {
		return elem.Div(
			vecty.Markup(vecty.Class("home")),
			elem.Heading1(vecty.Text("Search, Apply & Get Your Dream Job")),
			elem.Paragraph(
				elem.Anchor(vecty.Markup(vecty.Property("href", "#"+routeSignup)), vecty.Text("Create an account")),
				vecty.Text(" to get started."),
			),
		)
	}
	return elem.Div(
		vecty.Markup(vecty.Class("home")),
		elem.Heading1(vecty.Text("Welcome, "+h.User.FullName)),
		elem.Paragraph(vecty.Text("Signed in as "+h.User.Email+" ("+h.User.Role+")")),
	)
}
