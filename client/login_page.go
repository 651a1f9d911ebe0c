//go:build js

package main

import (
	"context"

	"github.com/hexops/vecty"
	"github.com/hexops/vecty/elem"
	"github.com/hexops/vecty/event"
	"github.com/sirupsen/logrus"

	"jobportal-front/internal/login"
	"jobportal-front/internal/signup"
	"jobportal-front/internal/store"
)

// LoginPage is a component that displays a login form.
type LoginPage struct {
	vecty.Core
	store       *store.Store
	form        *login.Form
	unsubscribe func()
}

// NewLoginPage creates the page; a logged-in user is sent home.
func NewLoginPage(s *store.Store, form *login.Form) *LoginPage {
	p := &LoginPage{store: s, form: form}
	p.form.Init()
	return p
}

func (p *LoginPage) Mount() {
	p.unsubscribe = p.store.Subscribe(func(store.AuthState) {
		vecty.Rerender(p)
	})
}

func (p *LoginPage) Unmount() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
}

// onLoginAttempt calls the backend off the event loop.
func (p *LoginPage) onLoginAttempt(e *vecty.Event) {
	go p.form.Submit(context.Background())
}

func (p *LoginPage) onFieldChange(name string) func(*vecty.Event) {
	return func(e *vecty.Event) {
		if err := p.form.ChangeField(name, e.Target.Get("value").String()); err != nil {
			logrus.WithError(err).WithField("field", name).Warn("ignored input")
			return
		}
		vecty.Rerender(p)
	}
}

// Render renders the component.
func (p *LoginPage) Render() vecty.ComponentOrHTML {
	if p.form.Init() {
		return elem.Div()
	}

	req := p.form.Request()
	return elem.Div(
		vecty.Markup(vecty.Class("login-container")),
		elem.Form(
			vecty.Markup(
				vecty.Class("auth-form"),
				event.Submit(p.onLoginAttempt).PreventDefault(),
			),
			elem.Heading1(vecty.Text("Login")),
			p.renderInput("Email", "email", signup.FieldEmail, req.Email, "you@example.com"),
			p.renderInput("Password", "password", signup.FieldPassword, req.Password, "Enter your password"),
			renderRoles(signup.Role(req.Role), p.onFieldChange(signup.FieldRole)),
			p.renderSubmit(),
			elem.Paragraph(
				vecty.Markup(vecty.Class("form-switch")),
				vecty.Text("Don't have an account? "),
				elem.Anchor(
					vecty.Markup(vecty.Property("href", "#"+routeSignup)),
					vecty.Text("Sign Up"),
				),
			),
		),
	)
}

func (p *LoginPage) renderInput(label, typ, name, value, placeholder string) vecty.ComponentOrHTML {
	return elem.Div(
		vecty.Markup(vecty.Class("form-field")),
		elem.Label(vecty.Text(label)),
		elem.Input(vecty.Markup(
			vecty.Property("type", typ),
			vecty.Property("name", name),
			vecty.Property("value", value),
			vecty.Property("placeholder", placeholder),
			event.Input(p.onFieldChange(name)),
		)),
	)
}

func (p *LoginPage) renderSubmit() vecty.ComponentOrHTML {
	if p.store.Loading() {
		return elem.Button(
			vecty.Markup(
				vecty.Class("btn", "btn-primary", "btn-loading"),
				vecty.Property("type", "button"),
				vecty.Property("disabled", true),
			),
			elem.Span(vecty.Markup(vecty.Class("spinner"))),
			vecty.Text("Please wait..."),
		)
	}
	return elem.Button(
		vecty.Markup(
			vecty.Class("btn", "btn-primary"),
			vecty.Property("type", "submit"),
		),
		vecty.Text("Login"),
	)
}
