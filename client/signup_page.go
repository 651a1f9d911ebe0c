//go:build js

package main

import (
	"context"
	"strconv"

	"github.com/hexops/vecty"
	"github.com/hexops/vecty/elem"
	"github.com/hexops/vecty/event"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"jobportal-front/internal/signup"
	"jobportal-front/internal/store"
)

const profileInputID = "signup-profile"

// SignupPage renders the account signup form.
type SignupPage struct {
	vecty.Core
	store       *store.Store
	form        *signup.Form
	unsubscribe func()
}

// NewSignupPage creates the page and runs the form's session guard, so a
// logged-in user is sent home before the form is ever shown.
func NewSignupPage(s *store.Store, form *signup.Form) *SignupPage {
	p := &SignupPage{store: s, form: form}
	p.form.Init()
	return p
}

// Mount re-renders the page whenever the loading flag changes.
func (p *SignupPage) Mount() {
	p.unsubscribe = p.store.Subscribe(func(store.AuthState) {
		vecty.Rerender(p)
	})
}

func (p *SignupPage) Unmount() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
}

func (p *SignupPage) Render() vecty.ComponentOrHTML {
	if p.form.Redirected() {
		return elem.Div()
	}

	d := p.form.Draft()
	return elem.Div(
		vecty.Markup(vecty.Class("signup-container")),
		elem.Form(
			vecty.Markup(
				vecty.Class("auth-form"),
				event.Submit(p.onSubmit).PreventDefault(),
			),
			elem.Heading1(vecty.Text("Sign Up")),
			p.renderInput("Full Name", "text", signup.FieldFullName, d.FullName, "Enter your full name"),
			p.renderInput("Email", "email", signup.FieldEmail, d.Email, "you@example.com"),
			p.renderInput("Phone Number", "text", signup.FieldPhoneNumber, d.PhoneNumber, "Enter your phone number"),
			p.renderInput("Password", "password", signup.FieldPassword, d.Password, "Minimum 6 characters"),
			renderStrength(signup.PasswordStrength(d.Password, d.FullName, d.Email, d.PhoneNumber)),
			elem.Div(
				vecty.Markup(vecty.Class("form-options")),
				renderRoles(d.Role, p.onFieldChange(signup.FieldRole)),
				p.renderProfilePicker(),
			),
			p.renderSubmit(),
			elem.Paragraph(
				vecty.Markup(vecty.Class("form-switch")),
				vecty.Text("Already have an account? "),
				elem.Anchor(
					vecty.Markup(vecty.Property("href", "#"+signup.RouteLogin)),
					vecty.Text("Login"),
				),
			),
		),
	)
}

func (p *SignupPage) renderInput(label, typ, name, value, placeholder string) vecty.ComponentOrHTML {
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

func (p *SignupPage) renderProfilePicker() vecty.ComponentOrHTML {
	return elem.Div(
		vecty.Markup(vecty.Class("form-field", "form-field-inline")),
		elem.Label(
			vecty.Markup(vecty.Attribute("for", profileInputID)),
			vecty.Text("Profile"),
		),
		elem.Input(vecty.Markup(
			vecty.Property("type", "file"),
			vecty.Property("id", profileInputID),
			vecty.Attribute("accept", "image/*"),
			event.Change(func(e *vecty.Event) {
				p.form.ChangeFile(selectedFiles(profileInputID))
			}),
		)),
	)
}

func (p *SignupPage) renderSubmit() vecty.ComponentOrHTML {
	if p.form.Loading() {
		return elem.Button(
			vecty.Markup(
				vecty.Class("btn", "btn-primary", "btn-loading"),
				vecty.Property("type", "button"),
				vecty.Property("disabled", true),
			),
			elem.Span(vecty.Markup(vecty.Class("spinner"))),
			vecty.Text("Signing you up..."),
		)
	}
	return elem.Button(
		vecty.Markup(
			vecty.Class("btn", "btn-primary"),
			vecty.Property("type", "submit"),
		),
		vecty.Text("Sign Up"),
	)
}

func (p *SignupPage) onFieldChange(name string) func(*vecty.Event) {
	return func(e *vecty.Event) {
		if err := p.form.ChangeField(name, e.Target.Get("value").String()); err != nil {
			logrus.WithError(err).WithField("field", name).Warn("ignored input")
			return
		}
		vecty.Rerender(p)
	}
}

// onSubmit runs the request off the event loop, like every network call in
// the client. Outcomes are reported through the toaster.
func (p *SignupPage) onSubmit(e *vecty.Event) {
	go func() {
		err := p.form.Submit(context.Background())
		if errors.Is(err, signup.ErrSubmitInFlight) {
			logrus.Debug("signup already in progress")
		}
	}()
}

func renderStrength(s signup.Strength) vecty.ComponentOrHTML {
	if s.Label == "" {
		return nil
	}
	return elem.Paragraph(
		vecty.Markup(vecty.Class("password-strength", "password-strength-"+strconv.Itoa(s.Score))),
		vecty.Text("Password strength: "+s.Label),
	)
}

// renderRoles renders the mutually exclusive role radios.
func renderRoles(selected signup.Role, onChange func(*vecty.Event)) vecty.ComponentOrHTML {
	radio := func(role signup.Role, label string) vecty.ComponentOrHTML {
		id := "role-" + string(role)
		return elem.Div(
			vecty.Markup(vecty.Class("radio")),
			elem.Input(vecty.Markup(
				vecty.Property("type", "radio"),
				vecty.Property("id", id),
				vecty.Property("name", signup.FieldRole),
				vecty.Property("value", string(role)),
				vecty.Property("checked", selected == role),
				event.Change(onChange),
			)),
			elem.Label(
				vecty.Markup(vecty.Attribute("for", id)),
				vecty.Text(label),
			),
		)
	}
	return elem.Div(
		vecty.Markup(vecty.Class("role-group")),
		radio(signup.RoleStudent, "Student"),
		radio(signup.RoleRecruiter, "Recruiter"),
	)
}
