package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type memFile struct {
	name, contentType string
	data              []byte
	opened            int
}

func (f *memFile) Filename() string    { return f.name }
func (f *memFile) ContentType() string { return f.contentType }
func (f *memFile) Open() (io.ReadCloser, error) {
	f.opened++
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type brokenFile struct{}

func (brokenFile) Filename() string             { return "broken.png" }
func (brokenFile) ContentType() string          { return "image/png" }
func (brokenFile) Open() (io.ReadCloser, error) { return nil, errors.New("permission denied") }

type part struct {
	name, filename, contentType, value string
}

type ClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	client   *Client
	handler  http.HandlerFunc
	lastReq  *http.Request
	lastBody []part
}

func TestClient(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (ts *ClientTestSuite) SetupTest() {
	ts.handler = nil
	ts.lastReq = nil
	ts.lastBody = nil
	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.lastReq = r
		if mr, err := r.MultipartReader(); err == nil {
			for {
				p, err := mr.NextPart()
				if err != nil {
					break
				}
				data, _ := io.ReadAll(p)
				ts.lastBody = append(ts.lastBody, part{
					name:        p.FormName(),
					filename:    p.FileName(),
					contentType: p.Header.Get("Content-Type"),
					value:       string(data),
				})
			}
		}
		ts.handler(w, r)
	}))

	c, err := New(ts.server.URL + "/api/v1/user/")
	ts.Require().NoError(err)
	ts.client = c
}

func (ts *ClientTestSuite) TearDownTest() {
	ts.server.Close()
}

func respond(status int, body interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func (ts *ClientTestSuite) TestRegisterSendsMultipartFieldsInOrder() {
	ts.handler = respond(http.StatusCreated, map[string]interface{}{"success": true, "message": "Account created"})
	img := &memFile{name: "me.png", contentType: "image/png", data: []byte("PNGDATA")}

	resp, err := ts.client.Register(context.Background(), RegisterRequest{
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "5551234",
		Password:    "secret1",
		Role:        "student",
		File:        img,
	})
	ts.Require().NoError(err)
	ts.True(resp.Success)
	ts.Equal("Account created", resp.Message)

	ts.Equal(http.MethodPost, ts.lastReq.Method)
	ts.Equal("/api/v1/user/register", ts.lastReq.URL.Path)
	ts.Contains(ts.lastReq.Header.Get("Content-Type"), "multipart/form-data; boundary=")
	ts.NotEmpty(ts.lastReq.Header.Get(RequestIDHeader))

	ts.Equal([]part{
		{name: "fullname", value: "Ada Lovelace"},
		{name: "email", value: "ada@example.com"},
		{name: "phoneNumber", value: "5551234"},
		{name: "password", value: "secret1"},
		{name: "role", value: "student"},
		{name: "file", filename: "me.png", contentType: "image/png", value: "PNGDATA"},
	}, ts.lastBody)
	ts.Equal(1, img.opened)
}

func (ts *ClientTestSuite) TestRegisterOmitsFileAndKeepsEmptyFields() {
	ts.handler = respond(http.StatusOK, map[string]interface{}{"success": true, "message": "ok"})

	_, err := ts.client.Register(context.Background(), RegisterRequest{Email: "x@y.z"})
	ts.Require().NoError(err)

	names := make([]string, 0, len(ts.lastBody))
	for _, p := range ts.lastBody {
		names = append(names, p.name)
	}
	ts.Equal([]string{"fullname", "email", "phoneNumber", "password", "role"}, names)
	ts.Equal("", ts.lastBody[0].value)
	ts.Equal("x@y.z", ts.lastBody[1].value)
}

func (ts *ClientTestSuite) TestRegisterRejectedWithMessage() {
	ts.handler = respond(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Email already exists"})

	resp, err := ts.client.Register(context.Background(), RegisterRequest{Email: "taken@example.com"})
	ts.Require().Error(err)
	ts.NotNil(resp)

	var apiErr *Error
	ts.Require().True(errors.As(err, &apiErr))
	ts.Equal(http.StatusBadRequest, apiErr.Status)
	ts.Equal("Email already exists", apiErr.Message)
}

func (ts *ClientTestSuite) TestRegisterRejectedWithoutBody() {
	ts.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}

	_, err := ts.client.Register(context.Background(), RegisterRequest{})
	var apiErr *Error
	ts.Require().True(errors.As(err, &apiErr))
	ts.Equal(http.StatusInternalServerError, apiErr.Status)
	ts.Empty(apiErr.Message)
	ts.True(errors.Is(err, ErrMalformedResponse))
}

func (ts *ClientTestSuite) TestRegisterSuccessFalseIsAnError() {
	ts.handler = respond(http.StatusOK, map[string]interface{}{"success": false, "message": "Something is missing"})

	_, err := ts.client.Register(context.Background(), RegisterRequest{})
	var apiErr *Error
	ts.Require().True(errors.As(err, &apiErr))
	ts.Equal(http.StatusOK, apiErr.Status)
	ts.Equal("Something is missing", apiErr.Message)
}

func (ts *ClientTestSuite) TestRegisterMalformedSuccessBody() {
	ts.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}

	resp, err := ts.client.Register(context.Background(), RegisterRequest{})
	ts.Nil(resp)
	ts.True(errors.Is(err, ErrMalformedResponse))
}

func (ts *ClientTestSuite) TestRegisterIgnoresNonObjectUser() {
	ts.handler = respond(http.StatusCreated, map[string]interface{}{"success": true, "message": "Account created", "user": "pending"})

	resp, err := ts.client.Register(context.Background(), RegisterRequest{})
	ts.Require().NoError(err)
	ts.True(resp.Success)
	ts.Equal("Account created", resp.Message)
	ts.Nil(resp.User)
}

func (ts *ClientTestSuite) TestRegisterRejectedKeepsMessageWithNonObjectUser() {
	ts.handler = respond(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Email already exists", "user": ""})

	_, err := ts.client.Register(context.Background(), RegisterRequest{})
	var apiErr *Error
	ts.Require().True(errors.As(err, &apiErr))
	ts.Equal(http.StatusBadRequest, apiErr.Status)
	ts.Equal("Email already exists", apiErr.Message)
	ts.NoError(apiErr.Err)
}

func (ts *ClientTestSuite) TestRegisterFileOpenFailure() {
	ts.handler = respond(http.StatusOK, map[string]interface{}{"success": true})

	_, err := ts.client.Register(context.Background(), RegisterRequest{File: brokenFile{}})
	ts.Require().Error(err)
	ts.Contains(err.Error(), "broken.png")
	ts.Nil(ts.lastReq, "nothing is sent when the payload cannot be built")
}

func (ts *ClientTestSuite) TestTransportError() {
	ts.server.Close()

	_, err := ts.client.Register(context.Background(), RegisterRequest{})
	ts.Require().Error(err)
	var apiErr *Error
	ts.False(errors.As(err, &apiErr))
}

func (ts *ClientTestSuite) TestLoginReturnsUser() {
	ts.handler = respond(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Welcome back Ada",
		"user": map[string]interface{}{
			"_id":         "65f0",
			"fullname":    "Ada Lovelace",
			"email":       "ada@example.com",
			"phoneNumber": 5551234,
			"role":        "recruiter",
			"profile":     map[string]interface{}{"bio": "ignored"},
		},
	})

	resp, err := ts.client.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "pw", Role: "recruiter"})
	ts.Require().NoError(err)
	ts.Require().NotNil(resp.User)
	ts.Equal("65f0", resp.User.ID)
	ts.Equal("5551234", resp.User.PhoneNumber)
	ts.Equal("recruiter", resp.User.Role)

	ts.Equal("/api/v1/user/login", ts.lastReq.URL.Path)
	ts.Equal("application/json", ts.lastReq.Header.Get("Content-Type"))
}

func (ts *ClientTestSuite) TestCookiesAreSentBack() {
	ts.handler = func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/user/login" {
			http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc", Path: "/"})
		}
		respond(http.StatusOK, map[string]interface{}{"success": true})(w, r)
	}

	_, err := ts.client.Login(context.Background(), LoginRequest{})
	ts.Require().NoError(err)
	_, err = ts.client.Logout(context.Background())
	ts.Require().NoError(err)

	cookie, err := ts.lastReq.Cookie("token")
	ts.Require().NoError(err)
	ts.Equal("abc", cookie.Value)
	ts.Equal(http.MethodGet, ts.lastReq.Method)
}

func TestNewRejectsEmptyEndpoint(t *testing.T) {
	_, err := New("/")
	assert.Error(t, err)

	c, err := New("http://localhost:8000/api/v1/user/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1/user", c.Endpoint())
}

func TestWithHTTPClient(t *testing.T) {
	h := &http.Client{}
	c, err := New("http://localhost", WithHTTPClient(h))
	require.NoError(t, err)
	assert.Same(t, h, c.http)
}

func TestRequestIDsOnlyForSameOrigin(t *testing.T) {
	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get(RequestIDHeader))
		respond(http.StatusOK, map[string]interface{}{"success": true})(w, r)
	}))
	defer server.Close()

	same, err := New(server.URL+"/api/v1/user", WithPageOrigin(server.URL))
	require.NoError(t, err)
	_, err = same.Logout(context.Background())
	require.NoError(t, err)

	cross, err := New(server.URL+"/api/v1/user", WithPageOrigin("http://portal.example"))
	require.NoError(t, err)
	_, err = cross.Logout(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.NotEmpty(t, got[0])
	assert.Empty(t, got[1])
}
