package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/pkg/errors"
)

// FileSource is a file selected by the user. Open may be called more than
// once, e.g. when a failed signup is resubmitted.
type FileSource interface {
	Filename() string
	ContentType() string
	Open() (io.ReadCloser, error)
}

// RegisterRequest is the multipart payload of POST /register.
type RegisterRequest struct {
	FullName    string     `schema:"fullname"`
	Email       string     `schema:"email"`
	PhoneNumber string     `schema:"phoneNumber"`
	Password    string     `schema:"password"`
	Role        string     `schema:"role"`
	File        FileSource `schema:"-"`
}

// registerFields is the order text parts are written in.
var registerFields = []string{"fullname", "email", "phoneNumber", "password", "role"}

// FileField is the multipart field name of the profile image.
const FileField = "file"

var encoder = schema.NewEncoder()

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Register creates an account. Every text field is sent even when empty; the
// file part is only present when r.File is set.
func (c *Client) Register(ctx context.Context, r RegisterRequest) (*Response, error) {
	body, contentType, err := r.encode()
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/register", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(req)
}

func (r RegisterRequest) encode() (*bytes.Buffer, string, error) {
	values := url.Values{}
	if err := encoder.Encode(r, values); err != nil {
		return nil, "", errors.Wrap(err, "api: encoding register form")
	}

	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for _, name := range registerFields {
		if err := w.WriteField(name, values.Get(name)); err != nil {
			return nil, "", errors.Wrapf(err, "api: writing field %s", name)
		}
	}

	if r.File != nil {
		if err := writeFile(w, r.File); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "api: closing multipart body")
	}
	return buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, f FileSource) error {
	contentType := f.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FileField, quoteEscaper.Replace(f.Filename())))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return errors.Wrap(err, "api: creating file part")
	}

	src, err := f.Open()
	if err != nil {
		return errors.Wrapf(err, "api: opening %s", f.Filename())
	}
	defer src.Close()

	if _, err := io.Copy(part, src); err != nil {
		return errors.Wrapf(err, "api: reading %s", f.Filename())
	}
	return nil
}
