// Package devserver serves the WASM bundle during development and forwards
// API calls to the configured backend so the session cookie stays
// same-origin.
package devserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sebest/xff"
	"github.com/sirupsen/logrus"

	"jobportal-front/internal/config"
)

const (
	requestIDHeader = "X-Request-ID"
	indexFile       = "index.html"
	shutdownTimeout = 5 * time.Second
)

// Server is the development HTTP server.
type Server struct {
	config  *config.DevServerConfiguration
	version string
	handler http.Handler
	log     *logrus.Entry
}

// HealthCheckResponse is returned by GET /health.
type HealthCheckResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Proxy   bool   `json:"proxy"`
}

// New builds the server's handler from the configuration.
func New(c *config.DevServerConfiguration, version string) (*Server, error) {
	s := &Server{
		config:  c,
		version: version,
		log:     logrus.WithField("component", "devserver"),
	}

	info, err := os.Stat(c.StaticDir)
	if err != nil {
		return nil, errors.Wrap(err, "static dir")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("static dir %q is not a directory", c.StaticDir)
	}

	xffmw, err := xff.Default()
	if err != nil {
		return nil, errors.Wrap(err, "creating xff middleware")
	}

	r := chi.NewRouter()
	r.Use(addRequestID)
	r.Use(xffmw.Handler)
	r.Use(s.logRequest)

	r.Get("/health", s.healthCheck)

	if c.APIUpstream != "" {
		proxy, err := s.newProxy(c.APIUpstream)
		if err != nil {
			return nil, err
		}
		r.Handle("/api/*", proxy)
	}

	r.Get("/*", s.serveStatic)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(c),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
		AllowCredentials: true,
	})
	s.handler = corsHandler.Handler(r)

	return s, nil
}

// allowedOrigins falls back to the server's own origin. rs/cors treats an
// empty list as any origin, which with credentials would expose the proxy.
func allowedOrigins(c *config.DevServerConfiguration) []string {
	if len(c.AllowedOrigins) > 0 {
		return c.AllowedOrigins
	}
	return []string{"http://" + net.JoinHostPort(c.Host, c.Port)}
}

// Handler returns the router wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Host, s.config.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Error("shutdown failed")
		}
	}()

	s.log.Infof("dev server started on: %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "listen")
	}
	<-done
	return nil
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthCheckResponse{
		Name:    "jobportal-devserver",
		Version: s.version,
		Proxy:   s.config.APIUpstream != "",
	})
}

// serveStatic serves files from the static dir and falls back to index.html
// so hash and path routes both load the app.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	full := filepath.Join(s.config.StaticDir, filepath.FromSlash(name))

	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		if strings.HasSuffix(name, ".wasm") {
			w.Header().Set("Content-Type", "application/wasm")
		}
		http.ServeFile(w, r, full)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, filepath.Join(s.config.StaticDir, indexFile))
}

func (s *Server) newProxy(upstream string) (http.Handler, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, errors.Wrap(err, "parsing API upstream")
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		s.log.WithError(err).WithField("path", r.URL.Path).Warn("upstream unavailable")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "API upstream unavailable",
		})
	}
	return proxy, nil
}

func addRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.Must(uuid.NewV4()).String()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"bytes":       ww.BytesWritten(),
			"remote_addr": r.RemoteAddr,
			"request_id":  r.Header.Get(requestIDHeader),
			"duration":    time.Since(start).String(),
		}).Info("request completed")
	})
}
