// Package rest exposes the feed over HTTP/JSON using gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/logging"
	"github.com/gin-gonic/gin"
)

// ShutdownTimeout bounds how long in-flight requests may run after the
// server has been asked to stop.
const ShutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, h *Handler) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		handler: NewRouter(l, h),
	}
}

// Run serves until ctx is cancelled and then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(l logging.Logger, h *Handler) *gin.Engine {
	setupValidator()

	r := gin.New()
	r.Use(RequestID(), RequestLogger(l), Recovery(l))

	r.GET("/healthz", h.Health)

	r.POST("/register/", h.Register)
	r.POST("/api/login/", h.Login)
	r.GET("/api/posts/", h.ListPosts)

	authed := r.Group("/", Authenticate(h.users))
	authed.POST("/api/posts/create/", h.CreatePost)
	authed.POST("/api/comments/add/", h.AddComment)

	return r
}
