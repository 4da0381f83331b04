package preview

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/toyz/weave/internal/errors"
	"github.com/toyz/weave/internal/utils"
)

// Server serves a Catalog over HTTP
type Server interface {
	// Start listens on addr and blocks until ctx is cancelled or the
	// listener fails
	Start(ctx context.Context, addr string) error

	// Name returns the server name
	Name() string
}

// Factory builds a Server over a catalog
type Factory func(catalog *Catalog) Server

// Servers holds the available server implementations by name
var Servers = utils.NewRegistry[string, Factory]("preview server")

// DefaultServer is used when no server is configured
const DefaultServer = "echo"

const (
	modelsRoute  = "/models"
	filesPrefix  = "/files/"
	contentType  = "text/plain; charset=utf-8"
	shutdownWait = 5 * time.Second
)

func init() {
	Servers.MustRegister("echo", func(c *Catalog) Server { return NewEchoServer(c) })
	Servers.MustRegister("gin", func(c *Catalog) Server { return NewGinServer(c) })
	Servers.MustRegister("fiber", func(c *Catalog) Server { return NewFiberServer(c) })
}

// New creates the named server
func New(name string, catalog *Catalog) (Server, error) {
	if name == "" {
		name = DefaultServer
	}
	factory, err := Servers.Lookup(name)
	if err != nil {
		return nil, errors.WrapServerError(name, "create", err).
			WithSuggestion(fmt.Sprintf("choose one of %v", Servers.List()))
	}
	return factory(catalog), nil
}

// errorBody is the JSON body of every error response
type errorBody struct {
	Error string `json:"error"`
}

func notFound(path string) errorBody {
	return errorBody{Error: fmt.Sprintf("no generated file at '%s'", path)}
}

// serve runs listen until it fails or ctx is cancelled, then shuts down
func serve(ctx context.Context, name string, listen func() error, shutdown func(context.Context) error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- listen()
	}()

	select {
	case err := <-errCh:
		if err == nil || err == http.ErrServerClosed {
			return nil
		}
		return errors.WrapServerError(name, "listen", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			return errors.WrapServerError(name, "shutdown", err)
		}
		return nil
	}
}
