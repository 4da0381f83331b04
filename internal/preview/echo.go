package preview

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// EchoServer serves a catalog with Echo
type EchoServer struct {
	engine  *echo.Echo
	catalog *Catalog
}

// NewEchoServer creates an Echo server with recovery middleware
func NewEchoServer(catalog *Catalog) *EchoServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &EchoServer{engine: e, catalog: catalog}
	e.GET(modelsRoute, s.listModels)
	e.GET(filesPrefix+"*", s.getFile)
	return s
}

func (s *EchoServer) listModels(c echo.Context) error {
	summaries, err := s.catalog.Models()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, summaries)
}

func (s *EchoServer) getFile(c echo.Context) error {
	path := c.Param("*")
	f, ok, err := s.catalog.File(path)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, notFound(path))
	}
	return c.Blob(http.StatusOK, contentType, f.Content)
}

// Start starts the Echo server
func (s *EchoServer) Start(ctx context.Context, addr string) error {
	return serve(ctx, s.Name(), func() error {
		return s.engine.Start(addr)
	}, s.engine.Shutdown)
}

// Name returns the server name
func (s *EchoServer) Name() string {
	return "Echo"
}

// Handler returns the Echo instance as an http.Handler
func (s *EchoServer) Handler() http.Handler {
	return s.engine
}
