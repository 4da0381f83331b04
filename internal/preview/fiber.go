package preview

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// FiberServer serves a catalog with Fiber
type FiberServer struct {
	app     *fiber.App
	catalog *Catalog
}

// NewFiberServer creates a Fiber server with recovery middleware
func NewFiberServer(catalog *Catalog) *FiberServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(errorBody{Error: err.Error()})
		},
	})
	app.Use(recover.New())

	s := &FiberServer{app: app, catalog: catalog}
	app.Get(modelsRoute, s.listModels)
	app.Get(filesPrefix+"*", s.getFile)
	return s
}

func (s *FiberServer) listModels(c *fiber.Ctx) error {
	summaries, err := s.catalog.Models()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(errorBody{Error: err.Error()})
	}
	return c.JSON(summaries)
}

func (s *FiberServer) getFile(c *fiber.Ctx) error {
	path := c.Params("*")
	f, ok, err := s.catalog.File(path)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(errorBody{Error: err.Error()})
	}
	if !ok {
		return c.Status(http.StatusNotFound).JSON(notFound(path))
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(f.Content)
}

// Start starts the Fiber app
func (s *FiberServer) Start(ctx context.Context, addr string) error {
	return serve(ctx, s.Name(), func() error {
		return s.app.Listen(addr)
	}, s.app.ShutdownWithContext)
}

// Name returns the server name
func (s *FiberServer) Name() string {
	return "Fiber"
}

// App returns the underlying Fiber app
func (s *FiberServer) App() *fiber.App {
	return s.app
}
