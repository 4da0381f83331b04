package preview

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GinServer serves a catalog with Gin
type GinServer struct {
	engine  *gin.Engine
	catalog *Catalog
}

// NewGinServer creates a Gin server with recovery middleware
func NewGinServer(catalog *Catalog) *GinServer {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &GinServer{engine: engine, catalog: catalog}
	engine.GET(modelsRoute, s.listModels)
	engine.GET(filesPrefix+"*path", s.getFile)
	return s
}

func (s *GinServer) listModels(c *gin.Context) {
	summaries, err := s.catalog.Models()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (s *GinServer) getFile(c *gin.Context) {
	// Gin keeps the leading slash of catch-all parameters
	path := strings.TrimPrefix(c.Param("path"), "/")
	f, ok, err := s.catalog.File(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, notFound(path))
		return
	}
	c.Data(http.StatusOK, contentType, f.Content)
}

// Start starts the Gin engine behind an http.Server so it can shut down
func (s *GinServer) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}
	return serve(ctx, s.Name(), srv.ListenAndServe, srv.Shutdown)
}

// Name returns the server name
func (s *GinServer) Name() string {
	return "Gin"
}

// Handler returns the Gin engine as an http.Handler
func (s *GinServer) Handler() http.Handler {
	return s.engine
}
