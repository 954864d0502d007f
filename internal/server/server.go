package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thechupa55/CP/internal/api"
	"github.com/thechupa55/CP/internal/config"
	"github.com/thechupa55/CP/internal/service/session"
)

// Server is the local HTTP server: one in-memory session, the API on
// top of it.
type Server struct {
	router  *gin.Engine
	session *session.Session
	api     *api.Handler
}

// NewServer wires the server from configuration.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	sess := session.New()
	s := &Server{
		router:  gin.Default(),
		session: sess,
		api:     api.NewHandler(sess, cfg.Upload.MaxSizeMB),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS: the tool runs locally, a UI dev server may sit on another port.
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "mealcounter",
			"api":     "/api",
		})
	})
}

// Session exposes the server's session, used by tests.
func (s *Server) Session() *session.Session {
	return s.session
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the gin engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
