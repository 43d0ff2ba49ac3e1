package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/aiforge/pkg/adapter"
	"github.com/m-mizutani/aiforge/pkg/usecase"
)

// Server exposes the generation, history, and stats API over HTTP.
// Every route requires a bearer credential.
type Server struct {
	engine   *gin.Engine
	uc       *usecase.UseCases
	verifier adapter.TokenVerifier
}

func New(uc *usecase.UseCases, verifier adapter.TokenVerifier) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		uc:       uc,
		verifier: verifier,
	}

	authed := engine.Group("/")
	authed.Use(authMiddleware(verifier))
	{
		authed.POST("/chat", s.handleChat)
		authed.POST("/code", s.handleCode)
		authed.POST("/image", s.handleImage)
		authed.POST("/optimize-prompt", s.handleOptimizePrompt)
		authed.GET("/user-stats", s.handleUserStats)
		authed.GET("/history", s.handleListHistory)
		authed.GET("/history/:id", s.handleGetHistory)
		authed.POST("/history/rename", s.handleRenameHistory)
		authed.POST("/history/delete", s.handleDeleteHistory)
	}

	return s
}

// Handler returns the underlying http.Handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server on the given address and blocks
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}
