package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/aiforge/pkg/model"
)

func kindParam(c *gin.Context, value string) (model.Kind, bool) {
	kind, err := model.ParseKind(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type"})
		return "", false
	}
	return kind, true
}

func (s *Server) handleListHistory(c *gin.Context) {
	kind, ok := kindParam(c, c.DefaultQuery("type", string(model.KindChat)))
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	records, err := s.uc.ListHistory(c.Request.Context(), ownerID(c), kind, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (s *Server) handleGetHistory(c *gin.Context) {
	kind, ok := kindParam(c, c.DefaultQuery("type", string(model.KindChat)))
	if !ok {
		return
	}

	record, err := s.uc.GetHistory(c.Request.Context(), ownerID(c), kind, model.RecordID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

type renameRequest struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

func (s *Server) handleRenameHistory(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and title are required"})
		return
	}
	kind, ok := kindParam(c, req.Type)
	if !ok {
		return
	}

	if err := s.uc.RenameHistory(c.Request.Context(), ownerID(c), kind, model.RecordID(req.ID), req.Title); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type deleteRequest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

func (s *Server) handleDeleteHistory(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	kind, ok := kindParam(c, req.Type)
	if !ok {
		return
	}

	if err := s.uc.DeleteHistory(c.Request.Context(), ownerID(c), kind, model.RecordID(req.ID)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
