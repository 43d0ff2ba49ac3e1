package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/aiforge/pkg/usecase"
)

type chatRequest struct {
	Prompt string `json:"prompt"`
	ChatID string `json:"chatId"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	out, err := s.uc.ChatReply(c.Request.Context(), usecase.ChatReplyInput{
		OwnerID:  ownerID(c),
		Prompt:   req.Prompt,
		RecordID: model.RecordID(req.ChatID),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":   out.Text,
		"chatId": out.RecordID,
	})
}

type codeRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleCode(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	out, err := s.uc.GenerateCode(c.Request.Context(), ownerID(c), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":   out.Code,
		"chatId": out.RecordID,
	})
}

type imageRequest struct {
	Prompt string `json:"prompt"`
	Image  string `json:"image"`
}

func (s *Server) handleImage(c *gin.Context) {
	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" || req.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image and prompt are required"})
		return
	}

	out, err := s.uc.AnalyzeImage(c.Request.Context(), ownerID(c), req.Prompt, req.Image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":   out.Text,
		"chatId": out.RecordID,
	})
}

type optimizeRequest struct {
	Prompt    string `json:"prompt"`
	ModelType string `json:"modelType"`
}

func (s *Server) handleOptimizePrompt(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" || req.ModelType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt and modelType are required"})
		return
	}

	text, err := s.uc.OptimizePrompt(c.Request.Context(), ownerID(c), req.Prompt, req.ModelType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (s *Server) handleUserStats(c *gin.Context) {
	stats, err := s.uc.UserStats(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
